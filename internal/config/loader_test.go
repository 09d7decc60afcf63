package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
server:
  port: 9000
database:
  driver: sqlite
  path: `+filepath.Join(dir, "db", "app.db")+`
media:
  root: `+filepath.Join(dir, "media")+`
`)

	cfg, err := loadConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.GetAddress())
	assert.Equal(t, 20, cfg.Auth.TokenBytes)
	assert.Equal(t, "/media/", cfg.Media.URL)
	assert.Equal(t, int64(10<<20), cfg.Media.GetMaxUploadBytes())
	assert.False(t, cfg.Redis.Enabled())

	assert.DirExists(t, filepath.Join(dir, "db"))
	assert.DirExists(t, filepath.Join(dir, "media"))
}

func TestLoadConfigFromFile_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
server:
  port: 9000
database:
  path: `+filepath.Join(dir, "app.db")+`
media:
  root: `+filepath.Join(dir, "media")+`
`)
	t.Setenv("RECIPE_SERVER_PORT", "9100")

	cfg, err := loadConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
}

func TestLoadConfigFromFile_Missing(t *testing.T) {
	_, err := loadConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	valid := func() *Config {
		cfg := &Config{}
		cfg.Database.Path = filepath.Join(dir, "app.db")
		cfg.Media.Root = filepath.Join(dir, "media")
		SetDefaults(cfg)
		return cfg
	}

	require.NoError(t, Validate(valid()))

	cases := map[string]func(cfg *Config){
		"端口越界":         func(cfg *Config) { cfg.Server.Port = 70000 },
		"未知驱动":         func(cfg *Config) { cfg.Database.Driver = "oracle" },
		"postgres无dsn": func(cfg *Config) { cfg.Database.Driver = DriverPostgres },
		"令牌过短":         func(cfg *Config) { cfg.Auth.TokenBytes = 8 },
		"限流为负":         func(cfg *Config) { cfg.Auth.LoginRateLimit = -1 },
		"管理员无密码":       func(cfg *Config) { cfg.Admin.Email = "admin@example.com" },
	}

	for name, mutate := range cases {
		cfg := valid()
		mutate(cfg)
		assert.Error(t, Validate(cfg), name)
	}
}
