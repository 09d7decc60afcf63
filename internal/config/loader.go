package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

var (
	globalConfig *Config
	loadErr      error
	once         sync.Once
)

// LoadConfig 加载配置文件，进程内只加载一次
func LoadConfig(configFile string) (*Config, error) {
	once.Do(func() {
		globalConfig, loadErr = loadConfigFromFile(configFile)
	})

	return globalConfig, loadErr
}

// loadConfigFromFile 从文件加载配置
func loadConfigFromFile(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// 环境变量覆盖，例如 RECIPE_SERVER_PORT
	v.SetEnvPrefix("RECIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	SetDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	return &cfg, nil
}

// SetDefaults 设置默认值
func SetDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverSQLite
	}
	if cfg.Database.Driver == DriverSQLite && cfg.Database.Path == "" {
		cfg.Database.Path = "./data/app.db"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Auth.TokenBytes == 0 {
		cfg.Auth.TokenBytes = 20 // 40位十六进制
	}
	if cfg.Auth.LoginRateLimit == 0 {
		cfg.Auth.LoginRateLimit = 10
	}
	if cfg.Auth.LoginRateWindowSeconds == 0 {
		cfg.Auth.LoginRateWindowSeconds = 60
	}
	if cfg.CORS.AllowMethods == nil {
		cfg.CORS.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if cfg.CORS.AllowHeaders == nil {
		cfg.CORS.AllowHeaders = []string{"Authorization", "Content-Type"}
	}
	if cfg.Media.Root == "" {
		cfg.Media.Root = "./media"
	}
	if cfg.Media.URL == "" {
		cfg.Media.URL = "/media/"
	}
	if cfg.Media.MaxUploadMB == 0 {
		cfg.Media.MaxUploadMB = 10
	}
	if cfg.Media.MaxConcurrentUploads == 0 {
		cfg.Media.MaxConcurrentUploads = 2
	}
}

// Validate 验证配置，并创建缺失的数据目录
func Validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务器端口: %d", cfg.Server.Port)
	}

	switch cfg.Database.Driver {
	case DriverSQLite:
		dbDir := filepath.Dir(cfg.Database.Path)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return fmt.Errorf("创建数据库目录失败: %w", err)
		}
	case DriverPostgres, DriverMySQL:
		if cfg.Database.DSN == "" {
			return fmt.Errorf("数据库驱动 %s 需要配置 dsn", cfg.Database.Driver)
		}
	default:
		return fmt.Errorf("不支持的数据库驱动: %s", cfg.Database.Driver)
	}

	if cfg.Auth.TokenBytes < 16 {
		return fmt.Errorf("token_bytes 不能小于16: %d", cfg.Auth.TokenBytes)
	}
	if cfg.Auth.LoginRateLimit < 0 || cfg.Auth.LoginRateWindowSeconds < 0 {
		return fmt.Errorf("登录限流参数不能为负数")
	}
	if cfg.Media.MaxUploadMB < 0 || cfg.Media.MaxConcurrentUploads < 0 {
		return fmt.Errorf("上传限制参数不能为负数")
	}
	if cfg.Admin.Email != "" && cfg.Admin.Password == "" {
		return fmt.Errorf("管理员密码不能为空")
	}

	if err := os.MkdirAll(cfg.Media.Root, 0755); err != nil {
		return fmt.Errorf("创建媒体目录失败: %w", err)
	}

	return nil
}
