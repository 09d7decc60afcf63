package service_test

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"testing"

	"recipe-api/internal/config"
	"recipe-api/internal/models"
	"recipe-api/internal/repository"
	"recipe-api/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := models.OpenDB(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newAuthService(db *gorm.DB) *service.AuthService {
	cfg := &config.Config{}
	cfg.Auth.TokenBytes = 20
	return service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewTokenRepository(db),
		cfg,
		newTestLogger(),
	)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10))))
	return buf.Bytes()
}
