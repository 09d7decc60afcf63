package config

import (
	"fmt"
	"time"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis_service"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Admin    AdminConfig    `mapstructure:"admin"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Media    MediaConfig    `mapstructure:"media"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	ProductionMode bool   `mapstructure:"production_mode"`
	LogLevel       string `mapstructure:"log_level"`
}

// GetAddress 获取服务器地址
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// 支持的数据库驱动
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// DatabaseConfig 数据库配置
// sqlite 使用 Path，postgres/mysql 使用 DSN
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

// RedisConfig Redis配置，Host 为空时禁用限流相关功能
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	DB       int    `mapstructure:"db"`
	Password string `mapstructure:"password"`
}

// Enabled 是否配置了Redis
func (r *RedisConfig) Enabled() bool {
	return r.Host != ""
}

// GetAddress 获取Redis地址
func (r *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// AuthConfig 认证配置
type AuthConfig struct {
	TokenBytes             int `mapstructure:"token_bytes"`
	LoginRateLimit         int `mapstructure:"login_rate_limit"`
	LoginRateWindowSeconds int `mapstructure:"login_rate_window_seconds"`
}

// GetLoginRateWindow 获取登录限流窗口
func (a *AuthConfig) GetLoginRateWindow() time.Duration {
	return time.Duration(a.LoginRateWindowSeconds) * time.Second
}

// AdminConfig 初始超级用户配置，Email 为空时不创建
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// CORSConfig CORS配置
type CORSConfig struct {
	Origins          []string `mapstructure:"origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
}

// MediaConfig 上传文件配置
type MediaConfig struct {
	Root                 string `mapstructure:"root"`
	URL                  string `mapstructure:"url"`
	MaxUploadMB          int    `mapstructure:"max_upload_mb"`
	MaxConcurrentUploads int    `mapstructure:"max_concurrent_uploads"`
}

// GetMaxUploadBytes 获取单个上传文件的大小上限
func (m *MediaConfig) GetMaxUploadBytes() int64 {
	return int64(m.MaxUploadMB) << 20
}
