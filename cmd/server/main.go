package main

import (
	"context"
	"log"
	"os"
	"time"

	"recipe-api/internal/config"
	"recipe-api/internal/models"
	"recipe-api/internal/repository"
	"recipe-api/internal/router"
	"recipe-api/internal/service"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {
	// 初始化日志
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// 加载 .env，其中 RECIPE_ 前缀的变量会覆盖配置文件
	if err := godotenv.Load(); err != nil {
		logger.Info("未找到 .env 文件，使用系统环境变量")
	}

	configFile := os.Getenv("RECIPE_CONFIG_FILE")
	if configFile == "" {
		configFile = "./config/config.yaml"
	}
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warnf("无效的日志级别 %q，使用 info", cfg.Server.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// 初始化数据库
	if err := models.InitDB(cfg); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	db := models.GetDB()

	// 初始化Redis，未配置时关闭限流
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddress(),
			DB:       cfg.Redis.DB,
			Password: cfg.Redis.Password,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Fatalf("连接Redis失败: %v", err)
		}
		logger.WithField("addr", cfg.Redis.GetAddress()).Info("Redis已连接")
	} else {
		logger.Warn("未配置Redis，登录限流和上传并发限制已关闭")
	}

	// 初始化管理员账户
	authService := service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewTokenRepository(db),
		cfg,
		logger,
	)
	if err := authService.InitAdmin(context.Background(), cfg.Admin); err != nil {
		logger.Warnf("初始化管理员失败: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// 设置路由
	r := router.SetupRouter(cfg, logger, db, redisClient, registry)

	// 启动服务器
	addr := cfg.Server.GetAddress()
	logger.Infof("服务器启动在 %s", addr)

	if !cfg.Server.ProductionMode && cfg.Admin.Email != "" {
		logger.Infof("管理员账号: %s", cfg.Admin.Email)
	}

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务器失败: %v", err)
	}
}
