package models

import (
	"fmt"

	"recipe-api/internal/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 全局数据库实例
var DB *gorm.DB

// InitDB 初始化全局数据库并迁移表结构
func InitDB(cfg *config.Config) error {
	db, err := OpenDB(&cfg.Database)
	if err != nil {
		return err
	}

	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("迁移数据库失败: %w", err)
	}

	DB = db
	return nil
}

// OpenDB 按配置的驱动打开数据库连接
func OpenDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite, "":
		dialector = sqlite.Open(cfg.Path)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	return db, nil
}

// AutoMigrate 自动迁移数据库表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&AuthToken{},
		&Tag{},
		&Ingredient{},
		&Recipe{},
	)
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return DB
}
