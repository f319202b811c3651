package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jooyoni/stock-tracker/pkg/config"
	"github.com/jooyoni/stock-tracker/pkg/model"
)

// DB Postgres数据库连接，实现repository.Store
type DB struct {
	db *gorm.DB
}

// NewDB 创建数据库连接并迁移表结构
func NewDB(cfg *config.Config) (*DB, error) {
	dbCfg := cfg.Database.Postgres

	// 构建连接字符串
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password, dbCfg.DBName, dbCfg.SSLMode,
	)

	// 连接数据库
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 设置连接池参数
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("测试数据库连接失败: %w", err)
	}

	// 迁移表结构
	if err := db.AutoMigrate(
		&model.Stock{},
		&model.Portfolio{},
		&model.Pick{},
		&model.RealizedProfit{},
		&model.MonthTarget{},
		&model.ExchangeRate{},
		&UIState{},
	); err != nil {
		return nil, fmt.Errorf("迁移表结构失败: %w", err)
	}

	return &DB{db: db}, nil
}

// Close 关闭数据库连接
func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
