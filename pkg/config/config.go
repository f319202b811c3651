package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	App struct {
		Name string `yaml:"name"`
		Env  string `yaml:"env"`
	} `yaml:"app"`

	DataSources struct {
		Yahoo struct {
			BaseURL string        `yaml:"base_url"`
			Timeout time.Duration `yaml:"timeout"`
		} `yaml:"yahoo"`
	} `yaml:"data_sources"`

	Database struct {
		Postgres struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			User     string `yaml:"user"`
			Password string `yaml:"password"`
			DBName   string `yaml:"dbname"`
			SSLMode  string `yaml:"sslmode"`
		} `yaml:"postgres"`
	} `yaml:"database"`

	NATS struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`

	Scheduler struct {
		QuoteRefreshSpec string `yaml:"quote_refresh_spec"` // 行情刷新cron表达式
		RateRefreshSpec  string `yaml:"rate_refresh_spec"`  // 汇率刷新cron表达式
	} `yaml:"scheduler"`

	API struct {
		Port         string        `yaml:"port"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"api"`
}

// LoadConfig 从文件加载配置
func LoadConfig(path string) (*Config, error) {
	// 读取配置文件
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 解析YAML
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 环境变量覆盖
	overrideFromEnv(&config)

	// 默认值
	applyDefaults(&config)

	return &config, nil
}

// Default 没有配置文件时的默认配置（环境变量仍然生效）
func Default() *Config {
	var config Config
	overrideFromEnv(&config)
	applyDefaults(&config)
	return &config
}

// overrideFromEnv 使用环境变量覆盖配置
func overrideFromEnv(config *Config) {
	// 应用名称
	if env := os.Getenv("APP_NAME"); env != "" {
		config.App.Name = env
	}

	// 环境
	if env := os.Getenv("APP_ENV"); env != "" {
		config.App.Env = env
	}

	// 行情数据源配置
	if env := os.Getenv("YAHOO_BASE_URL"); env != "" {
		config.DataSources.Yahoo.BaseURL = env
	}

	// 数据库配置
	if env := os.Getenv("DB_HOST"); env != "" {
		config.Database.Postgres.Host = env
	}
	if env := os.Getenv("DB_PORT"); env != "" {
		var port int
		fmt.Sscanf(env, "%d", &port)
		if port > 0 {
			config.Database.Postgres.Port = port
		}
	}
	if env := os.Getenv("DB_USER"); env != "" {
		config.Database.Postgres.User = env
	}
	if env := os.Getenv("DB_PASSWORD"); env != "" {
		config.Database.Postgres.Password = env
	}
	if env := os.Getenv("DB_NAME"); env != "" {
		config.Database.Postgres.DBName = env
	}

	// NATS配置
	if env := os.Getenv("NATS_URL"); env != "" {
		config.NATS.URL = env
	}

	// 调度配置
	if env := os.Getenv("QUOTE_REFRESH_SPEC"); env != "" {
		config.Scheduler.QuoteRefreshSpec = env
	}
	if env := os.Getenv("RATE_REFRESH_SPEC"); env != "" {
		config.Scheduler.RateRefreshSpec = env
	}

	// API配置
	if env := os.Getenv("API_PORT"); env != "" {
		config.API.Port = env
	}
}

// applyDefaults 填充缺失的默认配置
func applyDefaults(config *Config) {
	if config.API.Port == "" {
		config.API.Port = "8080"
	}
	if config.DataSources.Yahoo.BaseURL == "" {
		config.DataSources.Yahoo.BaseURL = "https://query2.finance.yahoo.com"
	}
	if config.DataSources.Yahoo.Timeout == 0 {
		config.DataSources.Yahoo.Timeout = 10 * time.Second
	}
	if config.Scheduler.QuoteRefreshSpec == "" {
		config.Scheduler.QuoteRefreshSpec = "@every 30m"
	}
	if config.Scheduler.RateRefreshSpec == "" {
		config.Scheduler.RateRefreshSpec = "@every 10m"
	}
	if config.API.ReadTimeout == 0 {
		config.API.ReadTimeout = 10 * time.Second
	}
	if config.API.WriteTimeout == 0 {
		config.API.WriteTimeout = 10 * time.Second
	}
}

// GetDefaultConfigPath 获取默认配置文件路径
func GetDefaultConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev" // 默认开发环境
	}

	return fmt.Sprintf("configs/%s/app.yaml", env)
}
