package main

import (
	"log"

	"github.com/jooyoni/stock-tracker/pkg/api"
	"github.com/jooyoni/stock-tracker/pkg/collector"
	"github.com/jooyoni/stock-tracker/pkg/config"
	"github.com/jooyoni/stock-tracker/pkg/database"
	"github.com/jooyoni/stock-tracker/pkg/messaging"
	"github.com/jooyoni/stock-tracker/pkg/monitor"
	"github.com/jooyoni/stock-tracker/pkg/repository"
	"github.com/jooyoni/stock-tracker/pkg/scheduler"
	"github.com/jooyoni/stock-tracker/pkg/uistate"
)

func main() {
	log.Println("启动API服务...")

	// 加载配置，没有配置文件时使用默认值
	cfg, err := config.LoadConfig(config.GetDefaultConfigPath())
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}

	// 创建监控
	mon := monitor.NewMonitor()
	mon.RegisterComponent("database")
	mon.RegisterComponent("nats")
	mon.RegisterComponent("collector")

	// 创建数据存储，未配置数据库时使用内存存储
	var store repository.Store
	var uiStore uistate.Store
	if cfg.Database.Postgres.Host != "" {
		db, err := database.NewDB(cfg)
		if err != nil {
			log.Fatalf("初始化数据库失败: %v", err)
		}
		defer db.Close()
		store = db
		uiStore = db.UIState()
		mon.UpdateStatus("database", "healthy", "")
	} else {
		log.Println("未配置数据库，使用内存存储")
		store = repository.NewMemory()
		uiStore = uistate.NewMemoryStore()
		mon.UpdateStatus("database", "healthy", "内存存储")
	}

	// 连接NATS，未配置时跳过事件发布
	var publisher messaging.Publisher = messaging.NoopPublisher{}
	if cfg.NATS.URL != "" {
		natsClient, err := messaging.NewNATSClient(cfg.NATS.URL)
		if err != nil {
			log.Printf("连接NATS失败，跳过事件发布: %v", err)
			mon.UpdateStatus("nats", "unhealthy", err.Error())
		} else {
			defer natsClient.Close()
			publisher = natsClient
			mon.UpdateStatus("nats", "healthy", "")
		}
	} else {
		mon.UpdateStatus("nats", "healthy", "未启用")
	}

	// 创建行情客户端
	yahoo := collector.NewYahooClient(cfg.DataSources.Yahoo.BaseURL, cfg.DataSources.Yahoo.Timeout)

	// 启动定时刷新
	sched := scheduler.NewScheduler(store, yahoo, yahoo, publisher, mon)
	if err := sched.Start(cfg.Scheduler.QuoteRefreshSpec, cfg.Scheduler.RateRefreshSpec); err != nil {
		log.Fatalf("启动调度器失败: %v", err)
	}
	defer sched.Stop()

	// 启动时先刷新一次汇率
	go sched.RefreshRate()

	// 创建API处理程序
	handlers := api.NewHandlers(store, uiStore, yahoo, publisher, mon)

	// 创建并启动服务器
	server := api.NewServer(cfg.API.Port, cfg.API.ReadTimeout, cfg.API.WriteTimeout)
	server.SetupRoutes(handlers)
	server.Start()
}
