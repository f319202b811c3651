package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jooyoni/stock-tracker/pkg/collector"
	"github.com/jooyoni/stock-tracker/pkg/config"
	"github.com/jooyoni/stock-tracker/pkg/database"
	"github.com/jooyoni/stock-tracker/pkg/messaging"
	"github.com/jooyoni/stock-tracker/pkg/monitor"
	"github.com/jooyoni/stock-tracker/pkg/scheduler"
)

// 独立的行情采集进程，和API服务共用同一个数据库
func main() {
	log.Println("启动行情采集服务...")

	cfg, err := config.LoadConfig(config.GetDefaultConfigPath())
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}

	if cfg.Database.Postgres.Host == "" {
		log.Fatal("采集服务需要配置数据库")
	}

	db, err := database.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	defer db.Close()

	var publisher messaging.Publisher = messaging.NoopPublisher{}
	if cfg.NATS.URL != "" {
		natsClient, err := messaging.NewNATSClient(cfg.NATS.URL)
		if err != nil {
			log.Printf("连接NATS失败，跳过事件发布: %v", err)
		} else {
			defer natsClient.Close()
			publisher = natsClient
		}
	}

	mon := monitor.NewMonitor()
	mon.RegisterComponent("database")
	mon.RegisterComponent("collector")

	yahoo := collector.NewYahooClient(cfg.DataSources.Yahoo.BaseURL, cfg.DataSources.Yahoo.Timeout)

	sched := scheduler.NewScheduler(db, yahoo, yahoo, publisher, mon)
	if err := sched.Start(cfg.Scheduler.QuoteRefreshSpec, cfg.Scheduler.RateRefreshSpec); err != nil {
		log.Fatalf("启动调度器失败: %v", err)
	}
	defer sched.Stop()

	// 启动时立即刷新一轮
	sched.RefreshRate()
	sched.RefreshQuotes()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("采集服务已停止")
}
