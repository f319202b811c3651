package api

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// Server API服务器
type Server struct {
	router *gin.Engine
	srv    *http.Server
}

// NewServer 创建新的API服务器
func NewServer(port string, readTimeout, writeTimeout time.Duration) *Server {
	router := gin.Default()

	// 设置中间件
	router.Use(gin.Recovery())

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	return &Server{
		router: router,
		srv:    srv,
	}
}

// SetupRoutes 设置路由
func (s *Server) SetupRoutes(handlers *Handlers) {
	// 健康检查
	s.router.GET("/health", handlers.HealthCheck)
	s.router.GET("/ready", handlers.ReadinessCheck)

	// 前端调用的API路由
	api := s.router.Group("/api")
	{
		// 观察列表
		api.GET("/stock/list", handlers.GetStockList)
		api.POST("/stock/list", handlers.AddStock)
		api.DELETE("/stock/list", handlers.DeleteStock)

		// 关注股票
		api.GET("/stock/pick", handlers.GetPicks)
		api.POST("/stock/pick", handlers.AddPick)
		api.DELETE("/stock/pick", handlers.DeletePick)

		// 持仓
		api.GET("/stock/portfolio", handlers.GetPortfolio)
		api.POST("/stock/portfolio", handlers.AddPosition)
		api.PUT("/stock/portfolio", handlers.UpdatePosition)
		api.DELETE("/stock/portfolio", handlers.DeletePosition)
		api.GET("/stock/portfolio/summary", handlers.GetPortfolioSummary)
		api.GET("/stock/portfolio/average-down", handlers.GetAverageDown)

		// 已实现损益
		api.GET("/realized-profit-loss", handlers.GetProfits)
		api.POST("/realized-profit-loss", handlers.AddProfit)
		api.PUT("/realized-profit-loss", handlers.UpdateProfit)
		api.DELETE("/realized-profit-loss", handlers.DeleteProfit)
		api.GET("/realized-profit-loss/monthly", handlers.GetMonthlyProfits)

		// 本月目标
		api.GET("/target-price", handlers.GetTargetPrice)
		api.PUT("/target-price", handlers.UpdateTargetPrice)

		// 汇率
		api.GET("/exchange-rate", handlers.GetExchangeRate)

		// 界面状态
		api.GET("/ui-state/:key", handlers.GetUIState)
		api.PUT("/ui-state/:key", handlers.SetUIState)
		api.DELETE("/ui-state/:key", handlers.RemoveUIState)
	}
}

// Start 启动服务器
func (s *Server) Start() {
	// 在goroutine中启动服务器
	go func() {
		log.Printf("API服务器启动在 %s\n", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务器失败: %v\n", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 设置超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 优雅关闭
	if err := s.srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务器关闭失败: %v\n", err)
	}

	log.Println("服务器已关闭")
}

// Router 返回底层路由，测试用
func (s *Server) Router() *gin.Engine {
	return s.router
}
