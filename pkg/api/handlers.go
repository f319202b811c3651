package api

import (
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jooyoni/stock-tracker/pkg/collector"
	"github.com/jooyoni/stock-tracker/pkg/messaging"
	"github.com/jooyoni/stock-tracker/pkg/model"
	"github.com/jooyoni/stock-tracker/pkg/monitor"
	"github.com/jooyoni/stock-tracker/pkg/repository"
	"github.com/jooyoni/stock-tracker/pkg/uistate"
)

// Handlers API处理程序
type Handlers struct {
	store     repository.Store
	uiStore   uistate.Store
	quotes    collector.QuoteFetcher
	publisher messaging.Publisher
	monitor   *monitor.Monitor
}

// NewHandlers 创建新的API处理程序
func NewHandlers(
	store repository.Store,
	uiStore uistate.Store,
	quotes collector.QuoteFetcher,
	publisher messaging.Publisher,
	mon *monitor.Monitor,
) *Handlers {
	return &Handlers{
		store:     store,
		uiStore:   uiStore,
		quotes:    quotes,
		publisher: publisher,
		monitor:   mon,
	}
}

// publish 发布更新事件，失败只记录日志
func (h *Handlers) publish(subject string, data interface{}) {
	if err := h.publisher.Publish(subject, data); err != nil {
		log.Printf("发布更新事件失败 (%s): %v", subject, err)
	}
}

// HealthCheck 健康检查处理程序
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ReadinessCheck 就绪检查处理程序
func (h *Handlers) ReadinessCheck(c *gin.Context) {
	status := "ready"
	if !h.monitor.Healthy() {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     status,
		"components": h.monitor.GetAllStatus(),
	})
}

// GetStockList 获取观察列表，按PBR升序
func (h *Handlers) GetStockList(c *gin.Context) {
	stocks, err := h.store.ListStocks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取观察列表失败: " + err.Error(),
		})
		return
	}

	sort.SliceStable(stocks, func(i, j int) bool { return stocks[i].PBR < stocks[j].PBR })

	c.JSON(http.StatusOK, stocks)
}

// AddStockRequest 添加观察股票请求
type AddStockRequest struct {
	Ticker string `json:"ticker" binding:"required"`
}

// AddStock 添加观察股票
func (h *Handlers) AddStock(c *gin.Context) {
	var req AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的请求参数: " + err.Error(),
		})
		return
	}

	stock := model.Stock{Ticker: req.Ticker, UpdateDate: time.Now()}

	// 立即抓一次行情，失败时先保存空记录，等调度器补齐
	if quote, err := h.quotes.FetchQuote(req.Ticker); err != nil {
		log.Printf("抓取 %s 行情失败: %v", req.Ticker, err)
	} else {
		stock.Name = quote.Name
		stock.Price = quote.Price
		stock.PER = quote.PER
		stock.PBR = quote.PBR
		stock.LowPriceYear = quote.LowPriceYear
		stock.HighPriceYear = quote.HighPriceYear
	}

	if err := h.store.SaveStock(&stock); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "保存股票失败: " + err.Error(),
		})
		return
	}

	h.publish(messaging.SubjectQuotesUpdated, gin.H{"ticker": req.Ticker})

	c.JSON(http.StatusOK, stock)
}

// DeleteStock 从观察列表删除股票
func (h *Handlers) DeleteStock(c *gin.Context) {
	ticker := c.Query("ticker")
	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ticker参数不能为空",
		})
		return
	}

	if err := h.store.DeleteStock(ticker); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "股票不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "删除股票失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GetExchangeRate 获取当前汇率
func (h *Handlers) GetExchangeRate(c *gin.Context) {
	rate, err := h.store.GetExchangeRate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取汇率失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, rate)
}
