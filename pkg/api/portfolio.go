package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jooyoni/stock-tracker/pkg/messaging"
	"github.com/jooyoni/stock-tracker/pkg/model"
	"github.com/jooyoni/stock-tracker/pkg/repository"
	"github.com/jooyoni/stock-tracker/pkg/valuation"
)

// GetPortfolio 获取持仓列表
func (h *Handlers) GetPortfolio(c *gin.Context) {
	positions, err := h.store.ListPositions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取持仓失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, positions)
}

// PositionRequest 添加/修改持仓请求，字段名与前端一致
type PositionRequest struct {
	Ticker   string  `json:"ticker" binding:"required"`
	AvgPrice float64 `json:"avgPrice"`
	Shares   float64 `json:"shares"`
}

// validate 持仓数量和单价只允许非负值
func (r *PositionRequest) validate() error {
	if r.AvgPrice < 0 {
		return errors.New("平均单价不能为负数")
	}
	if r.Shares < 0 {
		return errors.New("持有数量不能为负数")
	}
	return nil
}

// AddPosition 添加持仓
func (h *Handlers) AddPosition(c *gin.Context) {
	var req PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的请求参数: " + err.Error(),
		})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	position := model.Portfolio{
		Ticker:     req.Ticker,
		AvgPrice:   req.AvgPrice,
		Shares:     req.Shares,
		UpdateDate: time.Now(),
	}

	// 立即抓一次行情，失败时等调度器补齐
	if quote, err := h.quotes.FetchQuote(req.Ticker); err != nil {
		log.Printf("抓取 %s 行情失败: %v", req.Ticker, err)
	} else {
		position.Name = quote.Name
		position.Price = quote.Price
		position.PER = quote.PER
		position.PBR = quote.PBR
		position.LowPriceYear = quote.LowPriceYear
		position.HighPriceYear = quote.HighPriceYear
	}

	if err := h.store.SavePosition(&position); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "保存持仓失败: " + err.Error(),
		})
		return
	}

	h.publish(messaging.SubjectPortfolioUpdated, gin.H{"ticker": position.Ticker})

	c.JSON(http.StatusOK, position)
}

// UpdatePosition 修改持仓的平均单价和数量
func (h *Handlers) UpdatePosition(c *gin.Context) {
	var req PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的请求参数: " + err.Error(),
		})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.UpdatePosition(req.Ticker, req.AvgPrice, req.Shares); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "持仓不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "更新持仓失败: " + err.Error(),
		})
		return
	}

	h.publish(messaging.SubjectPortfolioUpdated, gin.H{"ticker": req.Ticker})

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// DeletePosition 删除持仓
func (h *Handlers) DeletePosition(c *gin.Context) {
	ticker := c.Query("ticker")
	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ticker参数不能为空",
		})
		return
	}

	if err := h.store.DeletePosition(ticker); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "持仓不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "删除持仓失败: " + err.Error(),
		})
		return
	}

	h.publish(messaging.SubjectPortfolioUpdated, gin.H{"ticker": ticker})

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GetPortfolioSummary 获取持仓汇总估值
// currency参数为krw或usd，默认krw
func (h *Handlers) GetPortfolioSummary(c *gin.Context) {
	currency := valuation.Currency(c.DefaultQuery("currency", string(valuation.CurrencyKRW)))
	if !currency.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "不支持的货币: " + string(currency),
		})
		return
	}

	positions, err := h.store.ListPositions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取持仓失败: " + err.Error(),
		})
		return
	}

	rate, err := h.store.GetExchangeRate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取汇率失败: " + err.Error(),
		})
		return
	}

	summary := valuation.Valuate(toValuationPositions(positions), currency, rate.Rate)

	// 展示值按货币的小数位舍入，原始值照常返回
	decimals := valuation.DisplayDecimals(currency)
	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"display": gin.H{
			"total_investment":   valuation.Round(summary.TotalInvestment, decimals),
			"total_market_value": valuation.Round(summary.TotalMarketValue, decimals),
			"total_profit":       valuation.Round(summary.TotalProfit, decimals),
			"total_return_rate":  valuation.Round(summary.TotalReturnRate, 2),
		},
		"exchange_rate": rate.Rate,
	})
}

// GetAverageDown 补仓试算
// 参数：ticker、add_target_price（美元单价）、add_money（韩元资金）
func (h *Handlers) GetAverageDown(c *gin.Context) {
	ticker := c.Query("ticker")
	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ticker参数不能为空",
		})
		return
	}

	addTargetPrice, err := strconv.ParseFloat(c.Query("add_target_price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "add_target_price参数无效",
		})
		return
	}
	addMoney, err := strconv.ParseFloat(c.Query("add_money"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "add_money参数无效",
		})
		return
	}

	position, err := h.store.GetPosition(ticker)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "持仓不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取持仓失败: " + err.Error(),
		})
		return
	}

	rate, err := h.store.GetExchangeRate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取汇率失败: " + err.Error(),
		})
		return
	}

	result := valuation.AverageDown(position.AvgPrice, position.Shares, addTargetPrice, addMoney, rate.Rate)

	c.JSON(http.StatusOK, gin.H{
		"ticker": ticker,
		"result": result,
		"display": gin.H{
			"new_avg_price": valuation.Round(result.NewAvgPrice, 4),
		},
	})
}

// toValuationPositions 持仓记录转成估值引擎的输入快照
func toValuationPositions(positions []model.Portfolio) []valuation.Position {
	snapshots := make([]valuation.Position, 0, len(positions))
	for _, p := range positions {
		snapshots = append(snapshots, valuation.Position{
			Ticker:   p.Ticker,
			AvgPrice: p.AvgPrice,
			Price:    p.Price,
			Shares:   p.Shares,
		})
	}
	return snapshots
}
