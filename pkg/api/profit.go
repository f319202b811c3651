package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jooyoni/stock-tracker/pkg/messaging"
	"github.com/jooyoni/stock-tracker/pkg/model"
	"github.com/jooyoni/stock-tracker/pkg/profit"
	"github.com/jooyoni/stock-tracker/pkg/repository"
	"github.com/jooyoni/stock-tracker/pkg/valuation"
)

// ProfitResponse 日视图的损益记录，附带格式化日期
type ProfitResponse struct {
	model.RealizedProfit
	Date string `json:"date"`
}

// GetProfits 获取已实现损益列表（created_at升序）
func (h *Handlers) GetProfits(c *gin.Context) {
	entries, err := h.store.ListProfits()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取已实现损益失败: " + err.Error(),
		})
		return
	}

	responses := make([]ProfitResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ProfitResponse{
			RealizedProfit: entry,
			Date:           profit.FormatDay(entry.CreatedAt),
		})
	}

	c.JSON(http.StatusOK, responses)
}

// ProfitRequest 添加/修改损益记录请求
type ProfitRequest struct {
	ID        string  `json:"id"`
	Ticker    string  `json:"ticker" binding:"required"`
	SellPrice float64 `json:"sell_price"`
}

// AddProfit 添加损益记录，sell_price为带符号的损益金额
func (h *Handlers) AddProfit(c *gin.Context) {
	var req ProfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的请求参数: " + err.Error(),
		})
		return
	}

	entry := model.RealizedProfit{
		Ticker:    req.Ticker,
		SellPrice: req.SellPrice,
		CreatedAt: time.Now(),
	}
	if err := h.store.SaveProfit(&entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "保存已实现损益失败: " + err.Error(),
		})
		return
	}

	h.publish(messaging.SubjectProfitsUpdated, gin.H{"id": entry.ID})

	c.JSON(http.StatusOK, entry)
}

// UpdateProfit 修改损益记录
func (h *Handlers) UpdateProfit(c *gin.Context) {
	var req ProfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的请求参数: " + err.Error(),
		})
		return
	}
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id不能为空"})
		return
	}

	if err := h.store.UpdateProfit(req.ID, req.Ticker, req.SellPrice); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "损益记录不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "更新已实现损益失败: " + err.Error(),
		})
		return
	}

	h.publish(messaging.SubjectProfitsUpdated, gin.H{"id": req.ID})

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// DeleteProfitRequest 删除请求，id放在请求体里（前端如此调用）
type DeleteProfitRequest struct {
	ID string `json:"id" binding:"required"`
}

// DeleteProfit 删除损益记录
func (h *Handlers) DeleteProfit(c *gin.Context) {
	var req DeleteProfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的请求参数: " + err.Error(),
		})
		return
	}

	if err := h.store.DeleteProfit(req.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "损益记录不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "删除已实现损益失败: " + err.Error(),
		})
		return
	}

	h.publish(messaging.SubjectProfitsUpdated, gin.H{"id": req.ID})

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// MonthBucketResponse 月视图的损益桶，附带格式化月份
type MonthBucketResponse struct {
	profit.MonthBucket
	Label string `json:"label"`
}

// GetMonthlyProfits 获取月度聚合视图
// 返回月度桶、损益合计和本月相对目标的进度
func (h *Handlers) GetMonthlyProfits(c *gin.Context) {
	entries, err := h.store.ListProfits()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取已实现损益失败: " + err.Error(),
		})
		return
	}

	buckets := profit.GroupByMonth(entries)
	responses := make([]MonthBucketResponse, 0, len(buckets))
	for _, bucket := range buckets {
		responses = append(responses, MonthBucketResponse{
			MonthBucket: bucket,
			Label:       profit.FormatMonth(bucket),
		})
	}

	target, err := h.store.GetTarget()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取目标金额失败: " + err.Error(),
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

	// 未实现损益换算成韩元后并入本月进度
	summary := valuation.Valuate(toValuationPositions(positions), valuation.CurrencyKRW, rate.Rate)
	progress := profit.MonthProgress(buckets, time.Now(), summary.TotalProfit, target.TargetPrice)

	c.JSON(http.StatusOK, gin.H{
		"months":        responses,
		"running_total": profit.RunningTotal(entries),
		"target_price":  target.TargetPrice,
		"progress":      progress,
	})
}

// GetTargetPrice 获取本月目标金额
func (h *Handlers) GetTargetPrice(c *gin.Context) {
	target, err := h.store.GetTarget()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取目标金额失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, target)
}

// TargetPriceRequest 修改目标金额请求
type TargetPriceRequest struct {
	TargetPrice float64 `json:"target_price"`
}

// UpdateTargetPrice 修改本月目标金额，直接覆盖
func (h *Handlers) UpdateTargetPrice(c *gin.Context) {
	var req TargetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的请求参数: " + err.Error(),
		})
		return
	}

	if err := h.store.SaveTarget(req.TargetPrice); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "保存目标金额失败: " + err.Error(),
		})
		return
	}

	h.publish(messaging.SubjectTargetUpdated, gin.H{"target_price": req.TargetPrice})

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
