package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jooyoni/stock-tracker/pkg/messaging"
	"github.com/jooyoni/stock-tracker/pkg/model"
	"github.com/jooyoni/stock-tracker/pkg/repository"
	"github.com/jooyoni/stock-tracker/pkg/valuation"
)

// PickResponse 关注股票响应，附带相对收藏价的涨跌幅
type PickResponse struct {
	model.Pick
	ChangeRate      float64 `json:"change_rate"`
	ChangeRateValid bool    `json:"change_rate_valid"`
}

// GetPicks 获取关注列表
func (h *Handlers) GetPicks(c *gin.Context) {
	picks, err := h.store.ListPicks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取关注列表失败: " + err.Error(),
		})
		return
	}

	// 涨跌幅 = (现价 - 收藏价) / 收藏价 * 100
	responses := make([]PickResponse, 0, len(picks))
	for _, pick := range picks {
		resp := PickResponse{Pick: pick}
		if pick.PickPrice != 0 {
			resp.ChangeRate = valuation.Round((pick.Price-pick.PickPrice)/pick.PickPrice*100, 2)
			resp.ChangeRateValid = true
		}
		responses = append(responses, resp)
	}

	c.JSON(http.StatusOK, responses)
}

// AddPickRequest 添加关注股票请求
type AddPickRequest struct {
	Ticker    string  `json:"ticker" binding:"required"`
	PickPrice float64 `json:"pick_price"`
}

// AddPick 添加关注股票，记录收藏时的价格
func (h *Handlers) AddPick(c *gin.Context) {
	var req AddPickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的请求参数: " + err.Error(),
		})
		return
	}
	if req.PickPrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "收藏价不能为负数",
		})
		return
	}

	pick := model.Pick{
		Ticker:    req.Ticker,
		PickPrice: req.PickPrice,
		Price:     req.PickPrice,
		CreatedAt: time.Now(),
	}

	// 没传收藏价时用当前行情价
	if quote, err := h.quotes.FetchQuote(req.Ticker); err != nil {
		log.Printf("抓取 %s 行情失败: %v", req.Ticker, err)
	} else {
		pick.Price = quote.Price
		pick.PBR = quote.PBR
		if pick.PickPrice == 0 {
			pick.PickPrice = quote.Price
		}
	}

	if pick.PickPrice <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "收藏价必须大于零",
		})
		return
	}

	if err := h.store.SavePick(&pick); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "保存关注股票失败: " + err.Error(),
		})
		return
	}

	h.publish(messaging.SubjectPicksUpdated, gin.H{"ticker": pick.Ticker})

	c.JSON(http.StatusOK, pick)
}

// DeletePick 删除关注股票
func (h *Handlers) DeletePick(c *gin.Context) {
	ticker := c.Query("ticker")
	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ticker参数不能为空",
		})
		return
	}

	if err := h.store.DeletePick(ticker); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "关注股票不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "删除关注股票失败: " + err.Error(),
		})
		return
	}

	h.publish(messaging.SubjectPicksUpdated, gin.H{"ticker": ticker})

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
