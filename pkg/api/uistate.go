package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jooyoni/stock-tracker/pkg/uistate"
)

// 界面状态接口：勾选的ticker列表、最后查看的ticker等
// 值是前端序列化好的JSON字符串，服务端不解析

// GetUIState 读取界面状态
func (h *Handlers) GetUIState(c *gin.Context) {
	key := c.Param("key")

	value, err := h.uiStore.Get(key)
	if err != nil {
		if errors.Is(err, uistate.ErrKeyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "键不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "读取界面状态失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

// SetUIStateRequest 写入界面状态请求
type SetUIStateRequest struct {
	Value string `json:"value"`
}

// SetUIState 写入界面状态
func (h *Handlers) SetUIState(c *gin.Context) {
	key := c.Param("key")

	var req SetUIStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的请求参数: " + err.Error(),
		})
		return
	}

	if err := h.uiStore.Set(key, req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "保存界面状态失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// RemoveUIState 删除界面状态
func (h *Handlers) RemoveUIState(c *gin.Context) {
	key := c.Param("key")

	if err := h.uiStore.Remove(key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "删除界面状态失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
