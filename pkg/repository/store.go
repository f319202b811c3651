package repository

import (
	"errors"

	"github.com/jooyoni/stock-tracker/pkg/model"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("记录不存在")

// Store 数据存取接口
// pkg/database提供Postgres实现，本包提供内存实现
// ListProfits必须按created_at升序返回（月度聚合依赖该顺序）
// SavePick重复收藏同一ticker时只更新price和pbr，
// 保留最初的收藏价和收藏时间
type Store interface {
	// 观察列表
	ListStocks() ([]model.Stock, error)
	SaveStock(stock *model.Stock) error
	DeleteStock(ticker string) error

	// 关注股票
	ListPicks() ([]model.Pick, error)
	SavePick(pick *model.Pick) error
	DeletePick(ticker string) error

	// 持仓
	ListPositions() ([]model.Portfolio, error)
	GetPosition(ticker string) (*model.Portfolio, error)
	SavePosition(position *model.Portfolio) error
	UpdatePosition(ticker string, avgPrice, shares float64) error
	DeletePosition(ticker string) error

	// 已实现损益
	ListProfits() ([]model.RealizedProfit, error)
	SaveProfit(entry *model.RealizedProfit) error
	UpdateProfit(id, ticker string, sellPrice float64) error
	DeleteProfit(id string) error

	// 本月目标
	GetTarget() (*model.MonthTarget, error)
	SaveTarget(targetPrice float64) error

	// 汇率
	GetExchangeRate() (*model.ExchangeRate, error)
	SaveExchangeRate(rate float64) error
}
