package model

import (
	"time"
)

// RealizedProfit 已实现损益记录，sell_price为带符号的损益金额
type RealizedProfit struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Ticker    string    `json:"ticker" gorm:"size:16"`
	SellPrice float64   `json:"sell_price"`
	CreatedAt time.Time `json:"created_at"`
}

// MonthTarget 本月目标收益，只保留当前值，更新时覆盖
type MonthTarget struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	TargetPrice float64 `json:"target_price"`
}
