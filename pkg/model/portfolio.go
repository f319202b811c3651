package model

import (
	"time"
)

// Portfolio 持仓记录，每个ticker只有一条
type Portfolio struct {
	ID            uint      `json:"-" gorm:"primaryKey"`
	Ticker        string    `json:"ticker" gorm:"uniqueIndex;size:16"`
	Name          string    `json:"name"`
	AvgPrice      float64   `json:"avg_price"`
	Shares        float64   `json:"shares"`
	Price         float64   `json:"price"`
	PER           float64   `json:"per" gorm:"column:per"`
	PBR           float64   `json:"pbr" gorm:"column:pbr"`
	LowPriceYear  float64   `json:"low_price_year"`
	HighPriceYear float64   `json:"high_price_year"`
	UpdateDate    time.Time `json:"update_date"`
}

// Pick 关注的股票，记录收藏时的价格
type Pick struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Ticker    string    `json:"ticker" gorm:"uniqueIndex;size:16"`
	PickPrice float64   `json:"pick_price"`
	Price     float64   `json:"price"`
	PBR       float64   `json:"pbr" gorm:"column:pbr"`
	CreatedAt time.Time `json:"created_at"`
}
