package model

import (
	"time"
)

// Stock 观察列表中的股票
type Stock struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Ticker        string    `json:"ticker" gorm:"uniqueIndex;size:16"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	PER           float64   `json:"per" gorm:"column:per"`
	PBR           float64   `json:"pbr" gorm:"column:pbr"`
	LowPriceYear  float64   `json:"low_price_year"`
	HighPriceYear float64   `json:"high_price_year"`
	UpdateDate    time.Time `json:"update_date"`
}

// ExchangeRate 汇率（1美元兑换的韩元数量）
type ExchangeRate struct {
	ID         uint      `json:"-" gorm:"primaryKey"`
	Rate       float64   `json:"exchange_rate" gorm:"column:exchange_rate"`
	UpdateDate time.Time `json:"update_date"`
}
