package valuation

import (
	"math"
)

// Currency 结算货币
type Currency string

const (
	CurrencyKRW Currency = "krw" // 韩元（本币）
	CurrencyUSD Currency = "usd" // 美元（股票计价货币）
)

// Valid 检查货币代码是否合法
func (c Currency) Valid() bool {
	return c == CurrencyKRW || c == CurrencyUSD
}

// RateFactor 换算系数：本币结算时乘以汇率，美元结算时为1
func (c Currency) RateFactor(exchangeRate float64) float64 {
	if c == CurrencyKRW {
		return exchangeRate
	}
	return 1
}

// Position 估值计算的输入快照，持仓价格均以美元计价
type Position struct {
	Ticker   string
	AvgPrice float64
	Price    float64
	Shares   float64
}

// Summary 持仓汇总估值结果
// 金额均为未舍入的原始值，ReturnRateValid为false时表示
// 投资金额为零、收益率无法计算（不会返回NaN或Inf）
type Summary struct {
	Currency         Currency `json:"currency"`
	TotalInvestment  float64  `json:"total_investment"`
	TotalMarketValue float64  `json:"total_market_value"`
	TotalProfit      float64  `json:"total_profit"`
	TotalReturnRate  float64  `json:"total_return_rate"`
	ReturnRateValid  bool     `json:"return_rate_valid"`
}

// PositionValue 单个持仓的估值结果
type PositionValue struct {
	Ticker          string   `json:"ticker"`
	Currency        Currency `json:"currency"`
	Investment      float64  `json:"investment"`
	MarketValue     float64  `json:"market_value"`
	Profit          float64  `json:"profit"`
	ReturnRate      float64  `json:"return_rate"`
	ReturnRateValid bool     `json:"return_rate_valid"`
}

// Valuate 计算持仓列表的汇总估值
// 空列表返回全零汇总，收益率标记为无法计算
func Valuate(positions []Position, currency Currency, exchangeRate float64) Summary {
	factor := currency.RateFactor(exchangeRate)

	summary := Summary{Currency: currency}
	for _, p := range positions {
		summary.TotalInvestment += p.AvgPrice * p.Shares * factor
		summary.TotalMarketValue += p.Price * p.Shares * factor
	}
	summary.TotalProfit = summary.TotalMarketValue - summary.TotalInvestment

	if summary.TotalInvestment != 0 {
		summary.TotalReturnRate = summary.TotalProfit / summary.TotalInvestment * 100
		summary.ReturnRateValid = true
	}

	return summary
}

// ValuatePosition 计算单个持仓的估值
func ValuatePosition(p Position, currency Currency, exchangeRate float64) PositionValue {
	factor := currency.RateFactor(exchangeRate)

	value := PositionValue{
		Ticker:      p.Ticker,
		Currency:    currency,
		Investment:  p.AvgPrice * p.Shares * factor,
		MarketValue: p.Price * p.Shares * factor,
	}
	value.Profit = value.MarketValue - value.Investment

	if value.Investment != 0 {
		value.ReturnRate = value.Profit / value.Investment * 100
		value.ReturnRateValid = true
	}

	return value
}

// Round 按指定小数位数舍入，仅用于展示
// 韩元金额0位，美元汇总2位，美元单价4位
func Round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

// DisplayDecimals 各货币汇总金额的展示小数位数
func DisplayDecimals(currency Currency) int {
	if currency == CurrencyKRW {
		return 0
	}
	return 2
}
