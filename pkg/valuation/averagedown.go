package valuation

import (
	"math"
)

// AverageDownResult 补仓试算结果
// 纯投影计算，不会修改持仓记录
type AverageDownResult struct {
	AddMoneyUSD float64 `json:"add_money_usd"`  // 换算成美元的补仓资金
	CanBuy      float64 `json:"can_buy_shares"` // 可买入的整数股数
	NewAvgPrice float64 `json:"new_avg_price"`  // 补仓后的预估平均单价（美元）
	Valid       bool    `json:"valid"`          // false表示无法计算（目标单价非正或总股数为零）
}

// AverageDown 计算补仓后的平均成本
// addMoneyKRW为准备投入的韩元资金，addTargetPrice为补仓目标单价（美元）
func AverageDown(avgPrice, shares, addTargetPrice, addMoneyKRW, exchangeRate float64) AverageDownResult {
	result := AverageDownResult{}
	if exchangeRate > 0 {
		result.AddMoneyUSD = addMoneyKRW / exchangeRate
	}

	// 目标单价非正时买不到任何股票，整个试算无法成立
	if addTargetPrice <= 0 {
		return result
	}
	result.CanBuy = math.Floor(result.AddMoneyUSD / addTargetPrice)

	totalShares := shares + result.CanBuy
	if totalShares == 0 {
		return result
	}

	result.NewAvgPrice = (avgPrice*shares + result.AddMoneyUSD) / totalShares
	result.Valid = true
	return result
}
