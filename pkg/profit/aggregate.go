package profit

import (
	"fmt"
	"math"
	"time"

	"github.com/jooyoni/stock-tracker/pkg/model"
)

// MonthBucket 按月合并后的损益桶
type MonthBucket struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Price float64 `json:"price"`
}

// GroupByMonth 把已实现损益按月合并
// 单遍扫描，只合并created_at年月相同的相邻记录，因此
// 前置条件：输入必须按created_at升序排列（存储层保证）。
// 不修改输入，重复调用结果一致。
func GroupByMonth(entries []model.RealizedProfit) []MonthBucket {
	var buckets []MonthBucket
	for _, entry := range entries {
		year := entry.CreatedAt.Year()
		month := int(entry.CreatedAt.Month())

		if n := len(buckets); n > 0 && buckets[n-1].Year == year && buckets[n-1].Month == month {
			buckets[n-1].Price += entry.SellPrice
			continue
		}
		buckets = append(buckets, MonthBucket{Year: year, Month: month, Price: entry.SellPrice})
	}
	return buckets
}

// RunningTotal 全部记录的损益合计
func RunningTotal(entries []model.RealizedProfit) float64 {
	var total float64
	for _, entry := range entries {
		total += entry.SellPrice
	}
	return total
}

// MonthProgress 计算本月相对目标的进度
// 本月已实现损益 + 未实现损益（韩元） - 目标金额，向下取整到整数韩元
func MonthProgress(buckets []MonthBucket, now time.Time, unrealizedProfitKRW, targetPrice float64) float64 {
	year := now.Year()
	month := int(now.Month())

	var thisMonth float64
	for _, bucket := range buckets {
		if bucket.Year == year && bucket.Month == month {
			thisMonth = bucket.Price
			break
		}
	}

	return math.Floor(thisMonth + unrealizedProfitKRW - targetPrice)
}

// FormatDay 日视图的日期格式
func FormatDay(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatMonth 月视图的日期格式
func FormatMonth(b MonthBucket) string {
	return fmt.Sprintf("%04d-%02d", b.Year, b.Month)
}
