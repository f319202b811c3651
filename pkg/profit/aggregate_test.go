package profit

import (
	"reflect"
	"testing"
	"time"

	"github.com/jooyoni/stock-tracker/pkg/model"
)

func entry(ticker string, sellPrice float64, date string) model.RealizedProfit {
	t, _ := time.Parse("2006-01-02", date)
	return model.RealizedProfit{Ticker: ticker, SellPrice: sellPrice, CreatedAt: t}
}

func TestGroupByMonth(t *testing.T) {
	entries := []model.RealizedProfit{
		entry("AAPL", 100, "2024-01-05"),
		entry("MSFT", 50, "2024-01-20"),
		entry("AAPL", 30, "2024-02-03"),
	}

	buckets := GroupByMonth(entries)
	want := []MonthBucket{
		{Year: 2024, Month: 1, Price: 150},
		{Year: 2024, Month: 2, Price: 30},
	}
	if !reflect.DeepEqual(buckets, want) {
		t.Errorf("月度桶 = %+v, 期望 %+v", buckets, want)
	}

	if total := RunningTotal(entries); total != 180 {
		t.Errorf("损益合计 = %v, 期望 180", total)
	}
}

func TestGroupByMonthEmpty(t *testing.T) {
	if buckets := GroupByMonth(nil); len(buckets) != 0 {
		t.Errorf("空输入应返回空桶: %+v", buckets)
	}
	if total := RunningTotal(nil); total != 0 {
		t.Errorf("空输入的合计应为0: %v", total)
	}
}

func TestGroupByMonthCrossYear(t *testing.T) {
	// 不同年份的相同月份不能合并
	entries := []model.RealizedProfit{
		entry("AAPL", 10, "2023-12-30"),
		entry("AAPL", 20, "2024-01-02"),
		entry("AAPL", 30, "2025-01-02"),
	}
	buckets := GroupByMonth(entries)
	want := []MonthBucket{
		{Year: 2023, Month: 12, Price: 10},
		{Year: 2024, Month: 1, Price: 20},
		{Year: 2025, Month: 1, Price: 30},
	}
	if !reflect.DeepEqual(buckets, want) {
		t.Errorf("月度桶 = %+v, 期望 %+v", buckets, want)
	}
}

func TestGroupByMonthIdempotent(t *testing.T) {
	entries := []model.RealizedProfit{
		entry("AAPL", 100, "2024-01-05"),
		entry("MSFT", -40, "2024-01-20"),
		entry("AAPL", 30, "2024-02-03"),
	}

	first := GroupByMonth(entries)
	second := GroupByMonth(entries)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("重复调用结果不一致: %+v != %+v", first, second)
	}

	// 输入不能被修改
	if entries[0].SellPrice != 100 || entries[1].SellPrice != -40 {
		t.Error("聚合不应修改输入记录")
	}
}

func TestGroupByMonthSignedValues(t *testing.T) {
	// 亏损月份的桶金额为负
	entries := []model.RealizedProfit{
		entry("AAPL", -100, "2024-03-01"),
		entry("MSFT", 40, "2024-03-15"),
	}
	buckets := GroupByMonth(entries)
	if len(buckets) != 1 || buckets[0].Price != -60 {
		t.Errorf("月度桶 = %+v, 期望 -60", buckets)
	}
}

func TestMonthProgress(t *testing.T) {
	buckets := []MonthBucket{
		{Year: 2024, Month: 1, Price: 150},
		{Year: 2024, Month: 2, Price: 30},
	}
	now, _ := time.Parse("2006-01-02", "2024-02-15")

	// 本月150000目标，已实现30 + 未实现200000.7
	got := MonthProgress(buckets, now, 200000.7, 150000)
	if got != 50030 {
		t.Errorf("进度 = %v, 期望 50030", got)
	}
}

func TestMonthProgressNoBucket(t *testing.T) {
	// 本月没有已实现损益时按0处理
	now, _ := time.Parse("2006-01-02", "2024-05-01")
	got := MonthProgress(nil, now, 10000, 30000)
	if got != -20000 {
		t.Errorf("进度 = %v, 期望 -20000", got)
	}
}

func TestFormatDayMonth(t *testing.T) {
	d, _ := time.Parse("2006-01-02", "2024-03-05")
	if got := FormatDay(d); got != "2024-03-05" {
		t.Errorf("日视图日期 = %q, 期望 2024-03-05", got)
	}
	if got := FormatMonth(MonthBucket{Year: 2024, Month: 3}); got != "2024-03" {
		t.Errorf("月视图日期 = %q, 期望 2024-03", got)
	}
}
