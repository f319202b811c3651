package scheduler

import (
	"errors"
	"testing"

	"github.com/jooyoni/stock-tracker/pkg/collector"
	"github.com/jooyoni/stock-tracker/pkg/messaging"
	"github.com/jooyoni/stock-tracker/pkg/model"
	"github.com/jooyoni/stock-tracker/pkg/monitor"
	"github.com/jooyoni/stock-tracker/pkg/repository"
)

type fakeFetcher struct {
	quotes map[string]collector.Quote
	rate   float64
	err    error
}

func (f *fakeFetcher) FetchQuote(ticker string) (*collector.Quote, error) {
	if f.err != nil {
		return nil, f.err
	}
	quote, ok := f.quotes[ticker]
	if !ok {
		return nil, errors.New("没有行情")
	}
	return &quote, nil
}

func (f *fakeFetcher) FetchRate() (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.rate, nil
}

func TestRefreshRate(t *testing.T) {
	store := repository.NewMemory()
	fetcher := &fakeFetcher{rate: 1340.5}
	mon := monitor.NewMonitor()

	sched := NewScheduler(store, fetcher, fetcher, messaging.NoopPublisher{}, mon)
	sched.RefreshRate()

	rate, err := store.GetExchangeRate()
	if err != nil {
		t.Fatalf("读取汇率失败: %v", err)
	}
	if rate.Rate != 1340.5 {
		t.Errorf("汇率 = %v, 期望 1340.5", rate.Rate)
	}
}

func TestRefreshRateFetchError(t *testing.T) {
	store := repository.NewMemory()
	store.SaveExchangeRate(1300)
	fetcher := &fakeFetcher{err: errors.New("连接超时")}
	mon := monitor.NewMonitor()

	sched := NewScheduler(store, fetcher, fetcher, messaging.NoopPublisher{}, mon)
	sched.RefreshRate()

	// 抓取失败时保留旧汇率
	rate, _ := store.GetExchangeRate()
	if rate.Rate != 1300 {
		t.Errorf("抓取失败后汇率不应变化: %v", rate.Rate)
	}
}

func TestRefreshQuotes(t *testing.T) {
	store := repository.NewMemory()
	store.SaveStock(&model.Stock{Ticker: "AAPL"})
	store.SavePosition(&model.Portfolio{Ticker: "AAPL", AvgPrice: 150, Shares: 10})
	store.SavePick(&model.Pick{Ticker: "MSFT", PickPrice: 300})

	fetcher := &fakeFetcher{quotes: map[string]collector.Quote{
		"AAPL": {Ticker: "AAPL", Name: "Apple Inc.", Price: 182.5, PBR: 44.6, PER: 28.4, LowPriceYear: 124, HighPriceYear: 199},
		"MSFT": {Ticker: "MSFT", Name: "Microsoft", Price: 410, PBR: 12.1},
	}}
	mon := monitor.NewMonitor()

	sched := NewScheduler(store, fetcher, fetcher, messaging.NoopPublisher{}, mon)
	sched.RefreshQuotes()

	stocks, _ := store.ListStocks()
	if stocks[0].Price != 182.5 || stocks[0].Name != "Apple Inc." {
		t.Errorf("观察列表行情未更新: %+v", stocks[0])
	}

	positions, _ := store.ListPositions()
	if positions[0].Price != 182.5 {
		t.Errorf("持仓行情未更新: %+v", positions[0])
	}
	// 平均单价和数量不能被行情刷新改动
	if positions[0].AvgPrice != 150 || positions[0].Shares != 10 {
		t.Errorf("刷新不应改动持仓成本: %+v", positions[0])
	}

	picks, _ := store.ListPicks()
	if picks[0].Price != 410 || picks[0].PBR != 12.1 {
		t.Errorf("关注股票行情未更新: %+v", picks[0])
	}
	if picks[0].PickPrice != 300 {
		t.Errorf("刷新不应改动收藏价: %+v", picks[0])
	}
}

func TestCollectTickersDeduplicates(t *testing.T) {
	store := repository.NewMemory()
	store.SaveStock(&model.Stock{Ticker: "AAPL"})
	store.SavePosition(&model.Portfolio{Ticker: "AAPL"})
	store.SavePick(&model.Pick{Ticker: "AAPL", PickPrice: 1})

	sched := NewScheduler(store, &fakeFetcher{}, &fakeFetcher{}, messaging.NoopPublisher{}, monitor.NewMonitor())
	tickers := sched.collectTickers()
	if len(tickers) != 1 || tickers[0] != "AAPL" {
		t.Errorf("去重后的ticker = %v", tickers)
	}
}
