package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jooyoni/stock-tracker/pkg/collector"
	"github.com/jooyoni/stock-tracker/pkg/messaging"
	"github.com/jooyoni/stock-tracker/pkg/monitor"
	"github.com/jooyoni/stock-tracker/pkg/repository"
)

// Scheduler 定时刷新行情和汇率
type Scheduler struct {
	cron      *cron.Cron
	store     repository.Store
	quotes    collector.QuoteFetcher
	rates     collector.RateFetcher
	publisher messaging.Publisher
	monitor   *monitor.Monitor
}

// NewScheduler 创建任务调度器
func NewScheduler(
	store repository.Store,
	quotes collector.QuoteFetcher,
	rates collector.RateFetcher,
	publisher messaging.Publisher,
	mon *monitor.Monitor,
) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		store:     store,
		quotes:    quotes,
		rates:     rates,
		publisher: publisher,
		monitor:   mon,
	}
}

// Start 启动调度器
func (s *Scheduler) Start(quoteSpec, rateSpec string) error {
	if _, err := s.cron.AddFunc(quoteSpec, s.RefreshQuotes); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(rateSpec, s.RefreshRate); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("调度器已启动 (行情: %s, 汇率: %s)", quoteSpec, rateSpec)
	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RefreshRate 刷新汇率
func (s *Scheduler) RefreshRate() {
	rate, err := s.rates.FetchRate()
	if err != nil {
		log.Printf("刷新汇率失败: %v", err)
		s.monitor.UpdateStatus("collector", "unhealthy", err.Error())
		return
	}

	if err := s.store.SaveExchangeRate(rate); err != nil {
		log.Printf("保存汇率失败: %v", err)
		s.monitor.UpdateStatus("database", "unhealthy", err.Error())
		return
	}

	s.monitor.UpdateStatus("collector", "healthy", "")
	s.monitor.UpdateStatus("database", "healthy", "")

	if err := s.publisher.Publish(messaging.SubjectRateUpdated, map[string]interface{}{
		"exchange_rate": rate,
		"updated_at":    time.Now(),
	}); err != nil {
		log.Printf("发布汇率更新事件失败: %v", err)
	}

	log.Printf("汇率已刷新: %.2f", rate)
}

// RefreshQuotes 刷新观察列表、持仓和关注股票的行情
func (s *Scheduler) RefreshQuotes() {
	tickers := s.collectTickers()
	if len(tickers) == 0 {
		return
	}

	updated := 0
	for _, ticker := range tickers {
		quote, err := s.quotes.FetchQuote(ticker)
		if err != nil {
			log.Printf("抓取 %s 行情失败: %v", ticker, err)
			continue
		}
		if err := s.applyQuote(quote); err != nil {
			log.Printf("更新 %s 行情失败: %v", ticker, err)
			continue
		}
		updated++
	}

	if updated > 0 {
		s.monitor.UpdateStatus("collector", "healthy", "")
		if err := s.publisher.Publish(messaging.SubjectQuotesUpdated, map[string]interface{}{
			"updated":    updated,
			"updated_at": time.Now(),
		}); err != nil {
			log.Printf("发布行情更新事件失败: %v", err)
		}
	}

	log.Printf("行情刷新完成: %d/%d", updated, len(tickers))
}

// collectTickers 收集所有需要刷新的ticker，去重
func (s *Scheduler) collectTickers() []string {
	seen := make(map[string]bool)
	var tickers []string

	add := func(ticker string) {
		if ticker != "" && !seen[ticker] {
			seen[ticker] = true
			tickers = append(tickers, ticker)
		}
	}

	if stocks, err := s.store.ListStocks(); err == nil {
		for _, stock := range stocks {
			add(stock.Ticker)
		}
	}
	if positions, err := s.store.ListPositions(); err == nil {
		for _, position := range positions {
			add(position.Ticker)
		}
	}
	if picks, err := s.store.ListPicks(); err == nil {
		for _, pick := range picks {
			add(pick.Ticker)
		}
	}

	return tickers
}

// applyQuote 把抓到的行情写回各个表
func (s *Scheduler) applyQuote(quote *collector.Quote) error {
	now := time.Now()

	stocks, err := s.store.ListStocks()
	if err != nil {
		return err
	}
	for _, stock := range stocks {
		if stock.Ticker != quote.Ticker {
			continue
		}
		stock.Name = quote.Name
		stock.Price = quote.Price
		stock.PER = quote.PER
		stock.PBR = quote.PBR
		stock.LowPriceYear = quote.LowPriceYear
		stock.HighPriceYear = quote.HighPriceYear
		stock.UpdateDate = now
		if err := s.store.SaveStock(&stock); err != nil {
			return err
		}
	}

	positions, err := s.store.ListPositions()
	if err != nil {
		return err
	}
	for _, position := range positions {
		if position.Ticker != quote.Ticker {
			continue
		}
		position.Name = quote.Name
		position.Price = quote.Price
		position.PER = quote.PER
		position.PBR = quote.PBR
		position.LowPriceYear = quote.LowPriceYear
		position.HighPriceYear = quote.HighPriceYear
		position.UpdateDate = now
		if err := s.store.SavePosition(&position); err != nil {
			return err
		}
	}

	picks, err := s.store.ListPicks()
	if err != nil {
		return err
	}
	for _, pick := range picks {
		if pick.Ticker != quote.Ticker {
			continue
		}
		pick.Price = quote.Price
		pick.PBR = quote.PBR
		if err := s.store.SavePick(&pick); err != nil {
			return err
		}
	}

	return nil
}
