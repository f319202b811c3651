package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jooyoni/stock-tracker/pkg/model"
)

// Memory 内存数据仓库
// 未配置数据库时使用，测试中也用它代替Postgres
type Memory struct {
	stocks    map[string]model.Stock
	picks     map[string]model.Pick
	positions map[string]model.Portfolio
	profits   []model.RealizedProfit
	target    *model.MonthTarget
	rate      *model.ExchangeRate
	mutex     sync.RWMutex

	// 自增ID计数器，删除记录后ID也不复用
	stockSeq    uint
	pickSeq     uint
	positionSeq uint
}

// NewMemory 创建内存数据仓库
func NewMemory() *Memory {
	return &Memory{
		stocks:    make(map[string]model.Stock),
		picks:     make(map[string]model.Pick),
		positions: make(map[string]model.Portfolio),
		profits:   make([]model.RealizedProfit, 0),
	}
}

func (m *Memory) ListStocks() ([]model.Stock, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	stocks := make([]model.Stock, 0, len(m.stocks))
	for _, stock := range m.stocks {
		stocks = append(stocks, stock)
	}
	sort.Slice(stocks, func(i, j int) bool { return stocks[i].Ticker < stocks[j].Ticker })
	return stocks, nil
}

func (m *Memory) SaveStock(stock *model.Stock) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if existing, ok := m.stocks[stock.Ticker]; ok {
		stock.ID = existing.ID
	} else {
		m.stockSeq++
		stock.ID = m.stockSeq
	}
	m.stocks[stock.Ticker] = *stock
	return nil
}

func (m *Memory) DeleteStock(ticker string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.stocks[ticker]; !ok {
		return ErrNotFound
	}
	delete(m.stocks, ticker)
	return nil
}

func (m *Memory) ListPicks() ([]model.Pick, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	picks := make([]model.Pick, 0, len(m.picks))
	for _, pick := range m.picks {
		picks = append(picks, pick)
	}
	sort.Slice(picks, func(i, j int) bool { return picks[i].CreatedAt.Before(picks[j].CreatedAt) })
	return picks, nil
}

func (m *Memory) SavePick(pick *model.Pick) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// 重复收藏时只更新price和pbr，收藏价和收藏时间一经设置不再变化
	if existing, ok := m.picks[pick.Ticker]; ok {
		pick.ID = existing.ID
		pick.PickPrice = existing.PickPrice
		pick.CreatedAt = existing.CreatedAt
	} else {
		m.pickSeq++
		pick.ID = m.pickSeq
		if pick.CreatedAt.IsZero() {
			pick.CreatedAt = time.Now()
		}
	}
	m.picks[pick.Ticker] = *pick
	return nil
}

func (m *Memory) DeletePick(ticker string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.picks[ticker]; !ok {
		return ErrNotFound
	}
	delete(m.picks, ticker)
	return nil
}

func (m *Memory) ListPositions() ([]model.Portfolio, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	positions := make([]model.Portfolio, 0, len(m.positions))
	for _, position := range m.positions {
		positions = append(positions, position)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].Ticker < positions[j].Ticker })
	return positions, nil
}

func (m *Memory) SavePosition(position *model.Portfolio) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// 每个ticker只保留一条持仓
	if existing, ok := m.positions[position.Ticker]; ok {
		position.ID = existing.ID
	} else {
		m.positionSeq++
		position.ID = m.positionSeq
	}
	m.positions[position.Ticker] = *position
	return nil
}

func (m *Memory) GetPosition(ticker string) (*model.Portfolio, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	position, ok := m.positions[ticker]
	if !ok {
		return nil, ErrNotFound
	}
	return &position, nil
}

func (m *Memory) UpdatePosition(ticker string, avgPrice, shares float64) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	position, ok := m.positions[ticker]
	if !ok {
		return ErrNotFound
	}
	position.AvgPrice = avgPrice
	position.Shares = shares
	m.positions[ticker] = position
	return nil
}

func (m *Memory) DeletePosition(ticker string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.positions[ticker]; !ok {
		return ErrNotFound
	}
	delete(m.positions, ticker)
	return nil
}

func (m *Memory) ListProfits() ([]model.RealizedProfit, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	// 返回副本，保证created_at升序
	profits := make([]model.RealizedProfit, len(m.profits))
	copy(profits, m.profits)
	sort.SliceStable(profits, func(i, j int) bool { return profits[i].CreatedAt.Before(profits[j].CreatedAt) })
	return profits, nil
}

func (m *Memory) SaveProfit(entry *model.RealizedProfit) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.profits = append(m.profits, *entry)
	return nil
}

func (m *Memory) UpdateProfit(id, ticker string, sellPrice float64) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i := range m.profits {
		if m.profits[i].ID == id {
			m.profits[i].Ticker = ticker
			m.profits[i].SellPrice = sellPrice
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteProfit(id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i := range m.profits {
		if m.profits[i].ID == id {
			m.profits = append(m.profits[:i], m.profits[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) GetTarget() (*model.MonthTarget, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.target == nil {
		return &model.MonthTarget{ID: 1}, nil
	}
	target := *m.target
	return &target, nil
}

func (m *Memory) SaveTarget(targetPrice float64) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.target = &model.MonthTarget{ID: 1, TargetPrice: targetPrice}
	return nil
}

func (m *Memory) GetExchangeRate() (*model.ExchangeRate, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.rate == nil {
		return &model.ExchangeRate{ID: 1}, nil
	}
	rate := *m.rate
	return &rate, nil
}

func (m *Memory) SaveExchangeRate(rate float64) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.rate = &model.ExchangeRate{ID: 1, Rate: rate, UpdateDate: time.Now()}
	return nil
}
