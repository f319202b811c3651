package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jooyoni/stock-tracker/pkg/model"
	"github.com/jooyoni/stock-tracker/pkg/repository"
)

// ListProfits 按created_at升序返回全部已实现损益
// 月度聚合依赖该顺序，不要改排序方向
func (d *DB) ListProfits() ([]model.RealizedProfit, error) {
	var profits []model.RealizedProfit
	if err := d.db.Order("created_at ASC").Find(&profits).Error; err != nil {
		return nil, fmt.Errorf("查询已实现损益失败: %w", err)
	}
	return profits, nil
}

func (d *DB) SaveProfit(entry *model.RealizedProfit) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := d.db.Create(entry).Error; err != nil {
		return fmt.Errorf("保存已实现损益失败: %w", err)
	}
	return nil
}

func (d *DB) UpdateProfit(id, ticker string, sellPrice float64) error {
	result := d.db.Model(&model.RealizedProfit{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ticker":     ticker,
			"sell_price": sellPrice,
		})
	if result.Error != nil {
		return fmt.Errorf("更新已实现损益失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (d *DB) DeleteProfit(id string) error {
	result := d.db.Where("id = ?", id).Delete(&model.RealizedProfit{})
	if result.Error != nil {
		return fmt.Errorf("删除已实现损益失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
