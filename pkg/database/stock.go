package database

import (
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/jooyoni/stock-tracker/pkg/model"
	"github.com/jooyoni/stock-tracker/pkg/repository"
)

func (d *DB) ListStocks() ([]model.Stock, error) {
	var stocks []model.Stock
	if err := d.db.Order("ticker ASC").Find(&stocks).Error; err != nil {
		return nil, fmt.Errorf("查询观察列表失败: %w", err)
	}
	return stocks, nil
}

func (d *DB) SaveStock(stock *model.Stock) error {
	err := d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}},
		UpdateAll: true,
	}).Create(stock).Error
	if err != nil {
		return fmt.Errorf("保存股票失败: %w", err)
	}
	return nil
}

func (d *DB) DeleteStock(ticker string) error {
	result := d.db.Where("ticker = ?", ticker).Delete(&model.Stock{})
	if result.Error != nil {
		return fmt.Errorf("删除股票失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
