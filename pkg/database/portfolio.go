package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jooyoni/stock-tracker/pkg/model"
	"github.com/jooyoni/stock-tracker/pkg/repository"
)

func (d *DB) ListPositions() ([]model.Portfolio, error) {
	var positions []model.Portfolio
	if err := d.db.Order("ticker ASC").Find(&positions).Error; err != nil {
		return nil, fmt.Errorf("查询持仓失败: %w", err)
	}
	return positions, nil
}

// GetPosition 按ticker查询单个持仓
func (d *DB) GetPosition(ticker string) (*model.Portfolio, error) {
	var position model.Portfolio
	err := d.db.First(&position, "ticker = ?", ticker).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("查询持仓失败: %w", err)
	}
	return &position, nil
}

func (d *DB) SavePosition(position *model.Portfolio) error {
	err := d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}},
		UpdateAll: true,
	}).Create(position).Error
	if err != nil {
		return fmt.Errorf("保存持仓失败: %w", err)
	}
	return nil
}

func (d *DB) UpdatePosition(ticker string, avgPrice, shares float64) error {
	result := d.db.Model(&model.Portfolio{}).
		Where("ticker = ?", ticker).
		Updates(map[string]interface{}{
			"avg_price": avgPrice,
			"shares":    shares,
		})
	if result.Error != nil {
		return fmt.Errorf("更新持仓失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (d *DB) DeletePosition(ticker string) error {
	result := d.db.Where("ticker = ?", ticker).Delete(&model.Portfolio{})
	if result.Error != nil {
		return fmt.Errorf("删除持仓失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
