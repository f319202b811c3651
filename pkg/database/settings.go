package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jooyoni/stock-tracker/pkg/model"
)

// 目标金额和汇率都只有一条记录，更新时整行覆盖

func (d *DB) GetTarget() (*model.MonthTarget, error) {
	var target model.MonthTarget
	err := d.db.First(&target).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.MonthTarget{ID: 1}, nil
		}
		return nil, fmt.Errorf("查询目标金额失败: %w", err)
	}
	return &target, nil
}

func (d *DB) SaveTarget(targetPrice float64) error {
	target := model.MonthTarget{ID: 1, TargetPrice: targetPrice}
	err := d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&target).Error
	if err != nil {
		return fmt.Errorf("保存目标金额失败: %w", err)
	}
	return nil
}

func (d *DB) GetExchangeRate() (*model.ExchangeRate, error) {
	var rate model.ExchangeRate
	err := d.db.First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.ExchangeRate{ID: 1}, nil
		}
		return nil, fmt.Errorf("查询汇率失败: %w", err)
	}
	return &rate, nil
}

func (d *DB) SaveExchangeRate(rate float64) error {
	record := model.ExchangeRate{ID: 1, Rate: rate, UpdateDate: time.Now()}
	err := d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("保存汇率失败: %w", err)
	}
	return nil
}
