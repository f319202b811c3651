package database

import (
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/jooyoni/stock-tracker/pkg/model"
	"github.com/jooyoni/stock-tracker/pkg/repository"
)

func (d *DB) ListPicks() ([]model.Pick, error) {
	var picks []model.Pick
	if err := d.db.Order("created_at ASC").Find(&picks).Error; err != nil {
		return nil, fmt.Errorf("查询关注列表失败: %w", err)
	}
	return picks, nil
}

func (d *DB) SavePick(pick *model.Pick) error {
	// 重复收藏时保留最初的收藏价和收藏时间
	err := d.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"price", "pbr",
		}),
	}).Create(pick).Error
	if err != nil {
		return fmt.Errorf("保存关注股票失败: %w", err)
	}
	return nil
}

func (d *DB) DeletePick(ticker string) error {
	result := d.db.Where("ticker = ?", ticker).Delete(&model.Pick{})
	if result.Error != nil {
		return fmt.Errorf("删除关注股票失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
