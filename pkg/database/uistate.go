package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jooyoni/stock-tracker/pkg/uistate"
)

// UIState 界面状态键值记录
type UIState struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string
}

// UIStateStore 界面状态的Postgres实现
type UIStateStore struct {
	db *gorm.DB
}

// UIState 返回界面状态存储
func (d *DB) UIState() *UIStateStore {
	return &UIStateStore{db: d.db}
}

func (s *UIStateStore) Get(key string) (string, error) {
	var state UIState
	err := s.db.First(&state, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", uistate.ErrKeyNotFound
		}
		return "", fmt.Errorf("查询界面状态失败: %w", err)
	}
	return state.Value, nil
}

func (s *UIStateStore) Set(key, value string) error {
	state := UIState{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&state).Error
	if err != nil {
		return fmt.Errorf("保存界面状态失败: %w", err)
	}
	return nil
}

func (s *UIStateStore) Remove(key string) error {
	if err := s.db.Where("key = ?", key).Delete(&UIState{}).Error; err != nil {
		return fmt.Errorf("删除界面状态失败: %w", err)
	}
	return nil
}
