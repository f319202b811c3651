// Package uistate 保存前端的界面状态
// 勾选的ticker列表、最后查看的ticker等原本存在浏览器本地存储里，
// 这里抽象成键值接口，注入到API层使用
package uistate

import (
	"errors"
	"sync"
)

// ErrKeyNotFound 键不存在
var ErrKeyNotFound = errors.New("键不存在")

// Store 界面状态键值存储
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// MemoryStore 内存实现，用于测试和无数据库运行
type MemoryStore struct {
	values map[string]string
	mutex  sync.RWMutex
}

// NewMemoryStore 创建内存键值存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.values[key] = value
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.values, key)
	return nil
}
