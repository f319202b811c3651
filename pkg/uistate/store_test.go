package uistate

import (
	"errors"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Get("stockList"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("不存在的键应返回ErrKeyNotFound, 实际 %v", err)
	}

	if err := store.Set("stockList", `["AAPL","MSFT"]`); err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	value, err := store.Get("stockList")
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if value != `["AAPL","MSFT"]` {
		t.Errorf("读取值 = %q", value)
	}

	// 覆盖写入
	if err := store.Set("stockList", `["AAPL"]`); err != nil {
		t.Fatalf("覆盖写入失败: %v", err)
	}
	value, _ = store.Get("stockList")
	if value != `["AAPL"]` {
		t.Errorf("覆盖后的值 = %q", value)
	}

	if err := store.Remove("stockList"); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := store.Get("stockList"); !errors.Is(err, ErrKeyNotFound) {
		t.Error("删除后读取应返回ErrKeyNotFound")
	}

	// 删除不存在的键不报错
	if err := store.Remove("lastViewed"); err != nil {
		t.Errorf("删除不存在的键不应报错: %v", err)
	}
}
