package monitor

import (
	"sync"
	"time"
)

// HealthStatus 健康状态
type HealthStatus struct {
	Component   string    `json:"component"`
	Status      string    `json:"status"`
	LastChecked time.Time `json:"last_checked"`
	Message     string    `json:"message,omitempty"`
}

// Monitor 组件健康监控
// 调度任务在每次运行后上报状态，/ready接口读取
type Monitor struct {
	components map[string]*HealthStatus
	mutex      sync.RWMutex
}

// NewMonitor 创建监控
func NewMonitor() *Monitor {
	return &Monitor{
		components: make(map[string]*HealthStatus),
	}
}

// RegisterComponent 注册组件
func (m *Monitor) RegisterComponent(component string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.components[component] = &HealthStatus{
		Component:   component,
		Status:      "unknown",
		LastChecked: time.Now(),
	}
}

// UpdateStatus 更新组件状态
func (m *Monitor) UpdateStatus(component, status, message string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.components[component]; !exists {
		m.components[component] = &HealthStatus{
			Component: component,
		}
	}

	m.components[component].Status = status
	m.components[component].LastChecked = time.Now()
	m.components[component].Message = message
}

// GetAllStatus 获取所有组件状态
func (m *Monitor) GetAllStatus() []*HealthStatus {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	statuses := make([]*HealthStatus, 0, len(m.components))
	for _, status := range m.components {
		copied := *status
		statuses = append(statuses, &copied)
	}

	return statuses
}

// Healthy 检查是否所有组件都健康
func (m *Monitor) Healthy() bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, status := range m.components {
		if status.Status != "healthy" {
			return false
		}
	}
	return true
}
