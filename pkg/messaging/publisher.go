package messaging

// Publisher 更新事件发布接口
type Publisher interface {
	Publish(subject string, data interface{}) error
}

// NoopPublisher 未配置NATS时的空实现
type NoopPublisher struct{}

func (NoopPublisher) Publish(subject string, data interface{}) error {
	return nil
}
