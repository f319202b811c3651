package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// 更新事件主题
const (
	SubjectQuotesUpdated    = "stocks.quotes"
	SubjectRateUpdated      = "stocks.rate"
	SubjectPortfolioUpdated = "stocks.portfolio"
	SubjectPicksUpdated     = "stocks.picks"
	SubjectProfitsUpdated   = "stocks.profits"
	SubjectTargetUpdated    = "stocks.target"
)

// NATSClient NATS JetStream客户端，数据变更时发布更新事件
type NATSClient struct {
	conn      *nats.Conn
	jetStream jetstream.JetStream
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewNATSClient 创建新的NATS客户端
func NewNATSClient(natsURL string) (*NATSClient, error) {
	// 连接NATS
	nc, err := nats.Connect(natsURL,
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1), // 无限重连
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS连接断开: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Println("NATS重新连接成功")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("连接NATS失败: %w", err)
	}

	// 创建JetStream上下文
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("创建JetStream失败: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	client := &NATSClient{
		conn:      nc,
		jetStream: js,
		ctx:       ctx,
		cancel:    cancel,
	}

	// 初始化Stream
	if err := client.setupStream(); err != nil {
		log.Printf("警告: 设置Stream失败: %v", err)
	}

	return client, nil
}

// setupStream 设置更新事件Stream
func (c *NATSClient) setupStream() error {
	config := jetstream.StreamConfig{
		Name:        "STOCKS_STREAM",
		Subjects:    []string{"stocks.*"},
		Description: "股票数据更新事件流",
		Retention:   jetstream.LimitsPolicy,
		MaxMsgs:     50000,
		MaxBytes:    50 * 1024 * 1024,   // 50MB
		MaxAge:      7 * 24 * time.Hour, // 保留7天
	}

	if _, err := c.jetStream.CreateOrUpdateStream(c.ctx, config); err != nil {
		return fmt.Errorf("创建/更新Stream失败: %w", err)
	}

	log.Println("Stream STOCKS_STREAM 设置成功")
	return nil
}

// Publish 发布更新事件到指定主题
func (c *NATSClient) Publish(subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化数据失败: %w", err)
	}

	if _, err := c.jetStream.Publish(c.ctx, subject, payload); err != nil {
		return fmt.Errorf("发布消息到 %s 失败: %w", subject, err)
	}

	return nil
}

// Close 关闭连接
func (c *NATSClient) Close() error {
	c.cancel()

	if c.conn != nil {
		c.conn.Close()
	}

	log.Println("NATS连接已关闭")
	return nil
}

// IsConnected 检查连接状态
func (c *NATSClient) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}
