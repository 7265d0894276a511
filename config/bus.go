package config

import (
	"fmt"
	"time"
)

// 总线配置默认值
const (
	// DefaultQueueCapacity 默认事件队列容量
	DefaultQueueCapacity = 1024

	// DefaultCloseTimeout 默认关闭等待时间
	DefaultCloseTimeout = 5 * time.Second

	// MaxQueueCapacity 队列容量上限
	MaxQueueCapacity = 1 << 20
)

// BusConfig 总线配置
type BusConfig struct {
	// QueueCapacity 事件队列容量，满时 Publish 阻塞
	// 默认: 1024
	QueueCapacity int `json:"queue_capacity"`

	// MaxConcurrentHandlers 单个事件同时运行的处理器上限，0 表示不限
	// 默认: 0
	MaxConcurrentHandlers int `json:"max_concurrent_handlers"`

	// CloseTimeout fx 停止时等待事件投递完成的时间
	// 默认: 5s
	CloseTimeout Duration `json:"close_timeout"`

	// EnableMetrics 是否导出 Prometheus 指标
	// 默认: true
	EnableMetrics bool `json:"enable_metrics"`

	// EnableTracing 是否使用全局 TracerProvider 创建 span
	// 默认: false
	EnableTracing bool `json:"enable_tracing"`
}

// DefaultBusConfig 返回默认总线配置
func DefaultBusConfig() BusConfig {
	return BusConfig{
		QueueCapacity:         DefaultQueueCapacity,
		MaxConcurrentHandlers: 0,
		CloseTimeout:          Duration(DefaultCloseTimeout),
		EnableMetrics:         true,
		EnableTracing:         false,
	}
}

// Validate 验证总线配置
func (c BusConfig) Validate() error {
	if c.QueueCapacity <= 0 {
		return fmt.Errorf("%w: bus.queue_capacity must be positive, got %d", ErrInvalidConfig, c.QueueCapacity)
	}
	if c.QueueCapacity > MaxQueueCapacity {
		return fmt.Errorf("%w: bus.queue_capacity must not exceed %d, got %d", ErrInvalidConfig, MaxQueueCapacity, c.QueueCapacity)
	}
	if c.MaxConcurrentHandlers < 0 {
		return fmt.Errorf("%w: bus.max_concurrent_handlers must not be negative, got %d", ErrInvalidConfig, c.MaxConcurrentHandlers)
	}
	if c.CloseTimeout < 0 {
		return fmt.Errorf("%w: bus.close_timeout must not be negative, got %s", ErrInvalidConfig, c.CloseTimeout)
	}
	return nil
}
