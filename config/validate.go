package config

import "errors"

// ErrInvalidConfig 配置无效
var ErrInvalidConfig = errors.New("config: invalid configuration")

// ValidateAll 验证整个配置，nil 视为无效
func ValidateAll(c *Config) error {
	if c == nil {
		return errors.Join(ErrInvalidConfig, errors.New("config is nil"))
	}
	return c.Validate()
}

// ValidateAndFix 验证配置并修复可自动修复的问题
//
// 可修复的问题：
//   - 队列容量非正 -> 默认容量
//   - 并发上限为负 -> 不限
//   - 关闭等待为负 -> 默认值
func ValidateAndFix(c *Config) (*Config, error) {
	if c == nil {
		return NewConfig(), nil
	}

	if c.Bus.QueueCapacity <= 0 {
		c.Bus.QueueCapacity = DefaultQueueCapacity
	}
	if c.Bus.MaxConcurrentHandlers < 0 {
		c.Bus.MaxConcurrentHandlers = 0
	}
	if c.Bus.CloseTimeout < 0 {
		c.Bus.CloseTimeout = Duration(DefaultCloseTimeout)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
