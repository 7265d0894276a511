// Package config 提供 go-mediator 的配置管理
//
// 本包采用与组件对应的分层配置：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义，带 Default*Config 与 Validate
//   - 支持从 JSON 加载和保存配置（json-iterator，兼容标准库）
//   - 支持预设配置（default/throughput/sequential/quiet）
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Bus.QueueCapacity = 4096
//
//	// 从文件加载
//	cfg, err := config.LoadFile("mediator.json")
//
//	// 应用到总线
//	bus, err := mediator.NewBuilder(mediator.WithConfig(cfg)).Build()
package config

// Config 是 go-mediator 的完整配置结构
//
//   - Bus: 事件队列、并发与可观测性
//   - Log: 日志级别与格式
type Config struct {
	// Bus 总线配置
	Bus BusConfig `json:"bus"`

	// Log 日志配置
	Log LogConfig `json:"log"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Bus: DefaultBusConfig(),
		Log: DefaultLogConfig(),
	}
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if err := c.Bus.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}
