package config

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保持默认值。
//
// 示例 JSON:
//
//	{
//	  "bus": {"queue_capacity": 4096, "max_concurrent_handlers": 8, "close_timeout": "10s"},
//	  "log": {"level": "core/delivery=debug,info", "format": "json"}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile 从 JSON 文件加载配置
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return FromJSON(data)
}

// ToJSON 把配置编码为带缩进的 JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// CloneConfig 克隆配置
func CloneConfig(cfg *Config) *Config {
	if cfg == nil {
		return nil
	}
	cloned := *cfg
	return &cloned
}

// ApplyPreset 应用预设配置
//
// 支持的预设：
//   - "default": 默认值
//   - "throughput": 大队列，适合突发发布
//   - "sequential": 同一事件的处理器逐个执行
//   - "quiet": 只输出警告及以上日志，关闭指标
func ApplyPreset(cfg *Config, presetName string) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	switch presetName {
	case "default":
		*cfg = *NewConfig()
	case "throughput":
		cfg.Bus.QueueCapacity = 16 * DefaultQueueCapacity
		cfg.Bus.MaxConcurrentHandlers = 0
	case "sequential":
		cfg.Bus.MaxConcurrentHandlers = 1
	case "quiet":
		cfg.Log.Level = "warn"
		cfg.Bus.EnableMetrics = false
	default:
		return fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, presetName)
	}
	return nil
}
