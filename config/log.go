package config

import (
	"fmt"
	"strings"
)

// LogConfig 日志配置
//
// 为空的字段保持 MEDIATOR_LOG_LEVEL / MEDIATOR_LOG_FORMAT 环境变量的设置。
type LogConfig struct {
	// Level 日志级别，格式同 MEDIATOR_LOG_LEVEL
	// 示例: "info" 或 "core/delivery=debug,warn"
	Level string `json:"level,omitempty"`

	// Format 输出格式：text 或 json
	Format string `json:"format,omitempty"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{}
}

// Validate 验证日志配置
func (c LogConfig) Validate() error {
	switch strings.ToLower(c.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalidConfig, c.Format)
	}

	for _, part := range strings.Split(c.Level, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		level := part
		if _, after, found := strings.Cut(part, "="); found {
			level = after
		}
		if !isLevelName(level) {
			return fmt.Errorf("%w: log.level has unknown level %q", ErrInvalidConfig, strings.TrimSpace(level))
		}
	}
	return nil
}

func isLevelName(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}
