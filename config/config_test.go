package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewConfig 测试默认配置
func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, 1024, cfg.Bus.QueueCapacity)
	assert.Zero(t, cfg.Bus.MaxConcurrentHandlers)
	assert.Equal(t, 5*time.Second, cfg.Bus.CloseTimeout.Duration())
	assert.True(t, cfg.Bus.EnableMetrics)
	assert.False(t, cfg.Bus.EnableTracing)
	assert.Empty(t, cfg.Log.Level)
	require.NoError(t, cfg.Validate())

	t.Log("✅ 默认配置有效")
}

// TestFromJSON 测试部分字段覆盖默认值
func TestFromJSON(t *testing.T) {
	data := []byte(`{
		"bus": {"queue_capacity": 8, "max_concurrent_handlers": 2, "close_timeout": "250ms"},
		"log": {"level": "core/delivery=debug,info", "format": "json"}
	}`)

	cfg, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Bus.QueueCapacity)
	assert.Equal(t, 2, cfg.Bus.MaxConcurrentHandlers)
	assert.Equal(t, 250*time.Millisecond, cfg.Bus.CloseTimeout.Duration())
	assert.True(t, cfg.Bus.EnableMetrics, "未出现的字段保持默认")
	assert.Equal(t, "json", cfg.Log.Format)
}

// TestFromJSON_Invalid 测试无效输入
func TestFromJSON_Invalid(t *testing.T) {
	_, err := FromJSON([]byte(`{"bus": {"queue_capacity": 0}}`))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = FromJSON([]byte(`{"bus": {"close_timeout": "soon"}}`))
	assert.Error(t, err)

	_, err = FromJSON([]byte(`{"log": {"format": "xml"}}`))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = FromJSON([]byte(`{"log": {"level": "core=verbose"}}`))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = FromJSON([]byte(`not json`))
	assert.Error(t, err)
}

// TestToJSON 测试编码后可重新加载
func TestToJSON(t *testing.T) {
	cfg := NewConfig()
	cfg.Bus.QueueCapacity = 64
	cfg.Bus.EnableTracing = true

	data, err := cfg.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"close_timeout"`)
	assert.Contains(t, string(data), `"5s"`)

	loaded, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

// TestLoadFile 测试从文件加载
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediator.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"bus": {"close_timeout": 1000000}}`), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, time.Millisecond, cfg.Bus.CloseTimeout.Duration())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

// TestBusConfig_Validate 测试总线配置校验
func TestBusConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*BusConfig)
	}{
		{"zero capacity", func(c *BusConfig) { c.QueueCapacity = 0 }},
		{"huge capacity", func(c *BusConfig) { c.QueueCapacity = MaxQueueCapacity + 1 }},
		{"negative concurrency", func(c *BusConfig) { c.MaxConcurrentHandlers = -1 }},
		{"negative timeout", func(c *BusConfig) { c.CloseTimeout = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultBusConfig()
			tc.modify(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}

// TestValidateAndFix 测试自动修复
func TestValidateAndFix(t *testing.T) {
	cfg := NewConfig()
	cfg.Bus.QueueCapacity = -5
	cfg.Bus.MaxConcurrentHandlers = -1
	cfg.Bus.CloseTimeout = -1

	fixed, err := ValidateAndFix(cfg)
	require.NoError(t, err)
	assert.Equal(t, DefaultQueueCapacity, fixed.Bus.QueueCapacity)
	assert.Zero(t, fixed.Bus.MaxConcurrentHandlers)
	assert.Equal(t, DefaultCloseTimeout, fixed.Bus.CloseTimeout.Duration())

	fixed, err = ValidateAndFix(nil)
	require.NoError(t, err)
	assert.Equal(t, NewConfig(), fixed)

	assert.ErrorIs(t, ValidateAll(nil), ErrInvalidConfig)
}

// TestApplyPreset 测试预设
func TestApplyPreset(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, ApplyPreset(cfg, "sequential"))
	assert.Equal(t, 1, cfg.Bus.MaxConcurrentHandlers)

	require.NoError(t, ApplyPreset(cfg, "throughput"))
	assert.Equal(t, 16*DefaultQueueCapacity, cfg.Bus.QueueCapacity)
	assert.Zero(t, cfg.Bus.MaxConcurrentHandlers)

	require.NoError(t, ApplyPreset(cfg, "quiet"))
	assert.False(t, cfg.Bus.EnableMetrics)
	assert.Equal(t, "warn", cfg.Log.Level)

	require.NoError(t, ApplyPreset(cfg, "default"))
	assert.Equal(t, NewConfig(), cfg)

	assert.ErrorIs(t, ApplyPreset(cfg, "turbo"), ErrInvalidConfig)
	assert.Error(t, ApplyPreset(nil, "default"))

	clone := CloneConfig(cfg)
	clone.Bus.QueueCapacity = 1
	assert.Equal(t, DefaultQueueCapacity, cfg.Bus.QueueCapacity)
	assert.Nil(t, CloneConfig(nil))
}
