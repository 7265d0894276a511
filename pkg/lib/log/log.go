// Package log 提供 go-mediator 统一日志接口
//
// 基于 Go 标准库 log/slog，按组件（子系统）输出结构化日志。
// 级别与格式由 MEDIATOR_LOG_LEVEL / MEDIATOR_LOG_FORMAT 环境变量
// 或 mediator.WithConfig 中的 LogConfig 控制。
package log

import (
	"context"
	"io"
	"log/slog"

	"github.com/dep2p/go-mediator/internal/util/logger"
)

// 日志级别常量（从 slog 导出，方便使用）
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// SetOutput 设置所有组件的日志输出目标
//
// 示例：
//
//	file, _ := os.OpenFile("mediator.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
//	log.SetOutput(file)
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetLevel 设置所有组件的日志级别
func SetLevel(level slog.Level) {
	logger.SetGlobalLevel(level)
}

// SetComponentLevel 设置单个组件的日志级别
func SetComponentLevel(component string, level slog.Level) {
	logger.SetLevel(component, level)
}

// Configure 应用级别配置字符串与输出格式
//
// levelSpec 格式同 MEDIATOR_LOG_LEVEL，如 "core/delivery=debug,info"。
func Configure(levelSpec, format string) {
	logger.Apply(levelSpec, format)
}

// ============================================================================
//                              LazyLogger
// ============================================================================

// LazyLogger 懒加载 logger
//
// 包级变量初始化时不创建 Handler，首次输出时才按当前配置创建，
// 因此 SetOutput / Configure 在程序启动后调用依然生效。
//
// 使用方式：
//
//	var logger = log.Logger("core/delivery")
//	logger.Info("bus started")
type LazyLogger struct {
	component string
}

// Logger 返回带组件名的 LazyLogger
func Logger(component string) *LazyLogger {
	return &LazyLogger{component: component}
}

func (l *LazyLogger) get() *slog.Logger {
	return logger.Logger(l.component)
}

// Debug 输出 Debug 级别日志
func (l *LazyLogger) Debug(msg string, args ...any) {
	l.get().Debug(msg, args...)
}

// Info 输出 Info 级别日志
func (l *LazyLogger) Info(msg string, args ...any) {
	l.get().Info(msg, args...)
}

// Warn 输出 Warn 级别日志
func (l *LazyLogger) Warn(msg string, args ...any) {
	l.get().Warn(msg, args...)
}

// Error 输出 Error 级别日志
func (l *LazyLogger) Error(msg string, args ...any) {
	l.get().Error(msg, args...)
}

// DebugContext 带 context 的 Debug 日志
func (l *LazyLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.get().DebugContext(ctx, msg, args...)
}

// WarnContext 带 context 的 Warn 日志
func (l *LazyLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.get().WarnContext(ctx, msg, args...)
}

// Enabled 检查组件是否输出指定级别
//
// 用于跳过昂贵的日志参数构造。
func (l *LazyLogger) Enabled(level slog.Level) bool {
	return l.get().Enabled(context.Background(), level)
}

// With 添加额外的属性
func (l *LazyLogger) With(args ...any) *slog.Logger {
	return l.get().With(args...)
}
