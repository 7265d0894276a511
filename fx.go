package mediator

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-mediator/config"
)

// ============================================================================
//                              Fx 模块
// ============================================================================

// buildInput 构建总线时可选的 fx 依赖
type buildInput struct {
	fx.In

	Config     *config.Config        `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// Module 返回提供 *Bus 的 Fx 模块
//
// 处理器必须在 fx 启动前注册到 b。容器中存在 *config.Config 或
// prometheus.Registerer 时自动使用，构建器上显式设置的选项优先。
// 应用停止时关闭总线，等待时间取 CloseTimeout。
func Module(b *BusBuilder) fx.Option {
	return fx.Module("mediator",
		fx.Provide(func(in buildInput) (*Bus, error) {
			return provideBus(b, in)
		}),
		fx.Invoke(registerLifecycle),
	)
}

// provideBus 把 fx 中的依赖转换成选项后构建
func provideBus(b *BusBuilder, in buildInput) (*Bus, error) {
	var injected []Option
	if in.Config != nil {
		injected = append(injected, WithConfig(in.Config))
	}
	if in.Registerer != nil {
		injected = append(injected, WithMetricsRegisterer(in.Registerer))
	}

	b.mu.Lock()
	b.opts = append(injected, b.opts...)
	b.mu.Unlock()

	return b.Build()
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC  fx.Lifecycle
	Bus *Bus
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if input.Bus.closeTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, input.Bus.closeTimeout)
				defer cancel()
			}
			return input.Bus.Close(ctx)
		},
	})
}

// NewApp 创建只包含总线模块的 fx 应用
//
// zl 为 nil 时使用 zap.NewNop()，不输出 fx 自身的日志。
func NewApp(b *BusBuilder, zl *zap.Logger, extra ...fx.Option) *fx.App {
	if zl == nil {
		zl = zap.NewNop()
	}
	modules := []fx.Option{Module(b)}
	modules = append(modules, extra...)
	modules = append(modules,
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zl}
		}),
	)
	return fx.New(modules...)
}
