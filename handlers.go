package mediator

import (
	"context"

	"github.com/dep2p/go-mediator/internal/core/handler"
)

// ============================================================================
//                              命令处理器注册
// ============================================================================
//
// AddCommandHandlerN 注册声明 N 个资源依赖的命令处理器：
//
//	func(ctx, r1 T1, ..., rN TN, cmd Req) (Res, error)
//
// 资源按声明顺序注入，类型必须与 AppendResource 时的类型参数完全一致。
// 同一请求类型只能注册一个处理器，重复注册立即 panic。

// AddCommandHandler 注册不注入资源的命令处理器
func AddCommandHandler[Req Command[Res], Res any](b *BusBuilder, fn func(context.Context, Req) (Res, error)) *BusBuilder {
	return addCommand(b, handler.Wrap0(fn))
}

// AddCommandHandler1 注册注入 1 个资源的命令处理器
func AddCommandHandler1[T1 any, Req Command[Res], Res any](b *BusBuilder, fn func(context.Context, T1, Req) (Res, error)) *BusBuilder {
	return addCommand(b, handler.Wrap1(fn))
}

// AddCommandHandler2 注册注入 2 个资源的命令处理器
func AddCommandHandler2[T1, T2 any, Req Command[Res], Res any](b *BusBuilder, fn func(context.Context, T1, T2, Req) (Res, error)) *BusBuilder {
	return addCommand(b, handler.Wrap2(fn))
}

// AddCommandHandler3 注册注入 3 个资源的命令处理器
func AddCommandHandler3[T1, T2, T3 any, Req Command[Res], Res any](b *BusBuilder, fn func(context.Context, T1, T2, T3, Req) (Res, error)) *BusBuilder {
	return addCommand(b, handler.Wrap3(fn))
}

// AddCommandHandler4 注册注入 4 个资源的命令处理器
func AddCommandHandler4[T1, T2, T3, T4 any, Req Command[Res], Res any](b *BusBuilder, fn func(context.Context, T1, T2, T3, T4, Req) (Res, error)) *BusBuilder {
	return addCommand(b, handler.Wrap4(fn))
}

// AddCommandHandler5 注册注入 5 个资源的命令处理器
func AddCommandHandler5[T1, T2, T3, T4, T5 any, Req Command[Res], Res any](b *BusBuilder, fn func(context.Context, T1, T2, T3, T4, T5, Req) (Res, error)) *BusBuilder {
	return addCommand(b, handler.Wrap5(fn))
}

// AddCommandHandler6 注册注入 6 个资源的命令处理器
func AddCommandHandler6[T1, T2, T3, T4, T5, T6 any, Req Command[Res], Res any](b *BusBuilder, fn func(context.Context, T1, T2, T3, T4, T5, T6, Req) (Res, error)) *BusBuilder {
	return addCommand(b, handler.Wrap6(fn))
}

// AddCommandHandler7 注册注入 7 个资源的命令处理器
func AddCommandHandler7[T1, T2, T3, T4, T5, T6, T7 any, Req Command[Res], Res any](b *BusBuilder, fn func(context.Context, T1, T2, T3, T4, T5, T6, T7, Req) (Res, error)) *BusBuilder {
	return addCommand(b, handler.Wrap7(fn))
}

// ============================================================================
//                              事件处理器注册
// ============================================================================
//
// 事件处理器只返回 error。同一事件类型可以注册任意多个处理器，
// 每次发布时全部并发执行，互不影响。

// AddEventHandler 追加不注入资源的事件处理器
func AddEventHandler[E Event](b *BusBuilder, fn func(context.Context, E) error) *BusBuilder {
	return addEvent(b, handler.Wrap0(func(ctx context.Context, evt E) (struct{}, error) {
		return struct{}{}, fn(ctx, evt)
	}))
}

// AddEventHandler1 追加注入 1 个资源的事件处理器
func AddEventHandler1[T1 any, E Event](b *BusBuilder, fn func(context.Context, T1, E) error) *BusBuilder {
	return addEvent(b, handler.Wrap1(func(ctx context.Context, r1 T1, evt E) (struct{}, error) {
		return struct{}{}, fn(ctx, r1, evt)
	}))
}

// AddEventHandler2 追加注入 2 个资源的事件处理器
func AddEventHandler2[T1, T2 any, E Event](b *BusBuilder, fn func(context.Context, T1, T2, E) error) *BusBuilder {
	return addEvent(b, handler.Wrap2(func(ctx context.Context, r1 T1, r2 T2, evt E) (struct{}, error) {
		return struct{}{}, fn(ctx, r1, r2, evt)
	}))
}

// AddEventHandler3 追加注入 3 个资源的事件处理器
func AddEventHandler3[T1, T2, T3 any, E Event](b *BusBuilder, fn func(context.Context, T1, T2, T3, E) error) *BusBuilder {
	return addEvent(b, handler.Wrap3(func(ctx context.Context, r1 T1, r2 T2, r3 T3, evt E) (struct{}, error) {
		return struct{}{}, fn(ctx, r1, r2, r3, evt)
	}))
}

// AddEventHandler4 追加注入 4 个资源的事件处理器
func AddEventHandler4[T1, T2, T3, T4 any, E Event](b *BusBuilder, fn func(context.Context, T1, T2, T3, T4, E) error) *BusBuilder {
	return addEvent(b, handler.Wrap4(func(ctx context.Context, r1 T1, r2 T2, r3 T3, r4 T4, evt E) (struct{}, error) {
		return struct{}{}, fn(ctx, r1, r2, r3, r4, evt)
	}))
}

// AddEventHandler5 追加注入 5 个资源的事件处理器
func AddEventHandler5[T1, T2, T3, T4, T5 any, E Event](b *BusBuilder, fn func(context.Context, T1, T2, T3, T4, T5, E) error) *BusBuilder {
	return addEvent(b, handler.Wrap5(func(ctx context.Context, r1 T1, r2 T2, r3 T3, r4 T4, r5 T5, evt E) (struct{}, error) {
		return struct{}{}, fn(ctx, r1, r2, r3, r4, r5, evt)
	}))
}

// AddEventHandler6 追加注入 6 个资源的事件处理器
func AddEventHandler6[T1, T2, T3, T4, T5, T6 any, E Event](b *BusBuilder, fn func(context.Context, T1, T2, T3, T4, T5, T6, E) error) *BusBuilder {
	return addEvent(b, handler.Wrap6(func(ctx context.Context, r1 T1, r2 T2, r3 T3, r4 T4, r5 T5, r6 T6, evt E) (struct{}, error) {
		return struct{}{}, fn(ctx, r1, r2, r3, r4, r5, r6, evt)
	}))
}

// AddEventHandler7 追加注入 7 个资源的事件处理器
func AddEventHandler7[T1, T2, T3, T4, T5, T6, T7 any, E Event](b *BusBuilder, fn func(context.Context, T1, T2, T3, T4, T5, T6, T7, E) error) *BusBuilder {
	return addEvent(b, handler.Wrap7(func(ctx context.Context, r1 T1, r2 T2, r3 T3, r4 T4, r5 T5, r6 T6, r7 T7, evt E) (struct{}, error) {
		return struct{}{}, fn(ctx, r1, r2, r3, r4, r5, r6, r7, evt)
	}))
}
