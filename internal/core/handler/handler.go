package handler

import (
	"context"
	"runtime/debug"

	"github.com/dep2p/go-mediator/internal/core/resource"
	"github.com/dep2p/go-mediator/pkg/lib/log"
	"github.com/dep2p/go-mediator/pkg/types"
)

var logger = log.Logger("core/handler")

// ============================================================================
//                              Handler - 类型擦除的处理器
// ============================================================================

// Handler 统一的可调用处理器
//
// 由 Wrap0..Wrap7 从普通函数生成。命令表与事件表只持有该接口。
type Handler interface {
	// Handle 解析依赖并调用原始函数
	//
	// req 的动态类型必须是 RequestType()，否则返回 *CastError。
	Handle(ctx context.Context, c *resource.Container, req any) (any, error)

	// RequestType 请求（或事件）类型
	RequestType() types.TypeID

	// ResponseType 响应类型
	ResponseType() types.TypeID

	// Dependencies 按声明顺序列出注入的资源类型
	Dependencies() []types.TypeID
}

// dependency 单个注入参数
type dependency struct {
	id types.TypeID
	// accepts 检查容器中的值能否还原为参数类型
	accepts func(any) bool
}

func dep[T any]() dependency {
	return dependency{
		id: types.TypeFor[T](),
		accepts: func(v any) bool {
			if v == nil {
				return true
			}
			_, ok := v.(T)
			return ok
		},
	}
}

// as 还原已通过 accepts 检查的依赖值
func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

// adapter 所有元数共用的适配实现
type adapter[Req, Res any] struct {
	deps []dependency
	call func(ctx context.Context, deps []any, req Req) (Res, error)
}

func newAdapter[Req, Res any](deps []dependency, call func(context.Context, []any, Req) (Res, error)) *adapter[Req, Res] {
	return &adapter[Req, Res]{deps: deps, call: call}
}

// Handle 实现 Handler 接口
func (a *adapter[Req, Res]) Handle(ctx context.Context, c *resource.Container, req any) (any, error) {
	typed, ok := req.(Req)
	if !ok {
		return nil, &CastError{Expected: types.TypeFor[Req](), Actual: types.TypeOf(req)}
	}

	resolved, err := a.resolve(c)
	if err != nil {
		logger.Debug("依赖解析失败", "request", types.TypeFor[Req](), "error", err)
		return nil, err
	}

	res, err := a.invoke(ctx, resolved, typed)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// resolve 按声明顺序解析依赖，遇到第一个缺失即失败
func (a *adapter[Req, Res]) resolve(c *resource.Container) ([]any, error) {
	if len(a.deps) == 0 {
		return nil, nil
	}
	resolved := make([]any, len(a.deps))
	for i, d := range a.deps {
		v, ok := c.Lookup(d.id)
		if !ok {
			return nil, &ResourceError{Type: d.id}
		}
		if !d.accepts(v) {
			return nil, &CastError{Expected: d.id, Actual: types.TypeOf(v)}
		}
		resolved[i] = v
	}
	return resolved, nil
}

// invoke 调用原始函数，恢复 panic 并包装业务错误
func (a *adapter[Req, Res]) invoke(ctx context.Context, deps []any, req Req) (res Res, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("处理器 panic", "request", types.TypeFor[Req](), "panic", rec)
			err = &PanicError{Request: types.TypeFor[Req](), Value: rec, Stack: debug.Stack()}
		}
	}()

	res, err = a.call(ctx, deps, req)
	if err != nil {
		return res, NewHandlerError(err)
	}
	return res, nil
}

// RequestType 实现 Handler 接口
func (a *adapter[Req, Res]) RequestType() types.TypeID {
	return types.TypeFor[Req]()
}

// ResponseType 实现 Handler 接口
func (a *adapter[Req, Res]) ResponseType() types.TypeID {
	return types.TypeFor[Res]()
}

// Dependencies 实现 Handler 接口
func (a *adapter[Req, Res]) Dependencies() []types.TypeID {
	ids := make([]types.TypeID, len(a.deps))
	for i, d := range a.deps {
		ids[i] = d.id
	}
	return ids
}
