package handler

import (
	"errors"
	"fmt"

	"github.com/dep2p/go-mediator/pkg/types"
)

// ============================================================================
//                              错误定义
// ============================================================================

var (
	// ErrCast 擦除值与期望类型不一致
	//
	// 注册键与还原目标来自同一类型参数，出现即说明分发内核接线有误。
	ErrCast = errors.New("handler: type cast failed")

	// ErrResourceNotFound 处理器依赖的资源不存在
	ErrResourceNotFound = errors.New("handler: resource not found")

	// ErrHandlerPanic 处理器 panic
	ErrHandlerPanic = errors.New("handler: handler panicked")

	// ErrHandler 处理器返回了业务错误
	ErrHandler = errors.New("handler: handler returned error")
)

// CastError 类型还原失败
type CastError struct {
	Expected types.TypeID
	Actual   types.TypeID
}

func (e *CastError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", ErrCast, e.Expected, e.Actual)
}

func (e *CastError) Unwrap() error {
	return ErrCast
}

// ResourceError 依赖解析失败
type ResourceError struct {
	// Type 缺失的资源类型
	Type types.TypeID
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s: %s", ErrResourceNotFound, e.Type)
}

func (e *ResourceError) Unwrap() error {
	return ErrResourceNotFound
}

// PanicError 处理器 panic 被恢复
type PanicError struct {
	// Request 发生 panic 时处理的请求类型
	Request types.TypeID
	// Value recover() 得到的值
	Value any
	// Stack panic 时的调用栈
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrHandlerPanic, e.Request, e.Value)
}

func (e *PanicError) Unwrap() error {
	return ErrHandlerPanic
}

// ============================================================================
//                              HandlerError - 类型化处理器错误
// ============================================================================

// HandlerError 保存处理器返回的原始错误及其动态类型
//
// 只能以原始的精确类型取回（见 As），其他类型一律视为不存在。
type HandlerError struct {
	// Type 原始错误的动态类型
	Type types.TypeID
	// Err 原始错误
	Err error
}

// NewHandlerError 包装处理器错误
//
// err 已经是 *HandlerError 时原样返回，重入调用的失败保留最初的类型。
func NewHandlerError(err error) error {
	if err == nil {
		return nil
	}
	if he, ok := err.(*HandlerError); ok {
		return he
	}
	return &HandlerError{Type: types.TypeOf(err), Err: err}
}

func (e *HandlerError) Error() string {
	return e.Err.Error()
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// Is 使 errors.Is(err, ErrHandler) 对所有处理器错误成立
func (e *HandlerError) Is(target error) bool {
	return target == ErrHandler
}

// As 从错误链中按精确类型 E 取回处理器的原始错误
//
// 链中不存在 *HandlerError，或其保存的类型不是 E 时返回 (零值, false)。
func As[E any](err error) (E, bool) {
	var zero E
	var he *HandlerError
	if !errors.As(err, &he) {
		return zero, false
	}
	if he.Type != types.TypeFor[E]() {
		return zero, false
	}
	v, ok := he.Err.(E)
	if !ok {
		return zero, false
	}
	return v, true
}
