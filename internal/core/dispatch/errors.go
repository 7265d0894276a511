package dispatch

import "errors"

// 分发模块错误定义
var (
	// ErrHandlerNotFound 请求类型没有注册命令处理器
	ErrHandlerNotFound = errors.New("dispatch: handler not found")
)
