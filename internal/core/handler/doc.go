// Package handler 实现处理器适配层
//
// 把注入 0..7 个资源、最后接收一个请求的普通函数提升为统一的
// 类型擦除处理器 Handler。调用流程：
//
//  1. 把擦除的请求还原为具体类型，失败返回 *CastError
//  2. 按声明顺序从资源容器解析依赖，首个缺失返回 *ResourceError，函数体不执行
//  3. 调用原始函数，panic 被恢复为 *PanicError
//  4. 成功返回擦除的响应；失败把原始错误包装为 *HandlerError
//
// *HandlerError 只能以原始精确类型通过 As 取回。
package handler

//go:generate mockgen -destination=mocks/handler.go -package=mocks github.com/dep2p/go-mediator/internal/core/handler Handler
