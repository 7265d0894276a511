// Package dispatch 实现命令分发表与事件分发表
//
// 两张表都以 types.TypeID 为键：
//   - CommandTable: 每个请求类型恰好一个处理器，重复注册直接 panic
//   - EventTable: 每个事件类型零到多个处理器，按注册顺序累加
//
// Register 只在构建阶段由单个 goroutine 调用；Bus 启动后两张表只读，
// 查找无需加锁。
package dispatch
