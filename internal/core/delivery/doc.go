// Package delivery 实现事件的异步投递
//
// Publish 把事件包装为 Envelope 放入有界队列后立即返回；
// 后台投递循环按 FIFO 逐个取出信封，为该事件的每个处理器各启动一个
// goroutine 并发执行，全部结束后才取下一个信封。
//
// 顺序保证：
//   - 跨信封严格 FIFO：信封 N+1 的处理器不会在信封 N 的所有处理器结束前开始
//   - 同一信封内的处理器并发执行，彼此无顺序保证
//
// 队列满时 Enqueue 阻塞直到有空位或 ctx 结束；队列关闭后 Enqueue 失败。
// 处理器失败只通过钩子、日志和指标暴露，不影响兄弟处理器和后续信封。
package delivery
