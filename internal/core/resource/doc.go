// Package resource 实现按类型索引的资源容器
//
// 资源是注入到处理器中的依赖。构建阶段通过 Builder 按类型写入，
// Build 之后冻结为只读的 Container，由 Bus 与所有进行中的处理器
// 调用共享。冻结后的读取无需加锁。
//
// # 使用示例
//
//	b := resource.NewBuilder()
//	resource.Insert[UserRepository](b, repo)
//	c := b.Build()
//
//	repo, ok := resource.Get[UserRepository](c)
//
// 键是 Insert 的类型参数，而不是值的动态类型：
// 以接口类型写入的资源只能以同一接口类型取出。
package resource
