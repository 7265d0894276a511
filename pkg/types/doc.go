// Package types 定义 go-mediator 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
//   - typeid.go  - TypeID 运行时类型标识（三张注册表的唯一键）
//   - stats.go   - DeliveryStats 事件投递统计
//   - failure.go - DeliveryFailure 事件处理器失败记录
//
// # TypeID
//
// TypeID 总是由编译期类型参数得到：
//
//	id := types.TypeFor[CreateUser]()
//
// 注册处理器时使用的 TypeID 与 Send/Publish 时计算的 TypeID
// 来自同一个类型参数，因此擦除与还原是对称的。
package types
