// Package lib 包含基础设施工具库
//
// 本目录包含与总线组件无关的通用工具库：
//
//   - log: 日志封装（按组件划分的 slog Logger）
//
// # 与 pkg/ 其他目录的关系
//
//   - interfaces/: 扩展契约（指标上报、钩子）
//   - types/: 公共类型定义（TypeID、投递统计）
//   - lib/: 基础设施工具库（本目录）
//
// # 使用示例
//
//	import "github.com/dep2p/go-mediator/pkg/lib/log"
//
//	var logger = log.Logger("myapp/users")
package lib
