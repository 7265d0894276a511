// Package interfaces 定义 go-mediator 对外暴露的扩展契约
//
// 总线的核心类型都在根包中，这里只放需要由使用方实现或传入的接口：
//   - mediator.go       - DispatchReporter（指标上报）、ErrorHook、UnhandledEventHook
//
// 实现 DispatchReporter 时可以嵌入 NopReporter，只覆盖关心的方法：
//
//	type slowCommands struct {
//	    interfaces.NopReporter
//	}
//
//	func (slowCommands) CommandDispatched(req types.TypeID, elapsed time.Duration, err error) {
//	    if elapsed > time.Second {
//	        log.Printf("slow command %s: %s", req, elapsed)
//	    }
//	}
package interfaces
