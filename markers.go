package mediator

// ============================================================================
//                              消息标记
// ============================================================================

// Command 命令标记接口
//
// Res 为命令的响应类型。只有嵌入 CommandBase[Res] 的类型才满足该接口，
// 因此每个命令类型在编译期绑定唯一的响应类型：
//
//	type Ping struct {
//	    mediator.CommandBase[string]
//	    Msg string
//	}
type Command[Res any] interface {
	commandResponse() Res
}

// CommandBase 命令基类，嵌入后类型成为响应为 Res 的命令
type CommandBase[Res any] struct{}

func (CommandBase[Res]) commandResponse() Res {
	var zero Res
	return zero
}

// Event 事件标记接口
//
// 嵌入 EventBase 的类型可以通过 Publish 发布：
//
//	type UserCreated struct {
//	    mediator.EventBase
//	    ID int
//	}
type Event interface {
	event()
}

// EventBase 事件基类
type EventBase struct{}

func (EventBase) event() {}
