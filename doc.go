// Package mediator 提供进程内的类型安全命令/事件总线
//
// 总线把请求对象按运行时类型路由到处理器函数，并在调用时从资源容器
// 按类型注入处理器声明的依赖。
//
// # 核心概念
//
//   - Command: 恰好一个处理器，同步执行，返回类型化响应
//   - Event: 零到多个处理器，异步执行，发布者不等待结果
//   - Resource: 构建时注册的共享对象（仓储、客户端、总线自身），按类型注入
//
// # 快速开始
//
//	type Ping struct {
//	    mediator.CommandBase[string]
//	    Msg string
//	}
//
//	type Pinged struct {
//	    mediator.EventBase
//	    Msg string
//	}
//
//	b := mediator.NewBuilder()
//	mediator.AddCommandHandler(b, func(ctx context.Context, p Ping) (string, error) {
//	    return "Pong: " + p.Msg, nil
//	})
//	mediator.AddEventHandler(b, func(ctx context.Context, e Pinged) error {
//	    return nil
//	})
//	bus, err := b.Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bus.Close(context.Background())
//
//	pong, err := mediator.Send(ctx, bus, Ping{Msg: "hi"})
//	err = mediator.Publish(ctx, bus, Pinged{Msg: "hi"})
//
// # 资源注入
//
// 资源以 AppendResource 的类型参数为键，处理器以参数类型声明依赖，
// 两者必须完全一致（接口类型不会匹配其实现类型）：
//
//	mediator.AppendResource[UserRepository](b, repo)
//	mediator.AddCommandHandler1(b, func(ctx context.Context, repo UserRepository, c CreateUser) (int, error) {
//	    return repo.Create(ctx, c.Name)
//	})
//
// 总线自身以 *Bus 类型注册，处理器可以在内部再次 Send 或 Publish。
//
// # 事件投递
//
// Publish 把事件复制进信封放入有界队列（默认 1024），队列满时阻塞。
// 后台循环按 FIFO 逐个取出信封，同一信封的处理器并发执行，
// 全部结束后才处理下一个信封。处理器失败只通过 ErrorHook、日志和指标报告。
//
// # 错误处理
//
//	_, err := mediator.Send(ctx, bus, GetUser{ID: 1})
//	switch {
//	case errors.Is(err, mediator.ErrHandlerNotFound):
//	case errors.Is(err, mediator.ErrResourceNotFound):
//	}
//	if nf, ok := mediator.GetHandlerError[*UserNotFound](err); ok {
//	    ...
//	}
//
// # 文件组织
//
//   - markers.go: Command / Event 标记
//   - builder.go: BusBuilder 与 Build
//   - handlers.go: AddCommandHandler* / AddEventHandler*
//   - bus.go: Bus、Send、Publish、Close
//   - options.go: 构建选项
//   - errors.go: 错误定义
//   - fx.go: Fx 模块
package mediator
