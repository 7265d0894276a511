package main

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	mediator "github.com/dep2p/go-mediator"
	"github.com/dep2p/go-mediator/pkg/types"
)

// ============================================================================
//                              压测负载
// ============================================================================

// Compute 命令：返回 N 的平方
type Compute struct {
	mediator.CommandBase[int]
	N int
}

// Computed 事件：每条命令完成后发布
type Computed struct {
	mediator.EventBase
	N      int
	Result int
}

// errInjected 按比例注入的处理器失败
var errInjected = errors.New("medibench: injected failure")

// counters 处理器共享的计数资源
type counters struct {
	commands atomic.Uint64
	events   atomic.Uint64
	failures atomic.Uint64
}

// benchOptions 负载参数
type benchOptions struct {
	Commands     int
	Events       int
	Workers      int
	Handlers     int
	HandlerDelay time.Duration
	FailEvery    int
}

func (o benchOptions) validate() error {
	switch {
	case o.Commands < 0 || o.Events < 0:
		return fmt.Errorf("commands and events must not be negative")
	case o.Workers <= 0:
		return fmt.Errorf("workers must be positive, got %d", o.Workers)
	case o.Handlers < 0:
		return fmt.Errorf("handlers must not be negative, got %d", o.Handlers)
	case o.FailEvery < 0:
		return fmt.Errorf("fail-every must not be negative, got %d", o.FailEvery)
	}
	return nil
}

// benchResult 压测结果
type benchResult struct {
	Commands      uint64
	CommandErrors uint64
	Published     uint64
	Elapsed       time.Duration
	Stats         types.DeliveryStats
}

// CommandRate 每秒命令数
func (r benchResult) CommandRate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Commands) / r.Elapsed.Seconds()
}

// registerWorkload 注册压测用的资源与处理器
func registerWorkload(b *mediator.BusBuilder, o benchOptions) *counters {
	c := &counters{}
	mediator.AppendResource(b, c)

	mediator.AddCommandHandler1(b, func(_ context.Context, cnt *counters, cmd Compute) (int, error) {
		cnt.commands.Add(1)
		return cmd.N * cmd.N, nil
	})

	for i := 0; i < o.Handlers; i++ {
		mediator.AddEventHandler1(b, func(_ context.Context, cnt *counters, evt Computed) error {
			if o.HandlerDelay > 0 {
				time.Sleep(o.HandlerDelay)
			}
			cnt.events.Add(1)
			if o.FailEvery > 0 && evt.N%o.FailEvery == 0 && i == 0 {
				cnt.failures.Add(1)
				return errInjected
			}
			return nil
		})
	}
	return c
}

// runWorkload 在 Workers 个 goroutine 上发送命令并发布事件
//
// 下标 i 小于 Commands 时发送命令，小于 Events 时发布事件。
func runWorkload(ctx context.Context, bus *mediator.Bus, o benchOptions) (benchResult, error) {
	var (
		sent      atomic.Uint64
		failed    atomic.Uint64
		published atomic.Uint64
		next      atomic.Int64
	)
	total := int64(max(o.Commands, o.Events))

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < o.Workers; w++ {
		g.Go(func() error {
			for {
				i := next.Add(1) - 1
				if i >= total {
					return nil
				}
				n := int(i)

				result := 0
				if n < o.Commands {
					res, err := mediator.Send(gctx, bus, Compute{N: n})
					sent.Add(1)
					if err != nil {
						failed.Add(1)
					}
					result = res
				}
				if n < o.Events {
					if err := mediator.Publish(gctx, bus, Computed{N: n, Result: result}); err != nil {
						return err
					}
					published.Add(1)
				}
			}
		})
	}
	err := g.Wait()

	return benchResult{
		Commands:      sent.Load(),
		CommandErrors: failed.Load(),
		Published:     published.Load(),
		Elapsed:       time.Since(start),
		Stats:         bus.Stats(),
	}, err
}
