package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	mediator "github.com/dep2p/go-mediator"
	"github.com/dep2p/go-mediator/pkg/types"
)

// runFlags run 子命令参数
type runFlags struct {
	bench         benchOptions
	queueCapacity int
	maxConcurrent int
	metricsAddr   string
	fxVerbose     bool
}

func newRunCommand(g *globalFlags) *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "构建总线并施加负载",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd.Context(), cmd.OutOrStdout(), g, f)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.bench.Commands, "commands", 10000, "发送的命令数")
	flags.IntVar(&f.bench.Events, "events", 10000, "发布的事件数")
	flags.IntVarP(&f.bench.Workers, "workers", "w", 8, "并发 goroutine 数")
	flags.IntVar(&f.bench.Handlers, "handlers", 3, "每个事件的处理器数")
	flags.DurationVar(&f.bench.HandlerDelay, "handler-delay", 0, "每个事件处理器的模拟耗时")
	flags.IntVar(&f.bench.FailEvery, "fail-every", 0, "每 N 个事件让第一个处理器失败一次（0 = 不注入）")
	flags.IntVar(&f.queueCapacity, "queue", 0, "覆盖事件队列容量")
	flags.IntVar(&f.maxConcurrent, "max-concurrent", -1, "覆盖单个事件的处理器并发上限")
	flags.StringVar(&f.metricsAddr, "metrics-addr", "", "压测期间在该地址导出 /metrics")
	flags.BoolVar(&f.fxVerbose, "fx-verbose", false, "输出 fx 生命周期日志")
	return cmd
}

// runBench 组装总线、运行负载并输出报告
func runBench(ctx context.Context, out io.Writer, g *globalFlags, f *runFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := f.bench.validate(); err != nil {
		return err
	}
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	opts := []mediator.Option{
		mediator.WithConfig(cfg),
		mediator.WithMetricsRegisterer(reg),
		mediator.WithErrorHook(func(_ context.Context, failure *types.DeliveryFailure) {
			logger.Debug("事件处理器失败", "event", failure.Event, "handler", failure.HandlerIndex, "error", failure.Err)
		}),
	}
	if f.queueCapacity > 0 {
		opts = append(opts, mediator.WithQueueCapacity(f.queueCapacity))
	}
	if f.maxConcurrent >= 0 {
		opts = append(opts, mediator.WithMaxConcurrentHandlers(f.maxConcurrent))
	}

	b := mediator.NewBuilder(opts...)
	registerWorkload(b, f.bench)

	zl := zap.NewNop()
	if f.fxVerbose {
		if zl, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer func() { _ = zl.Sync() }()
	}

	var bus *mediator.Bus
	app := mediator.NewApp(b, zl, fx.Populate(&bus))
	if err := app.Err(); err != nil {
		return err
	}

	if err := app.Start(ctx); err != nil {
		return err
	}

	stopMetrics, err := serveMetrics(f.metricsAddr, reg)
	if err != nil {
		_ = app.Stop(context.Background())
		return err
	}
	defer stopMetrics()

	logger.Info("开始压测",
		"commands", f.bench.Commands,
		"events", f.bench.Events,
		"workers", f.bench.Workers,
		"handlers", f.bench.Handlers)

	result, runErr := runWorkload(ctx, bus, f.bench)

	// 停止应用会关闭总线并等待事件投递完成
	drainStart := time.Now()
	stopErr := app.Stop(context.Background())
	drain := time.Since(drainStart)
	result.Stats = bus.Stats()

	printReport(out, result, drain)
	return errors.Join(runErr, stopErr)
}

// serveMetrics 在 addr 上导出指标，addr 为空时不启动
func serveMetrics(addr string, reg *prometheus.Registry) (func(), error) {
	if addr == "" {
		return func() {}, nil
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("指标服务退出", "error", err)
		}
	}()
	logger.Info("指标服务已启动", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

// printReport 输出压测报告
func printReport(out io.Writer, r benchResult, drain time.Duration) {
	fmt.Fprintf(out, "commands:        %d (%d errors)\n", r.Commands, r.CommandErrors)
	fmt.Fprintf(out, "command rate:    %.0f/s\n", r.CommandRate())
	fmt.Fprintf(out, "published:       %d\n", r.Published)
	fmt.Fprintf(out, "delivered:       %d (%d unhandled)\n", r.Stats.Delivered, r.Stats.Unhandled)
	fmt.Fprintf(out, "handler runs:    %d (%d failed, %.2f%%)\n",
		r.Stats.HandlerRuns, r.Stats.HandlerFailures, r.Stats.FailureRate()*100)
	fmt.Fprintf(out, "elapsed:         %s\n", r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "drain:           %s\n", drain.Round(time.Millisecond))
}
