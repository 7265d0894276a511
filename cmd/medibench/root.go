package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dep2p/go-mediator/config"
	utillog "github.com/dep2p/go-mediator/internal/util/logger"
	"github.com/dep2p/go-mediator/pkg/lib/log"
)

// globalFlags 所有子命令共享的参数
type globalFlags struct {
	envFile    string
	configFile string
	preset     string
	logLevel   string
	logFormat  string
}

func newRootCommand() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "medibench",
		Short:         "go-mediator 压测工具",
		Long:          "medibench 在进程内构建命令/事件总线并施加并发负载，用于观察吞吐、排队与处理器失败。",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.setupLogging(cmd.Flags().Changed("env-file"))
		},
	}

	root.PersistentFlags().StringVar(&g.envFile, "env-file", ".env", "环境变量文件，用于 MEDIATOR_LOG_* 等设置")
	root.PersistentFlags().StringVarP(&g.configFile, "config", "c", "", "JSON 配置文件路径")
	root.PersistentFlags().StringVar(&g.preset, "preset", "", "预设配置 (default/throughput/sequential/quiet)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "日志级别，格式同 MEDIATOR_LOG_LEVEL")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "日志格式 (text/json)")

	root.AddCommand(newRunCommand(g))
	root.AddCommand(newConfigCommand(g))
	root.AddCommand(newVersionCommand())
	return root
}

// setupLogging 加载 .env 并应用日志参数
//
// 默认的 .env 不存在时忽略；显式指定的文件不存在时报错。
func (g *globalFlags) setupLogging(explicit bool) error {
	if g.envFile != "" {
		if err := godotenv.Load(g.envFile); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
	}

	// 日志配置可能在 .env 加载前就已缓存
	utillog.ResetConfig()
	log.Configure(g.logLevel, g.logFormat)
	logger.Debug("日志已配置", "envFile", g.envFile, "level", g.logLevel, "format", g.logFormat)
	return nil
}

// loadConfig 按 文件 -> 预设 的顺序得到配置
func (g *globalFlags) loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if g.configFile != "" {
		loaded, err := config.LoadFile(g.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if g.preset != "" {
		if err := config.ApplyPreset(cfg, g.preset); err != nil {
			return nil, err
		}
	}
	return config.ValidateAndFix(cfg)
}
