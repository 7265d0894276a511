package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "输出生效的配置",
		Long:  "按 --config 文件与 --preset 合并后输出 JSON 配置，可作为配置文件模板。",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.ToJSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
