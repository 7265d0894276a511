package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version 由构建时 -ldflags 覆盖
var Version = "dev"

func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Run: func(cmd *cobra.Command, _ []string) {
			if short, _ := cmd.Flags().GetBool("short"); short {
				fmt.Fprintln(cmd.OutOrStdout(), Version)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "medibench %s\n", Version)
			if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "go: %s\n", info.GoVersion)
			}
		},
	}
	cmd.Flags().BoolP("short", "s", false, "只显示版本号")
	return cmd
}
