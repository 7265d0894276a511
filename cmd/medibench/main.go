// Package main 提供 medibench 命令行入口
//
// medibench 构建一个带命令和事件处理器的总线，用多个 goroutine 施压，
// 输出吞吐与投递统计。
//
//	medibench run --commands 100000 --events 100000 --workers 16 --handlers 4
//	medibench config --preset throughput
package main

import (
	"os"

	"github.com/dep2p/go-mediator/pkg/lib/log"
)

var logger = log.Logger("cmd/medibench")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
