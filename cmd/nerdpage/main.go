// Package main 桌面端页面演示程序
//
// 用法:
//
//	go run ./cmd/nerdpage [-verbose] [-dir path] [-nosave] [-fps n] [-start page]
//
// 功能:
//   - 默认使用内置的演示页面，-dir 指定包含 assets/ 和 data/ 的目录
//   - 启动时恢复上次保存的页面状态，退出时保存
//   - F11 切换全屏
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nerdlayout/internal/demo"
	"github.com/decker502/nerdlayout/pkg/app"
	"github.com/decker502/nerdlayout/pkg/embedded"
)

var (
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
	dir     = flag.String("dir", "", "从磁盘目录读取资源（包含 assets/ 和 data/）")
	noSave  = flag.Bool("nosave", false, "不读取也不写入存档")
	fps     = flag.Int("fps", 0, "覆盖配置中的帧率")
	start   = flag.String("start", "", "覆盖配置中的起始页面")
)

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	flag.Parse()

	if *dir != "" {
		if err := embedded.InitFromDir(*dir); err != nil {
			fatal("资源目录无效: %v", err)
		}
	} else {
		demo.InitEmbedded()
	}

	ctrl := demo.NewController()
	cfg, err := demo.AppConfig(*verbose, ctrl)
	if err != nil {
		fatal("配置加载失败: %v", err)
	}
	cfg.NoSave = *noSave
	if *fps > 0 {
		cfg.App.FPS = *fps
		ctrl.SetFPS(*fps)
	}
	if *start != "" {
		cfg.App.Start = *start
	}

	pageApp, err := app.NewApp(context.Background(), cfg)
	if err != nil {
		fatal("初始化失败: %v", err)
	}
	ctrl.Attach(pageApp)

	ebiten.SetWindowTitle(pageApp.Title())
	ebiten.SetWindowSize(pageApp.WindowSize())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(pageApp)
	if err := pageApp.Save(); err != nil {
		log.Printf("[Main] Warning: %v", err)
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		fatal("运行失败: %v", runErr)
	}
}
