//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包，
// ebitenmobile 加载包时通过 init() 注册演示应用。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.nerdpage -o build/android/nerdpage.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/NerdPage.xcframework -v ./mobile
package mobile

import (
	"context"
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/nerdlayout/internal/demo"
	"github.com/decker502/nerdlayout/pkg/app"
)

func init() {
	demo.InitEmbedded()

	ctrl := demo.NewController()
	cfg, err := demo.AppConfig(true, ctrl)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	pageApp, err := app.NewApp(context.Background(), cfg)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	ctrl.Attach(pageApp)

	// 注册到 ebitenmobile
	mobile.SetGame(pageApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
