// Package demo 内置的演示页面和回调
//
// 资源嵌入在本包中，桌面端和移动端共用。
package demo

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/decker502/nerdlayout/pkg/app"
	"github.com/decker502/nerdlayout/pkg/config"
	"github.com/decker502/nerdlayout/pkg/embedded"
)

//go:embed all:assets
var assetsFS embed.FS

//go:embed data/app.yaml data/pages
var dataFS embed.FS

// 资源路径
const (
	AppConfigPath = "data/app.yaml"
	PagesDir      = "data/pages"
)

// InitEmbedded 把内置资源交给 embedded 包
func InitEmbedded() {
	embedded.Init(assetsFS, dataFS)
}

// AppConfig 从已初始化的 embedded 资源构造应用配置
//
// 页面和图标分别以 data/pages 和 assets 为根。
func AppConfig(verbose bool, c *Controller) (app.Config, error) {
	data, err := embedded.ReadFile(AppConfigPath)
	if err != nil {
		return app.Config{}, fmt.Errorf("读取应用配置失败: %w", err)
	}
	appCfg, err := config.ParseAppConfig(data)
	if err != nil {
		return app.Config{}, err
	}
	pages, err := embedded.Sub(PagesDir)
	if err != nil {
		return app.Config{}, err
	}
	assets, err := embedded.Sub(embedded.AssetsRoot)
	if err != nil {
		return app.Config{}, err
	}

	cfg := app.Config{
		Verbose: verbose,
		App:     appCfg,
		Pages:   pages,
		Assets:  assets,
	}
	if c != nil {
		c.SetFPS(appCfg.FPS)
		cfg.Hooks = c.Hooks
	}
	return cfg, nil
}

// Pages 内置页面目录
func Pages() fs.FS {
	sub, err := fs.Sub(dataFS, PagesDir)
	if err != nil {
		panic(err)
	}
	return sub
}
