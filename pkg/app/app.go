// Package app 提供页面应用的核心包装器
//
// 该包把配置加载、页面初始化和存档恢复从 main 包提取出来，
// 桌面端通过 cmd/nerdpage 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/nerdlayout/pkg/config"
	"github.com/decker502/nerdlayout/pkg/ebitenio"
	"github.com/decker502/nerdlayout/pkg/page"
	"github.com/decker502/nerdlayout/pkg/signal"
	"github.com/decker502/nerdlayout/pkg/store"
)

// HooksFactory 为每个页面创建回调，m 为页面所属的管理器
type HooksFactory func(m *page.Manager, name string) page.Hooks

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// App 应用配置，页面布局和页面配置都从 Pages 读取
	App *config.AppConfig
	// Pages 页面目录，包含 <name>.txt 和页面配置文件
	Pages fs.FS
	// Assets 图标和字体目录，App.Images 与 App.Font.Path 相对于它
	Assets fs.FS
	// Hooks 页面回调工厂，为 nil 时所有页面使用空回调
	Hooks HooksFactory
	// NoSave 禁用存档的读取和保存
	NoSave bool
}

// App 是页面应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg     *config.AppConfig
	manager *page.Manager
	surface *ebitenio.Surface
	input   *ebitenio.Input
	queue   *signal.Queue
	store   *store.Store
	verbose bool

	// 每个页面的像素尺寸
	sizes map[string]image.Point

	lastPage                 string
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 加载配置和页面并创建应用
func NewApp(ctx context.Context, cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	if cfg.App == nil {
		return nil, fmt.Errorf("应用配置为空")
	}
	appCfg := cfg.App
	appCfg.ApplyDefaults()
	if err := appCfg.Validate(); err != nil {
		return nil, fmt.Errorf("应用配置无效: %w", err)
	}

	// 读取每个页面的网格配置，屏幕缓冲按最大页面分配
	layouts := make([]*config.LayoutConfig, len(appCfg.Pages))
	sizes := make(map[string]image.Point, len(appCfg.Pages))
	var maxW, maxH int
	for i, entry := range appCfg.Pages {
		lc, err := config.LoadLayoutConfig(cfg.Pages, entry.ConfigFile())
		if err != nil {
			return nil, fmt.Errorf("页面 %s 配置加载失败: %w", entry.Name, err)
		}
		layouts[i] = lc
		sizes[entry.Name] = image.Pt(lc.Width, lc.Height)
		maxW = max(maxW, lc.Width)
		maxH = max(maxH, lc.Height)
		log.Printf("[Config] 页面 %s: %dx%d 像素, 单元 %dx%d", entry.Name, lc.Width, lc.Height, lc.CellW, lc.CellH)
	}

	face, err := ebitenio.LoadFace(cfg.Assets, appCfg.Font.Path, appCfg.Font.Size)
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}
	surf := ebitenio.NewSurface(maxW, maxH, face)
	if appCfg.Images != "" {
		if _, err := surf.LoadImages(cfg.Assets, appCfg.Images); err != nil {
			return nil, fmt.Errorf("图标加载失败: %w", err)
		}
	}

	queue := signal.NewQueue()
	manager := page.NewManager(cfg.Pages)
	entries := make([]page.Entry, len(appCfg.Pages))
	for i, entry := range appCfg.Pages {
		p := page.New(layouts[i], surf, queue)
		p.SetPeekKeyWithMouse(appCfg.PeekKeyWithMouse)
		if cfg.Hooks != nil {
			p.SetHooks(cfg.Hooks(manager, entry.Name))
		}
		entries[i] = page.Entry{Name: entry.Name, Page: p}
	}
	if err := manager.LoadPages(ctx, entries...); err != nil {
		return nil, fmt.Errorf("页面加载失败: %w", err)
	}
	if err := manager.GoToPage(appCfg.Start); err != nil {
		return nil, err
	}
	log.Printf("[App] 加载 %d 个页面，起始页面 %s", len(entries), appCfg.Start)

	st := store.New(nil)
	if !cfg.NoSave {
		if st, err = store.Open(appCfg.SaveName); err != nil {
			log.Printf("[App] Warning: 存档不可用: %v", err)
			st = store.New(nil)
		}
		st.RestoreAll(manager)
	}

	a := &App{
		cfg:      appCfg,
		manager:  manager,
		surface:  surf,
		input:    ebitenio.NewInput(queue),
		queue:    queue,
		store:    st,
		verbose:  cfg.Verbose,
		sizes:    sizes,
		lastPage: manager.CurrentName(),
	}
	a.SetFPS(appCfg.FPS)
	return a, nil
}

// SetFPS 设置每秒帧数
func (a *App) SetFPS(fps int) {
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	a.cfg.FPS = fps
	ebiten.SetTPS(fps)
}

// WindowSize 当前页面按缩放倍数计算的窗口尺寸
func (a *App) WindowSize() (int, int) {
	size := a.sizes[a.manager.CurrentName()]
	return int(float64(size.X) * a.cfg.Scale), int(float64(size.Y) * a.cfg.Scale)
}

// Update 收集输入并渲染一帧
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.WindowSize())
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.input.Poll()
	if err := a.manager.Render(); err != nil {
		return err
	}

	// 页面切换后调整窗口
	if name := a.manager.CurrentName(); name != a.lastPage {
		log.Printf("[App] 页面切换 %s -> %s", a.lastPage, name)
		a.lastPage = name
		if !ebiten.IsFullscreen() {
			ebiten.SetWindowSize(a.WindowSize())
		}
	}
	return nil
}

// Draw 把屏幕缓冲中当前页面的区域复制到窗口
func (a *App) Draw(screen *ebiten.Image) {
	size := a.sizes[a.manager.CurrentName()]
	src := a.surface.Screen().SubImage(image.Rect(0, 0, size.X, size.Y)).(*ebiten.Image)
	screen.DrawImage(src, nil)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回当前页面的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := a.sizes[a.manager.CurrentName()]
	return size.X, size.Y
}

// Save 保存所有页面的快照
func (a *App) Save() error {
	if !a.store.Persistent() {
		return nil
	}
	if err := a.store.SaveAll(a.manager); err != nil {
		return fmt.Errorf("保存页面失败: %w", err)
	}
	log.Printf("[App] 已保存 %d 个页面", len(a.manager.Names()))
	return nil
}

// Manager 返回页面管理器
func (a *App) Manager() *page.Manager { return a.manager }

// Queue 返回信号队列
func (a *App) Queue() *signal.Queue { return a.queue }

// Title 窗口标题
func (a *App) Title() string { return a.cfg.Title }

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
