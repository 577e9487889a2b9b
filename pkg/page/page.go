// Package page 实现布局页面的运行时
//
// Page 持有解析出的实体集合和输入焦点状态，每帧从信号源弹出一个信号，
// 按实体顺序判定焦点、分发给对应类型的组件并把组件画布贴回屏幕。
// Manager 按名称管理多个页面并维护当前页面。
//
// 本包不输出日志，所有错误都返回给调用者。
package page

import (
	"fmt"

	"github.com/decker502/nerdlayout/pkg/config"
	"github.com/decker502/nerdlayout/pkg/layout"
	"github.com/decker502/nerdlayout/pkg/signal"
	"github.com/decker502/nerdlayout/pkg/surface"
)

// Page 一个布局实例
type Page struct {
	name string

	columns    int
	rows       int
	cellW      int
	cellH      int
	background surface.RGB

	components *layout.Components
	surface    surface.Surface
	source     signal.Source
	hooks      Hooks
	widgets    map[layout.Kind]Widget
	peekKey    bool

	// 交互状态
	selected   string
	clicked    string
	mouseX     int
	mouseY     int
	notClicked bool
	key        signal.Code
}

// New 按配置创建空页面，需要调用 Load 填充实体
func New(cfg *config.LayoutConfig, surf surface.Surface, src signal.Source) *Page {
	return &Page{
		columns:    cfg.Columns(),
		rows:       cfg.Rows(),
		cellW:      cfg.CellW,
		cellH:      cfg.CellH,
		background: surface.NewRGB(cfg.Red, cfg.Green, cfg.Blue),
		components: layout.NewComponents(),
		surface:    surf,
		source:     src,
		hooks:      NopHooks{},
		widgets:    builtinWidgets(),
		notClicked: true,
	}
}

// SetHooks 设置回调，nil 恢复为空操作
func (p *Page) SetHooks(h Hooks) {
	if h == nil {
		h = NopHooks{}
	}
	p.hooks = h
}

// Hooks 返回当前回调
func (p *Page) Hooks() Hooks { return p.hooks }

// SetPeekKeyWithMouse 鼠标信号帧是否同时查看下一个键盘信号
// 默认关闭，此时鼠标信号帧的 key 为 None
func (p *Page) SetPeekKeyWithMouse(enabled bool) { p.peekKey = enabled }

// RegisterWidget 为实体类型注册组件，覆盖同类型的已有组件
func (p *Page) RegisterWidget(kind layout.Kind, w Widget) {
	p.widgets[kind] = w
}

// Load 解析布局源并初始化所有组件
//
// 解析或初始化失败时页面保持原有实体不变。
func (p *Page) Load(data []byte) error {
	components, err := layout.Parse(data, p.columns, p.rows)
	if err != nil {
		return err
	}
	return p.install(components)
}

// install 启用新的实体集合并依次运行组件初始化和 OnComponentInit
func (p *Page) install(components *layout.Components) error {
	previous := p.components
	p.components = components
	for _, e := range components.Entities() {
		if err := p.initEntity(e); err != nil {
			p.components = previous
			return err
		}
	}
	p.resetState()
	p.notClicked = true
	return nil
}

func (p *Page) initEntity(e *layout.Entity) error {
	if w, ok := p.widgets[e.Kind]; ok {
		if err := w.Init(p, e); err != nil {
			return fmt.Errorf("init %s %q: %w", e.Kind, e.ID, err)
		}
	}
	if err := p.hooks.OnComponentInit(p, e); err != nil {
		return fmt.Errorf("init hook for %q: %w", e.ID, err)
	}
	return nil
}

// Render 执行一帧的渲染与输入分发
func (p *Page) Render() error {
	s := p.surface
	s.SetTarget(surface.Screen)
	s.Clear(p.background)
	p.clicked = ""

	sig := p.source.Pop()
	if sig.IsMouse() {
		p.key = signal.None
		if p.peekKey {
			p.key = p.source.PeekKey().Code
		}
		if sig.Button == signal.ButtonUp {
			p.notClicked = true
		}
	} else {
		p.key = sig.Code
	}

	for _, e := range p.components.Entities() {
		rect := e.PixelRect(p.cellW, p.cellH)
		if sig.IsMouse() && sig.Button.IsPress() && p.notClicked && rect.Contains(sig.X, sig.Y) {
			p.selected = e.ID
			p.clicked = e.ID
			p.mouseX = sig.X - rect.Left
			p.mouseY = sig.Y - rect.Top
			p.notClicked = false
		}

		s.SetTarget(surface.Canvas)
		s.Clear(surface.White)
		if w, ok := p.widgets[e.Kind]; ok {
			if err := w.Render(p, e); err != nil {
				return fmt.Errorf("render %s %q: %w", e.Kind, e.ID, err)
			}
		}
		s.BlitCanvas(rect.Left, rect.Top, e.Width*p.cellW, e.Height*p.cellH)
	}
	s.SetTarget(surface.Screen)
	return nil
}

// ClearFocus 清除焦点和本帧交互状态
// 清除后需要一次鼠标抬起才能重新获得焦点
func (p *Page) ClearFocus() {
	p.resetState()
	p.notClicked = false
}

func (p *Page) resetState() {
	p.selected = ""
	p.clicked = ""
	p.key = signal.None
	p.mouseX = 0
	p.mouseY = 0
}

// Name 页面在管理器中的名称
func (p *Page) Name() string { return p.name }

// Components 页面的实体集合
func (p *Page) Components() *layout.Components { return p.components }

// Entity 按 id 查找实体
func (p *Page) Entity(id string) (*layout.Entity, error) {
	e, ok := p.components.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", layout.ErrUnknownEntity, id)
	}
	return e, nil
}

// Surface 页面使用的绘图接口
func (p *Page) Surface() surface.Surface { return p.surface }

// GridSize 网格列数和行数
func (p *Page) GridSize() (columns, rows int) { return p.columns, p.rows }

// CellSize 网格单元的像素尺寸
func (p *Page) CellSize() (w, h int) { return p.cellW, p.cellH }

// PixelSize 实体的像素宽高
func (p *Page) PixelSize(e *layout.Entity) (w, h int) {
	return e.Width * p.cellW, e.Height * p.cellH
}

// Background 背景色
func (p *Page) Background() surface.RGB { return p.background }

// Selected 拥有输入焦点的实体 id
func (p *Page) Selected() string { return p.selected }

// Focus 将焦点交给指定实体，空字符串表示清除焦点
func (p *Page) Focus(id string) error {
	if id != "" {
		if _, err := p.Entity(id); err != nil {
			return err
		}
	}
	p.selected = id
	return nil
}

// Focused 实体是否拥有输入焦点
func (p *Page) Focused(e *layout.Entity) bool {
	return p.selected != "" && p.selected == e.ID
}

// Clicked 本帧被点击的实体 id
func (p *Page) Clicked() string { return p.clicked }

// WasClicked 实体是否在本帧被点击
func (p *Page) WasClicked(e *layout.Entity) bool {
	return p.clicked != "" && p.clicked == e.ID
}

// Key 本帧的键盘信号码
func (p *Page) Key() signal.Code { return p.key }

// Mouse 最近一次点击在焦点实体内的局部坐标
func (p *Page) Mouse() (x, y int) { return p.mouseX, p.mouseY }

// Latched 是否有按键处于按下状态
func (p *Page) Latched() bool { return !p.notClicked }
