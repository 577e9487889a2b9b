package page

import (
	"fmt"

	"github.com/decker502/nerdlayout/pkg/layout"
	"github.com/decker502/nerdlayout/pkg/surface"
)

// Widget 一种实体类型的行为
//
// Init 在属性赋值完成后调用一次，建立组件的默认状态；
// Render 每帧调用，绘制到以实体左上角为原点的画布上，
// 并在拥有焦点或被点击时应用本帧的输入。
type Widget interface {
	Init(p *Page, e *layout.Entity) error
	Render(p *Page, e *layout.Entity) error
}

// WidgetFuncs 用函数组装 Widget，nil 字段视为空操作
type WidgetFuncs struct {
	InitFunc   func(p *Page, e *layout.Entity) error
	RenderFunc func(p *Page, e *layout.Entity) error
}

func (w WidgetFuncs) Init(p *Page, e *layout.Entity) error {
	if w.InitFunc == nil {
		return nil
	}
	return w.InitFunc(p, e)
}

func (w WidgetFuncs) Render(p *Page, e *layout.Entity) error {
	if w.RenderFunc == nil {
		return nil
	}
	return w.RenderFunc(p, e)
}

// 组件使用的属性名
const (
	AttrText    = "text"
	AttrLabel   = "label"
	AttrRed     = "red"
	AttrGreen   = "green"
	AttrBlue    = "blue"
	AttrItems   = "items"
	AttrRows    = "rows"
	AttrColumns = "columns"
	AttrScrollX = "scroll-x"
	AttrScrollY = "scroll-y"
	AttrSelItem = "sel-item"
	AttrItemX   = "item-x"
	AttrItemY   = "item-y"
	AttrGridX   = "grid-x"
	AttrGridY   = "grid-y"
)

// NoValue 表示未选中的下标
const NoValue = -1

func builtinWidgets() map[layout.Kind]Widget {
	return map[layout.Kind]Widget{
		layout.KindField:    fieldWidget{},
		layout.KindLabel:    labelWidget{},
		layout.KindButton:   buttonWidget{},
		layout.KindList:     listWidget{},
		layout.KindToolbar:  toolbarWidget{},
		layout.KindGridView: gridViewWidget{},
	}
}

// entityColor 读取 red/green/blue 三个必需属性
func entityColor(e *layout.Entity) (surface.RGB, error) {
	r, err := e.RequireInt(AttrRed)
	if err != nil {
		return surface.RGB{}, err
	}
	g, err := e.RequireInt(AttrGreen)
	if err != nil {
		return surface.RGB{}, err
	}
	b, err := e.RequireInt(AttrBlue)
	if err != nil {
		return surface.RGB{}, err
	}
	return surface.NewRGB(r, g, b), nil
}

// positiveInt 读取必需的正整数属性
func positiveInt(e *layout.Entity, key string) (int, error) {
	n, err := e.RequireInt(key)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("entity %q: %w: %s must be positive, got %d", e.ID, ErrInvalidAttribute, key, n)
	}
	return n, nil
}

// highlight 选中项使用绿色文本
func highlight(on bool) surface.RGB {
	if on {
		return surface.Green
	}
	return surface.Black
}
