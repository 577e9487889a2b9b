package page

import "github.com/decker502/nerdlayout/pkg/layout"

// Hooks 页面扩展点
//
// 应用通过嵌入 NopHooks 只覆盖关心的回调。回调返回的错误
// 会中止当前的初始化或帧。
type Hooks interface {
	// OnInit 页面所有组件初始化完成后调用
	OnInit(p *Page) error
	// OnComponentInit 每个实体的组件初始化之后调用
	OnComponentInit(p *Page, e *layout.Entity) error
	// OnButtonClick 按钮在本帧被点击
	OnButtonClick(p *Page, e *layout.Entity) error
	// OnListClick 列表条目被点击，text 为条目文本
	OnListClick(p *Page, e *layout.Entity, text string) error
	// OnToolbarClick 工具栏条目被点击，label 为条目标签
	OnToolbarClick(p *Page, e *layout.Entity, label string) error
}

// NopHooks 所有回调均为空操作
type NopHooks struct{}

func (NopHooks) OnInit(*Page) error { return nil }
func (NopHooks) OnComponentInit(*Page, *layout.Entity) error { return nil }
func (NopHooks) OnButtonClick(*Page, *layout.Entity) error { return nil }
func (NopHooks) OnListClick(*Page, *layout.Entity, string) error { return nil }
func (NopHooks) OnToolbarClick(*Page, *layout.Entity, string) error { return nil }

var _ Hooks = NopHooks{}
