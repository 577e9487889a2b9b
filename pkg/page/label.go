package page

import (
	"github.com/decker502/nerdlayout/pkg/layout"
	"github.com/decker502/nerdlayout/pkg/surface"
)

// labelWidget 静态文本
type labelWidget struct{}

func (labelWidget) Init(*Page, *layout.Entity) error { return nil }

func (labelWidget) Render(p *Page, e *layout.Entity) error {
	label, err := e.RequireText(AttrLabel)
	if err != nil {
		return err
	}
	c, err := entityColor(e)
	if err != nil {
		return err
	}
	p.Surface().DrawText(label, 0, 0, c)
	return nil
}

// buttonWidget 纯色按钮，标签居中显示为白色
type buttonWidget struct{}

func (buttonWidget) Init(*Page, *layout.Entity) error { return nil }

func (buttonWidget) Render(p *Page, e *layout.Entity) error {
	label, err := e.RequireText(AttrLabel)
	if err != nil {
		return err
	}
	c, err := entityColor(e)
	if err != nil {
		return err
	}

	s := p.Surface()
	w, h := p.PixelSize(e)
	s.FillRect(0, 0, w, h, c)
	s.DrawText(label, (w-s.TextWidth(label))/2, (h-s.TextHeight(label))/2, surface.White)

	if p.WasClicked(e) {
		return p.hooks.OnButtonClick(p, e)
	}
	return nil
}
