package page

import (
	"strings"

	"github.com/decker502/nerdlayout/pkg/layout"
)

// toolbarWidget 图标网格，每个条目占一个正方形单元
type toolbarWidget struct{}

func (toolbarWidget) Init(_ *Page, e *layout.Entity) error {
	if _, err := positiveInt(e, AttrColumns); err != nil {
		return err
	}
	e.SetInt(AttrScrollX, 0)
	e.SetInt(AttrScrollY, 0)
	e.SetInt(AttrItemX, NoValue)
	e.SetInt(AttrItemY, NoValue)
	items := splitTokens(e.Text(AttrItems), RowSeparator)
	e.SetString(AttrText, strings.Join(items, CellSeparator))
	return nil
}

func (toolbarWidget) Render(p *Page, e *layout.Entity) error {
	columns, err := positiveInt(e, AttrColumns)
	if err != nil {
		return err
	}
	items, err := ToolbarItems(e)
	if err != nil {
		return err
	}

	s := p.Surface()
	w, _ := p.PixelSize(e)
	cell := w / columns
	sx, sy := scrollOffset(e)
	mx, my := p.Mouse()

	for i, item := range items {
		gx, gy := i%columns, i/columns
		left := gx*cell - sx
		top := gy*cell - sy

		iw, ih, err := s.ImageSize(item.Icon)
		if err != nil {
			return err
		}
		dx := (cell - iw) / 2
		dy := (cell - ih) / 2

		if p.WasClicked(e) {
			hit := layout.Rect{Left: left, Top: top, Right: left + cell - 1, Bottom: top + cell - 1}
			if hit.Contains(mx, my) {
				e.SetInt(AttrItemX, gx)
				e.SetInt(AttrItemY, gy)
				if err := p.hooks.OnToolbarClick(p, e, item.Label); err != nil {
					return err
				}
			}
		}

		on := e.Int(AttrItemX) == gx && e.Int(AttrItemY) == gy
		if err := s.DrawImage(item.Icon, left+dx, top+dy, iw, ih, 0, false, false); err != nil {
			return err
		}
		textX := (cell - s.TextWidth(item.Label)) / 2
		s.DrawText(item.Label, left+textX, top+dy+ih+1, highlight(on))
	}
	return scroll(p, e)
}

// SelectedToolbarItem 当前选中的条目
func SelectedToolbarItem(e *layout.Entity) (ToolbarItem, bool) {
	columns := e.Int(AttrColumns)
	x, y := e.Int(AttrItemX), e.Int(AttrItemY)
	if columns <= 0 || x < 0 || y < 0 {
		return ToolbarItem{}, false
	}
	items, err := ToolbarItems(e)
	if err != nil {
		return ToolbarItem{}, false
	}
	i := y*columns + x
	if i >= len(items) {
		return ToolbarItem{}, false
	}
	return items[i], true
}
