package page

import (
	"strings"

	"github.com/decker502/nerdlayout/pkg/layout"
	"github.com/decker502/nerdlayout/pkg/surface"
)

// listWidget 可滚动的单列列表
type listWidget struct{}

func (listWidget) Init(_ *Page, e *layout.Entity) error {
	e.SetInt(AttrScrollX, 0)
	e.SetInt(AttrScrollY, 0)
	e.SetInt(AttrSelItem, NoValue)
	items := splitTokens(e.Text(AttrItems), RowSeparator)
	e.SetString(AttrText, strings.Join(items, CellSeparator))
	return nil
}

func (listWidget) Render(p *Page, e *layout.Entity) error {
	s := p.Surface()
	w, _ := p.PixelSize(e)
	sx, sy := scrollOffset(e)
	items := itemsOf(e)
	rowH := s.TextHeight(e.Text(AttrText)) + 2
	selected := e.Int(AttrSelItem)
	mx, my := p.Mouse()

	for i, item := range items {
		top := i*rowH - sy
		s.FillRect(-sx, top, w, rowH, surface.White)
		s.DrawText(item, 2-sx, top+2, highlight(selected == i))

		if p.WasClicked(e) {
			hit := layout.Rect{Left: 0, Top: top, Right: w - 1, Bottom: top + rowH - 1}
			if hit.Contains(mx, my) {
				e.SetInt(AttrSelItem, i)
				if err := p.hooks.OnListClick(p, e, item); err != nil {
					return err
				}
			}
		}
	}
	return scroll(p, e)
}
