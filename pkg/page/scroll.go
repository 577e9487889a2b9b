package page

import (
	"github.com/decker502/nerdlayout/pkg/layout"
	"github.com/decker502/nerdlayout/pkg/signal"
)

// scroll 拥有焦点时按方向键移动一个单元的滚动偏移
func scroll(p *Page, e *layout.Entity) error {
	sx, err := e.RequireInt(AttrScrollX)
	if err != nil {
		return err
	}
	sy, err := e.RequireInt(AttrScrollY)
	if err != nil {
		return err
	}
	if !p.Focused(e) {
		return nil
	}

	cw, ch := p.CellSize()
	switch p.Key() {
	case signal.Left:
		e.SetInt(AttrScrollX, sx-cw)
	case signal.Right:
		e.SetInt(AttrScrollX, sx+cw)
	case signal.Up:
		e.SetInt(AttrScrollY, sy-ch)
	case signal.Down:
		e.SetInt(AttrScrollY, sy+ch)
	}
	return nil
}

// scrollOffset 当前的滚动偏移
func scrollOffset(e *layout.Entity) (int, int) {
	return e.Int(AttrScrollX), e.Int(AttrScrollY)
}
