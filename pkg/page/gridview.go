package page

import (
	"github.com/decker502/nerdlayout/pkg/layout"
	"github.com/decker502/nerdlayout/pkg/signal"
	"github.com/decker502/nerdlayout/pkg/surface"
)

// gridViewWidget 可编辑的表格
type gridViewWidget struct{}

func (gridViewWidget) Init(_ *Page, e *layout.Entity) error {
	if _, err := positiveInt(e, AttrColumns); err != nil {
		return err
	}
	if _, err := positiveInt(e, AttrRows); err != nil {
		return err
	}
	e.SetInt(AttrGridX, NoValue)
	e.SetInt(AttrGridY, NoValue)
	e.SetInt(AttrScrollX, 0)
	e.SetInt(AttrScrollY, 0)
	return ClearGrid(e)
}

func (gridViewWidget) Render(p *Page, e *layout.Entity) error {
	g, err := decodeGrid(e)
	if err != nil {
		return err
	}

	s := p.Surface()
	w, _ := p.PixelSize(e)
	cellW := w / g.columns
	cellH := s.TextHeight(e.Text(AttrText)) + 4
	sx, sy := scrollOffset(e)
	focused := p.Focused(e)
	mx, my := p.Mouse()
	charW := s.TextWidth("X")
	changed := false

	for y, row := range g.cells {
		for x := range row {
			left := x*cellW - sx
			top := y*cellH - sy
			on := false

			if focused {
				hit := layout.Rect{Left: left, Top: top, Right: left + cellW - 1, Bottom: top + cellH - 1}
				if p.WasClicked(e) && hit.Contains(mx, my) {
					e.SetInt(AttrGridX, x)
					e.SetInt(AttrGridY, y)
				}
				if e.Int(AttrGridX) == x && e.Int(AttrGridY) == y {
					row[x] = editCell(row[x], p.Key(), s.TextWidth(row[x]) < cellW-charW)
					changed = true
					on = true
				}
			}

			s.FillRect(left, top, cellW, cellH, surface.White)
			s.DrawText(row[x], left+2, top+2, highlight(on))
		}
	}

	if changed {
		e.SetString(AttrText, g.encode())
	}
	return scroll(p, e)
}

// editCell 对选中的单元格应用一次按键
// 分隔符被忽略；输入不能使单元格内容恰好等于空单元格标记
func editCell(text string, key signal.Code, room bool) string {
	switch {
	case key.IsPrintable():
		c := string(key.Rune())
		if !room || hasDelimiter(c) {
			break
		}
		next := text + c
		if text == FreeCell {
			next = c
		}
		if next != FreeCell {
			text = next
		}
	case key == signal.Backspace:
		if text == FreeCell {
			text = ""
		} else {
			text = trimLastRune(text)
		}
	case key == signal.Delete:
		text = FreeCell
	}
	if text == "" {
		text = FreeCell
	}
	return text
}

// SelectedGridCell 当前选中的单元格坐标
func SelectedGridCell(e *layout.Entity) (x, y int, ok bool) {
	x, y = e.Int(AttrGridX), e.Int(AttrGridY)
	return x, y, x >= 0 && y >= 0
}
