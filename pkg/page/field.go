package page

import (
	"unicode/utf8"

	"github.com/decker502/nerdlayout/pkg/layout"
	"github.com/decker502/nerdlayout/pkg/signal"
	"github.com/decker502/nerdlayout/pkg/surface"
)

// fieldWidget 单行文本输入框
type fieldWidget struct{}

func (fieldWidget) Init(_ *Page, e *layout.Entity) error {
	e.SetString(AttrText, "")
	return nil
}

func (fieldWidget) Render(p *Page, e *layout.Entity) error {
	s := p.Surface()
	w, h := p.PixelSize(e)
	text := e.Text(AttrText)

	border := surface.Black
	if p.Focused(e) {
		limit := w - 2 - s.TextWidth("X")
		switch key := p.Key(); {
		case key.IsPrintable():
			if s.TextWidth(text) < limit {
				text += string(key.Rune())
			}
		case key == signal.Backspace:
			text = trimLastRune(text)
		case key == signal.Delete:
			text = ""
		}
		e.SetString(AttrText, text)
		border = surface.Green
	}

	s.FillRect(0, 0, w, h, border)
	s.FillRect(1, 1, w-2, h-2, surface.White)
	s.DrawText(text, 2, (h-s.TextHeight(text))/2, surface.Black)
	return nil
}

// trimLastRune 删除最后一个字符，恢复的快照里可能有多字节字符
func trimLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
