package surface

// Discard 丢弃所有绘制的 Surface
//
// 文本度量使用固定的字符宽度和行高，图片尺寸固定为 ImageW×ImageH。
// 用于无窗口运行和命令行工具。
type Discard struct {
	CharWidth  int
	LineHeight int
	ImageW     int
	ImageH     int
}

// NewDiscard 使用 basicfont 7x13 相同的度量
func NewDiscard() *Discard {
	return &Discard{CharWidth: 7, LineHeight: 13, ImageW: 16, ImageH: 16}
}

func (d *Discard) SetTarget(Target) {}
func (d *Discard) Clear(RGB) {}
func (d *Discard) FillRect(x, y, w, h int, c RGB) {}
func (d *Discard) StrokeRect(x, y, w, h int, c RGB) {}
func (d *Discard) DrawText(s string, x, y int, c RGB) {}
func (d *Discard) BlitCanvas(x, y, w, h int) {}

func (d *Discard) TextWidth(s string) int { return len(s) * d.CharWidth }

func (d *Discard) TextHeight(string) int { return d.LineHeight }

func (d *Discard) DrawImage(string, int, int, int, int, float64, bool, bool) error { return nil }

func (d *Discard) ImageSize(string) (int, int, error) { return d.ImageW, d.ImageH, nil }

var _ Surface = (*Discard)(nil)
