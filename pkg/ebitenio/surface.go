// Package ebitenio 提供基于 Ebitengine 的绘图和输入后端
//
// Surface 实现 surface.Surface，屏幕缓冲和实体画布都是离屏图像，
// 由 app.App 在 Draw 中复制到窗口。Input 把键盘、鼠标、触摸和手柄
// 事件转换为 signal.Queue 中的信号。
package ebitenio

import (
	"fmt"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/nerdlayout/pkg/surface"
)

// Surface ebiten 绘图实现
type Surface struct {
	screen *ebiten.Image
	canvas *ebiten.Image
	target surface.Target
	face   text.Face
	images map[string]*ebiten.Image
}

// NewSurface 创建 width×height 的屏幕缓冲和同尺寸的画布
//
// face 为 nil 时使用 DefaultFace。
func NewSurface(width, height int, face text.Face) *Surface {
	if face == nil {
		face = DefaultFace()
	}
	return &Surface{
		screen: ebiten.NewImage(width, height),
		canvas: ebiten.NewImage(width, height),
		face:   face,
		images: make(map[string]*ebiten.Image),
	}
}

// Screen 返回屏幕缓冲
func (s *Surface) Screen() *ebiten.Image { return s.screen }

// Face 返回当前字体
func (s *Surface) Face() text.Face { return s.face }

// RegisterImage 以名称注册图片，同名图片被替换
func (s *Surface) RegisterImage(name string, img *ebiten.Image) {
	s.images[name] = img
}

// ImageCount 已注册的图片数量
func (s *Surface) ImageCount() int { return len(s.images) }

func (s *Surface) dst() *ebiten.Image {
	if s.target == surface.Canvas {
		return s.canvas
	}
	return s.screen
}

func (s *Surface) SetTarget(t surface.Target) { s.target = t }

func (s *Surface) Clear(c surface.RGB) {
	s.dst().Fill(c.RGBA())
}

func (s *Surface) FillRect(x, y, w, h int, c surface.RGB) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(s.dst(), float32(x), float32(y), float32(w), float32(h), c.RGBA(), false)
}

// StrokeRect 边框画在矩形内侧
func (s *Surface) StrokeRect(x, y, w, h int, c surface.RGB) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.StrokeRect(s.dst(), float32(x)+0.5, float32(y)+0.5, float32(w)-1, float32(h)-1, 1, c.RGBA(), false)
}

func (s *Surface) DrawText(str string, x, y int, c surface.RGB) {
	if str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c.RGBA())
	text.Draw(s.dst(), str, s.face, op)
}

func (s *Surface) TextWidth(str string) int {
	return int(math.Ceil(text.Advance(str, s.face)))
}

func (s *Surface) TextHeight(string) int {
	m := s.face.Metrics()
	return int(math.Ceil(m.HAscent + m.HDescent))
}

// DrawImage 以目标矩形中心为轴旋转，angle 单位为角度
func (s *Surface) DrawImage(name string, x, y, w, h int, angle float64, flipX, flipY bool) error {
	img, ok := s.images[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownImage, name)
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 || w <= 0 || h <= 0 {
		return nil
	}

	sx, sy := float64(w)/iw, float64(h)/ih
	if flipX {
		sx = -sx
	}
	if flipY {
		sy = -sy
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-iw/2, -ih/2)
	op.GeoM.Scale(sx, sy)
	op.GeoM.Rotate(angle * math.Pi / 180)
	op.GeoM.Translate(float64(x)+float64(w)/2, float64(y)+float64(h)/2)
	op.Filter = ebiten.FilterLinear
	s.dst().DrawImage(img, op)
	return nil
}

func (s *Surface) ImageSize(name string) (int, int, error) {
	img, ok := s.images[name]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnknownImage, name)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

func (s *Surface) BlitCanvas(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	sub := s.canvas.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	s.screen.DrawImage(sub, op)
}

var _ surface.Surface = (*Surface)(nil)
