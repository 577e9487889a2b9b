// Package surface 定义页面渲染使用的绘图能力接口
//
// 页面运行时只通过 Surface 绘制，不直接依赖任何图形库。
// ebiten 实现位于 pkg/ebitenio。
package surface

import "image/color"

// Target 绘制目标
type Target int

const (
	// Screen 主屏幕缓冲
	Screen Target = iota
	// Canvas 单个实体使用的离屏画布，坐标系原点为实体左上角
	Canvas
)

// RGB 不透明颜色
type RGB struct {
	R, G, B uint8
}

// 常用颜色
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
	Green = RGB{0, 255, 0}
)

// NewRGB 由 0..255 的整数分量构造颜色，超出范围的分量被截断
func NewRGB(r, g, b int) RGB {
	return RGB{clamp(r), clamp(g), clamp(b)}
}

// RGBA 转换为 image/color 颜色
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Surface 渲染能力接口
//
// 所有坐标均为当前目标中的像素坐标。
type Surface interface {
	// SetTarget 选择后续绘制的目标
	SetTarget(t Target)
	// Clear 用颜色填满当前目标
	Clear(c RGB)
	// FillRect 绘制实心矩形
	FillRect(x, y, w, h int, c RGB)
	// StrokeRect 绘制一像素宽的矩形边框
	StrokeRect(x, y, w, h int, c RGB)
	// DrawText 以 (x, y) 为左上角绘制文本
	DrawText(s string, x, y int, c RGB)
	// TextWidth 文本的像素宽度
	TextWidth(s string) int
	// TextHeight 文本的像素高度
	TextHeight(s string) int
	// DrawImage 绘制已注册的图片，缩放到 w×h，angle 为角度
	DrawImage(name string, x, y, w, h int, angle float64, flipX, flipY bool) error
	// ImageSize 已注册图片的原始尺寸
	ImageSize(name string) (w, h int, err error)
	// BlitCanvas 将画布左上角 w×h 区域复制到屏幕的 (x, y)
	BlitCanvas(x, y, w, h int)
}
