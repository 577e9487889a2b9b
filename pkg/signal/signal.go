// Package signal 定义页面运行时消费的输入信号
//
// 信号由输入后端（键盘、鼠标事件）产生，放入单生产者/单消费者的
// FIFO 队列，每帧由页面弹出一个信号进行分发。
package signal

import "fmt"

// Code 是信号码
//
// 可打印字符直接使用其 ASCII 码（' ' 到 '~'），
// 功能键和鼠标使用 1..31 范围内的常量。
type Code int

const (
	None Code = iota
	Left
	Right
	Up
	Down
	Backspace
	Delete
	Enter
	Tab
	Mouse
	Start
	Select
	A
	B
	X
	Y
	L
	R
)

var codeNames = map[Code]string{
	None:      "none",
	Left:      "left",
	Right:     "right",
	Up:        "up",
	Down:      "down",
	Backspace: "backspace",
	Delete:    "delete",
	Enter:     "enter",
	Tab:       "tab",
	Mouse:     "mouse",
	Start:     "start",
	Select:    "select",
	A:         "a",
	B:         "b",
	X:         "x",
	Y:         "y",
	L:         "l",
	R:         "r",
}

// FirstPrintable 与 LastPrintable 界定可打印 ASCII 范围
const (
	FirstPrintable Code = ' '
	LastPrintable  Code = '~'
)

// IsPrintable 是否为可打印 ASCII 字符
func (c Code) IsPrintable() bool {
	return c >= FirstPrintable && c <= LastPrintable
}

// Rune 返回可打印信号对应的字符
func (c Code) Rune() rune { return rune(c) }

func (c Code) String() string {
	if c.IsPrintable() {
		return fmt.Sprintf("%q", rune(c))
	}
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Button 鼠标按键状态
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonUp // 按键抬起
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonUp:
		return "up"
	default:
		return "none"
	}
}

// IsPress 是否为左键或右键按下
func (b Button) IsPress() bool {
	return b == ButtonLeft || b == ButtonRight
}

// Signal 是一个缓冲的输入事件
// 鼠标信号的 Code 为 Mouse，X/Y 为屏幕像素坐标
type Signal struct {
	Code   Code
	Button Button
	X, Y   int
}

// Key 构造键盘信号
func Key(c Code) Signal { return Signal{Code: c} }

// MouseAt 构造鼠标信号
func MouseAt(b Button, x, y int) Signal {
	return Signal{Code: Mouse, Button: b, X: x, Y: y}
}

// IsMouse 是否为鼠标信号
func (s Signal) IsMouse() bool { return s.Code == Mouse }

// IsNone 是否为空信号（队列为空时返回）
func (s Signal) IsNone() bool { return s.Code == None }

func (s Signal) String() string {
	if s.IsMouse() {
		return fmt.Sprintf("mouse %s (%d,%d)", s.Button, s.X, s.Y)
	}
	return s.Code.String()
}

// Source 是页面读取信号的能力接口
type Source interface {
	// Pop 弹出最早的信号，队列为空时返回 None 信号
	Pop() Signal
	// PeekKey 不移除地查看最早的键盘信号，没有时返回 None 信号
	PeekKey() Signal
}
