package ebitenio

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/nerdlayout/pkg/signal"
)

// 按住功能键时的重复节奏（以 tick 计）
const (
	RepeatDelay    = 10
	RepeatInterval = 2
)

// 功能键映射，可打印字符走 AppendInputChars
var keyCodes = map[ebiten.Key]signal.Code{
	ebiten.KeyArrowLeft:   signal.Left,
	ebiten.KeyArrowRight:  signal.Right,
	ebiten.KeyArrowUp:     signal.Up,
	ebiten.KeyArrowDown:   signal.Down,
	ebiten.KeyBackspace:   signal.Backspace,
	ebiten.KeyDelete:      signal.Delete,
	ebiten.KeyEnter:       signal.Enter,
	ebiten.KeyNumpadEnter: signal.Enter,
	ebiten.KeyTab:         signal.Tab,
}

// 按固定顺序轮询，保证同一 tick 内的信号顺序稳定
var keyOrder = []ebiten.Key{
	ebiten.KeyArrowLeft,
	ebiten.KeyArrowRight,
	ebiten.KeyArrowUp,
	ebiten.KeyArrowDown,
	ebiten.KeyBackspace,
	ebiten.KeyDelete,
	ebiten.KeyEnter,
	ebiten.KeyNumpadEnter,
	ebiten.KeyTab,
}

var gamepadCodes = map[ebiten.StandardGamepadButton]signal.Code{
	ebiten.StandardGamepadButtonLeftLeft:      signal.Left,
	ebiten.StandardGamepadButtonLeftRight:     signal.Right,
	ebiten.StandardGamepadButtonLeftTop:       signal.Up,
	ebiten.StandardGamepadButtonLeftBottom:    signal.Down,
	ebiten.StandardGamepadButtonCenterRight:   signal.Start,
	ebiten.StandardGamepadButtonCenterLeft:    signal.Select,
	ebiten.StandardGamepadButtonRightBottom:   signal.A,
	ebiten.StandardGamepadButtonRightRight:    signal.B,
	ebiten.StandardGamepadButtonRightLeft:     signal.X,
	ebiten.StandardGamepadButtonRightTop:      signal.Y,
	ebiten.StandardGamepadButtonFrontTopLeft:  signal.L,
	ebiten.StandardGamepadButtonFrontTopRight: signal.R,
}

// KeyCode ebiten 功能键对应的信号码，未映射的键返回 None
func KeyCode(k ebiten.Key) signal.Code {
	return keyCodes[k]
}

// CharCode 输入字符对应的信号码，非可打印 ASCII 返回 None
func CharCode(r rune) signal.Code {
	c := signal.Code(r)
	if !c.IsPrintable() {
		return signal.None
	}
	return c
}

// Repeats 按住 d 个 tick 的按键本 tick 是否产生信号
func Repeats(d int) bool {
	if d == 1 {
		return true
	}
	return d > RepeatDelay && (d-RepeatDelay)%RepeatInterval == 0
}

// Input 把 ebiten 输入状态转换为信号
type Input struct {
	queue *signal.Queue
	chars []rune
	ids   []ebiten.GamepadID

	// 复用的触摸 ID 缓冲
	touches []ebiten.TouchID
}

// NewInput 创建写入 q 的输入转换器
func NewInput(q *signal.Queue) *Input {
	return &Input{queue: q}
}

// Queue 返回输出队列
func (in *Input) Queue() *signal.Queue { return in.queue }

// Poll 读取本 tick 的输入并入队
//
// 顺序为鼠标、触摸、功能键、字符、手柄。
func (in *Input) Poll() {
	in.pollMouse()
	in.pollTouches()
	in.pollKeys()
	in.pollChars()
	in.pollGamepads()
}

func (in *Input) pollMouse() {
	x, y := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.queue.PushMouse(signal.ButtonLeft, x, y)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		in.queue.PushMouse(signal.ButtonRight, x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) ||
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
		in.queue.PushMouse(signal.ButtonUp, x, y)
	}
}

func (in *Input) pollTouches() {
	in.touches = inpututil.AppendJustPressedTouchIDs(in.touches[:0])
	for _, id := range in.touches {
		x, y := ebiten.TouchPosition(id)
		in.queue.PushMouse(signal.ButtonLeft, x, y)
	}
	in.touches = inpututil.AppendJustReleasedTouchIDs(in.touches[:0])
	for _, id := range in.touches {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		in.queue.PushMouse(signal.ButtonUp, x, y)
	}
}

func (in *Input) pollKeys() {
	for _, k := range keyOrder {
		if Repeats(inpututil.KeyPressDuration(k)) {
			in.queue.PushKey(keyCodes[k])
		}
	}
}

func (in *Input) pollChars() {
	in.chars = ebiten.AppendInputChars(in.chars[:0])
	for _, r := range in.chars {
		in.queue.PushKey(CharCode(r))
	}
}

func (in *Input) pollGamepads() {
	in.ids = ebiten.AppendGamepadIDs(in.ids[:0])
	for _, id := range in.ids {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for b := ebiten.StandardGamepadButton(0); b <= ebiten.StandardGamepadButtonMax; b++ {
			code, ok := gamepadCodes[b]
			if !ok {
				continue
			}
			if inpututil.IsStandardGamepadButtonJustPressed(id, b) {
				in.queue.PushKey(code)
			}
		}
	}
}
