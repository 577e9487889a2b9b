package page

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/decker502/nerdlayout/pkg/config"
	"github.com/decker502/nerdlayout/pkg/layout"
	"github.com/decker502/nerdlayout/pkg/signal"
	"github.com/decker502/nerdlayout/pkg/surface"
)

// drawOp 一次记录下来的绘制调用
type drawOp struct {
	kind   string
	target surface.Target
	text   string
	x, y   int
	w, h   int
	color  surface.RGB
}

// recorder 记录所有绘制调用，文本度量为每字符 6 像素、行高 8 像素
type recorder struct {
	target surface.Target
	ops    []drawOp
}

func (r *recorder) SetTarget(t surface.Target) { r.target = t }

func (r *recorder) Clear(c surface.RGB) {
	r.ops = append(r.ops, drawOp{kind: "clear", target: r.target, color: c})
}

func (r *recorder) FillRect(x, y, w, h int, c surface.RGB) {
	r.ops = append(r.ops, drawOp{kind: "fill", target: r.target, x: x, y: y, w: w, h: h, color: c})
}

func (r *recorder) StrokeRect(x, y, w, h int, c surface.RGB) {
	r.ops = append(r.ops, drawOp{kind: "stroke", target: r.target, x: x, y: y, w: w, h: h, color: c})
}

func (r *recorder) DrawText(s string, x, y int, c surface.RGB) {
	r.ops = append(r.ops, drawOp{kind: "text", target: r.target, text: s, x: x, y: y, color: c})
}

func (r *recorder) TextWidth(s string) int { return len(s) * 6 }

func (r *recorder) TextHeight(string) int { return 8 }

func (r *recorder) DrawImage(name string, x, y, w, h int, _ float64, _, _ bool) error {
	r.ops = append(r.ops, drawOp{kind: "image", target: r.target, text: name, x: x, y: y, w: w, h: h})
	return nil
}

func (r *recorder) ImageSize(string) (int, int, error) { return 16, 16, nil }

func (r *recorder) BlitCanvas(x, y, w, h int) {
	r.ops = append(r.ops, drawOp{kind: "blit", target: r.target, x: x, y: y, w: w, h: h})
}

func (r *recorder) reset() { r.ops = nil }

func (r *recorder) find(kind string) []drawOp {
	var out []drawOp
	for _, op := range r.ops {
		if op.kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// recordingHooks 记录回调调用
type recordingHooks struct {
	NopHooks
	inits          int
	componentInits []string
	buttons        []string
	lists          []string
	toolbars       []string
}

func (h *recordingHooks) OnInit(*Page) error {
	h.inits++
	return nil
}

func (h *recordingHooks) OnComponentInit(_ *Page, e *layout.Entity) error {
	h.componentInits = append(h.componentInits, e.ID)
	return nil
}

func (h *recordingHooks) OnButtonClick(_ *Page, e *layout.Entity) error {
	h.buttons = append(h.buttons, e.ID)
	return nil
}

func (h *recordingHooks) OnListClick(_ *Page, e *layout.Entity, text string) error {
	h.lists = append(h.lists, e.ID+":"+text)
	return nil
}

func (h *recordingHooks) OnToolbarClick(_ *Page, e *layout.Entity, label string) error {
	h.toolbars = append(h.toolbars, e.ID+":"+label)
	return nil
}

// 20×10 个 10×10 像素的单元
var testConfig = config.LayoutConfig{Width: 200, Height: 100, CellW: 10, CellH: 10, Red: 10, Green: 20, Blue: 30}

var demoLayout = strings.Join([]string{
	"[name]    (go)",
	"{side}",
	"+lst-------+",
	"|          |",
	"|          |",
	"+----------+",
	"{tbl      }",
	"",
	"",
	"",
	"go->label=Go,red=0,green=0,blue=255",
	"lst->type=list,items=alpha;beta;gamma",
	"tbl->type=grid-view,rows=2,columns=3",
}, "\n")

type fixture struct {
	page  *Page
	queue *signal.Queue
	surf  *recorder
	hooks *recordingHooks
}

func newFixture(t *testing.T, src string) *fixture {
	t.Helper()
	f := &fixture{queue: signal.NewQueue(), surf: &recorder{}, hooks: &recordingHooks{}}
	cfg := testConfig
	f.page = New(&cfg, f.surf, f.queue)
	f.page.SetHooks(f.hooks)
	if err := f.page.Load([]byte(src)); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return f
}

func (f *fixture) entity(t *testing.T, id string) *layout.Entity {
	t.Helper()
	e, err := f.page.Entity(id)
	if err != nil {
		t.Fatalf("Entity(%q) error: %v", id, err)
	}
	return e
}

func (f *fixture) frame(t *testing.T) {
	t.Helper()
	f.surf.reset()
	if err := f.page.Render(); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
}

func (f *fixture) click(t *testing.T, x, y int) {
	t.Helper()
	f.queue.PushMouse(signal.ButtonLeft, x, y)
	f.frame(t)
	f.queue.PushMouse(signal.ButtonUp, x, y)
	f.frame(t)
}

func (f *fixture) typeKeys(t *testing.T, keys ...signal.Code) {
	t.Helper()
	for _, k := range keys {
		f.queue.PushKey(k)
		f.frame(t)
	}
}

// TestLoadInitializesWidgets 组件初始化建立默认状态
func TestLoadInitializesWidgets(t *testing.T) {
	f := newFixture(t, demoLayout)

	name := f.entity(t, "name")
	if name.Kind != layout.KindField || name.Width != 6 || name.Height != 1 {
		t.Errorf("name = %+v, want 6x1 field", name)
	}
	if v, ok := name.Attr(AttrText); !ok || v.IsInt() || v.Str() != "" {
		t.Errorf("name.text = %v, want empty string", v)
	}

	lst := f.entity(t, "lst")
	if got := lst.Text(AttrText); got != "alpha,beta,gamma" {
		t.Errorf("lst.text = %q, want \"alpha,beta,gamma\"", got)
	}
	if lst.Int(AttrSelItem) != NoValue {
		t.Errorf("lst.sel-item = %d, want %d", lst.Int(AttrSelItem), NoValue)
	}

	tbl := f.entity(t, "tbl")
	if got := tbl.Text(AttrText); got != "free,free,free;free,free,free" {
		t.Errorf("tbl.text = %q", got)
	}
	if tbl.Int(AttrGridX) != NoValue || tbl.Int(AttrScrollY) != 0 {
		t.Errorf("tbl grid-x = %d scroll-y = %d", tbl.Int(AttrGridX), tbl.Int(AttrScrollY))
	}

	want := []string{"name", "go", "side", "lst", "tbl"}
	if strings.Join(f.hooks.componentInits, ",") != strings.Join(want, ",") {
		t.Errorf("OnComponentInit order = %v, want %v", f.hooks.componentInits, want)
	}
}

// TestLoadFailureKeepsPage 初始化失败时页面不变
func TestLoadFailureKeepsPage(t *testing.T) {
	f := newFixture(t, demoLayout)

	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{"结构错误", "[broken\n\n\n\n\n\n\n\n\n\n", layout.ErrTruncated},
		{"grid-view 缺少 rows", "{g}\n\n\n\n\n\n\n\n\n\ng->type=grid-view,columns=2", ErrMissingAttribute},
		{"toolbar 列数为零", "{b}\n\n\n\n\n\n\n\n\n\nb->type=toolbar,columns=0", ErrInvalidAttribute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.page.Load([]byte(tt.src))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Load() error = %v, want %v", err, tt.wantErr)
			}
			if f.page.Components().Len() != 5 {
				t.Errorf("Components().Len() = %d, want previous 5", f.page.Components().Len())
			}
		})
	}
}

// TestRenderFrame 每帧清屏并为每个实体贴一次画布
func TestRenderFrame(t *testing.T) {
	f := newFixture(t, demoLayout)
	f.frame(t)

	clears := f.surf.find("clear")
	if len(clears) != 6 {
		t.Fatalf("clear count = %d, want 1 screen + 5 canvases", len(clears))
	}
	if clears[0].target != surface.Screen || clears[0].color != (surface.RGB{R: 10, G: 20, B: 30}) {
		t.Errorf("first clear = %+v, want screen background", clears[0])
	}
	for _, c := range clears[1:] {
		if c.target != surface.Canvas || c.color != surface.White {
			t.Errorf("canvas clear = %+v, want white canvas", c)
		}
	}

	blits := f.surf.find("blit")
	want := []drawOp{
		{kind: "blit", target: surface.Canvas, x: 0, y: 0, w: 60, h: 10},
		{kind: "blit", target: surface.Canvas, x: 100, y: 0, w: 40, h: 10},
		{kind: "blit", target: surface.Canvas, x: 0, y: 10, w: 60, h: 10},
		{kind: "blit", target: surface.Canvas, x: 0, y: 20, w: 120, h: 40},
		{kind: "blit", target: surface.Canvas, x: 0, y: 60, w: 110, h: 10},
	}
	if len(blits) != len(want) {
		t.Fatalf("blit count = %d, want %d", len(blits), len(want))
	}
	for i := range want {
		if blits[i] != want[i] {
			t.Errorf("blit %d = %+v, want %+v", i, blits[i], want[i])
		}
	}
}

// TestUniqueClickFocus 一次点击只让落点所在的实体获得焦点
func TestUniqueClickFocus(t *testing.T) {
	f := newFixture(t, demoLayout)

	f.queue.PushMouse(signal.ButtonLeft, 105, 5)
	f.frame(t)

	if f.page.Selected() != "go" || f.page.Clicked() != "go" {
		t.Errorf("Selected() = %q Clicked() = %q, want go", f.page.Selected(), f.page.Clicked())
	}
	if x, y := f.page.Mouse(); x != 5 || y != 5 {
		t.Errorf("Mouse() = (%d,%d), want local (5,5)", x, y)
	}
	if len(f.hooks.buttons) != 1 || f.hooks.buttons[0] != "go" {
		t.Errorf("OnButtonClick calls = %v, want [go]", f.hooks.buttons)
	}
	if !f.page.Latched() {
		t.Error("page should be latched after a press")
	}

	// 下一帧没有点击
	f.frame(t)
	if f.page.Clicked() != "" {
		t.Errorf("Clicked() = %q on frame without input, want empty", f.page.Clicked())
	}
	if f.page.Selected() != "go" {
		t.Errorf("focus should persist, got %q", f.page.Selected())
	}
}

// TestClickLatch 按键抬起之前的第二次按下被忽略
func TestClickLatch(t *testing.T) {
	f := newFixture(t, demoLayout)

	f.queue.PushMouse(signal.ButtonLeft, 5, 5)
	f.frame(t)
	f.queue.PushMouse(signal.ButtonRight, 105, 5)
	f.frame(t)
	if f.page.Selected() != "name" {
		t.Fatalf("latched press moved focus to %q", f.page.Selected())
	}

	f.queue.PushMouse(signal.ButtonUp, 105, 5)
	f.frame(t)
	f.queue.PushMouse(signal.ButtonRight, 105, 5)
	f.frame(t)
	if f.page.Selected() != "go" {
		t.Errorf("Selected() = %q after release, want go", f.page.Selected())
	}
}

// TestClickOutsideKeepsFocus 点击空白处不改变焦点
func TestClickOutsideKeepsFocus(t *testing.T) {
	f := newFixture(t, demoLayout)
	f.click(t, 5, 5)
	f.click(t, 190, 95)
	if f.page.Selected() != "name" {
		t.Errorf("Selected() = %q, want name", f.page.Selected())
	}
}

// TestFieldEditing 测试文本框输入
func TestFieldEditing(t *testing.T) {
	f := newFixture(t, demoLayout)
	name := f.entity(t, "name")

	// 没有焦点时不接受输入
	f.typeKeys(t, 'x')
	if name.Text(AttrText) != "" {
		t.Fatalf("unfocused field accepted input: %q", name.Text(AttrText))
	}

	f.click(t, 5, 5)
	f.typeKeys(t, 'a', 'b', 'c', signal.Backspace, 'd')
	if got := name.Text(AttrText); got != "abd" {
		t.Errorf("text = %q, want \"abd\"", got)
	}

	// 60 像素宽的框最多容纳 9 个字符
	f.typeKeys(t, 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l')
	if got := name.Text(AttrText); got != "abdefghij" {
		t.Errorf("text = %q, want it capped at 9 characters", got)
	}

	f.typeKeys(t, signal.Delete)
	if got := name.Text(AttrText); got != "" {
		t.Errorf("text after delete = %q, want empty", got)
	}

	fills := f.surf.find("fill")
	if len(fills) == 0 || fills[0].color != surface.Green {
		t.Errorf("focused field border = %+v, want green", fills)
	}
}

// TestPeekKeyWithMouse 测试两种按键采样方式
func TestPeekKeyWithMouse(t *testing.T) {
	tests := []struct {
		name     string
		peek     bool
		wantKey  signal.Code
		wantText string
	}{
		{"严格FIFO", false, signal.None, "q"},
		{"查看下一个键", true, 'q', "qq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, demoLayout)
			f.page.SetPeekKeyWithMouse(tt.peek)
			f.queue.PushMouse(signal.ButtonLeft, 5, 5)
			f.queue.PushKey('q')

			f.frame(t)
			if f.page.Key() != tt.wantKey {
				t.Errorf("Key() on mouse frame = %v, want %v", f.page.Key(), tt.wantKey)
			}
			if f.queue.Len() != 1 {
				t.Errorf("queue Len() = %d, peek must not consume", f.queue.Len())
			}

			f.frame(t)
			if got := f.entity(t, "name").Text(AttrText); got != tt.wantText {
				t.Errorf("text = %q, want %q", got, tt.wantText)
			}
		})
	}
}

// TestMissingAttributeAbortsFrame 缺少必需属性时中止帧
func TestMissingAttributeAbortsFrame(t *testing.T) {
	src := "(ok)\n\n\n\n\n\n\n\n\n\nok->label=Hi,red=1,green=2"
	f := newFixture(t, src)

	err := f.page.Render()
	if !errors.Is(err, ErrMissingAttribute) {
		t.Fatalf("Render() error = %v, want ErrMissingAttribute", err)
	}
	if !strings.Contains(err.Error(), "blue") {
		t.Errorf("error %q should name the missing attribute", err)
	}
}

// TestLabelRender 标签使用属性颜色绘制在原点
func TestLabelRender(t *testing.T) {
	src := "{title}\n\n\n\n\n\n\n\n\n\ntitle->type=label,label=Hello,red=255,green=0,blue=0"
	f := newFixture(t, src)
	f.frame(t)

	texts := f.surf.find("text")
	if len(texts) != 1 {
		t.Fatalf("text ops = %d, want 1", len(texts))
	}
	want := drawOp{kind: "text", target: surface.Canvas, text: "Hello", color: surface.RGB{R: 255, G: 0, B: 0}}
	if texts[0] != want {
		t.Errorf("label op = %+v, want %+v", texts[0], want)
	}
}

// TestListClick 点击条目更新 sel-item 并调用回调
func TestListClick(t *testing.T) {
	f := newFixture(t, demoLayout)
	lst := f.entity(t, "lst")

	// 条目高度 10 像素，列表从 y=20 开始
	f.click(t, 5, 35)
	if lst.Int(AttrSelItem) != 1 {
		t.Errorf("sel-item = %d, want 1", lst.Int(AttrSelItem))
	}
	if len(f.hooks.lists) != 1 || f.hooks.lists[0] != "lst:beta" {
		t.Errorf("OnListClick calls = %v, want [lst:beta]", f.hooks.lists)
	}

	f.frame(t)
	for _, op := range f.surf.find("text") {
		if op.text == "beta" && op.color != surface.Green {
			t.Errorf("selected item color = %+v, want green", op.color)
		}
	}
}

// TestScroll 方向键按单元尺寸滚动拥有焦点的组件
func TestScroll(t *testing.T) {
	f := newFixture(t, demoLayout)
	lst := f.entity(t, "lst")

	f.click(t, 5, 25)
	f.typeKeys(t, signal.Down, signal.Down, signal.Right, signal.Up)
	if lst.Int(AttrScrollX) != 10 || lst.Int(AttrScrollY) != 10 {
		t.Errorf("scroll = (%d,%d), want (10,10)", lst.Int(AttrScrollX), lst.Int(AttrScrollY))
	}

	tbl := f.entity(t, "tbl")
	if tbl.Int(AttrScrollY) != 0 {
		t.Errorf("unfocused grid-view scrolled to %d", tbl.Int(AttrScrollY))
	}
}

// TestGridViewEditing 测试表格单元的选中与编辑
func TestGridViewEditing(t *testing.T) {
	f := newFixture(t, demoLayout)
	tbl := f.entity(t, "tbl")

	// 单元宽 110/3=36，点击第 0 行第 1 列
	f.click(t, 40, 65)
	if x, y, ok := SelectedGridCell(tbl); !ok || x != 1 || y != 0 {
		t.Fatalf("SelectedGridCell() = (%d,%d,%v), want (1,0,true)", x, y, ok)
	}

	f.typeKeys(t, 'h', ',', ';', 'i')
	if got, _ := GetGridCell(tbl, 1, 0); got != "hi" {
		t.Errorf("cell = %q, want \"hi\" with delimiters ignored", got)
	}
	if got := tbl.Text(AttrText); got != "free,hi,free;free,free,free" {
		t.Errorf("text = %q", got)
	}

	f.typeKeys(t, signal.Backspace, signal.Backspace)
	if got := tbl.Text(AttrText); got != "free,free,free;free,free,free" {
		t.Errorf("emptied cell should become free, text = %q", got)
	}

	// 不能逐字输入出空单元格标记
	f.typeKeys(t, 'f', 'r', 'e', 'e')
	if got, _ := GetGridCell(tbl, 1, 0); got != "fre" {
		t.Errorf("cell = %q, want \"fre\"", got)
	}

	f.typeKeys(t, signal.Delete)
	if got, _ := GetGridCell(tbl, 1, 0); got != "" {
		t.Errorf("cell after delete = %q, want empty", got)
	}
}

// TestToolbarClick 测试工具栏的点击与布局
func TestToolbarClick(t *testing.T) {
	src := strings.Join([]string{
		"+bar-------+",
		"|          |",
		"|          |",
		"+----------+",
		"", "", "", "", "", "",
		"bar->type=toolbar,columns=2,items=Open:open.png;Save:save.png;Quit:quit.png",
	}, "\n")
	f := newFixture(t, src)
	bar := f.entity(t, "bar")

	if ToolbarItemCount(bar) != 3 {
		t.Fatalf("ToolbarItemCount() = %d, want 3", ToolbarItemCount(bar))
	}

	// 单元宽 120/2=60，点击第 0 行第 1 列
	f.click(t, 70, 5)
	if bar.Int(AttrItemX) != 1 || bar.Int(AttrItemY) != 0 {
		t.Errorf("item = (%d,%d), want (1,0)", bar.Int(AttrItemX), bar.Int(AttrItemY))
	}
	if len(f.hooks.toolbars) != 1 || f.hooks.toolbars[0] != "bar:Save" {
		t.Errorf("OnToolbarClick calls = %v, want [bar:Save]", f.hooks.toolbars)
	}
	if it, ok := SelectedToolbarItem(bar); !ok || it.Icon != "save.png" {
		t.Errorf("SelectedToolbarItem() = %+v, %v", it, ok)
	}

	images := f.surf.find("image")
	if len(images) != 3 {
		t.Fatalf("image ops = %d, want 3", len(images))
	}
	// 第三个条目换行到第二行，图标在 60×60 单元内居中
	if images[2].x != 22 || images[2].y != 82 {
		t.Errorf("third icon at (%d,%d), want (22,82)", images[2].x, images[2].y)
	}
}

// TestClearFocus 清除焦点后需要先抬起按键
func TestClearFocus(t *testing.T) {
	f := newFixture(t, demoLayout)
	f.click(t, 5, 5)
	f.page.ClearFocus()
	if f.page.Selected() != "" {
		t.Fatalf("Selected() = %q after ClearFocus", f.page.Selected())
	}

	f.queue.PushMouse(signal.ButtonLeft, 105, 5)
	f.frame(t)
	if f.page.Selected() != "" {
		t.Errorf("press without release after ClearFocus focused %q", f.page.Selected())
	}
}

// TestSnapshotRestore 快照只恢复仍然存在的实体
func TestSnapshotRestore(t *testing.T) {
	f := newFixture(t, demoLayout)
	f.click(t, 5, 5)
	f.typeKeys(t, 'o', 'k')
	if err := SetGridCell(f.entity(t, "tbl"), 2, 1, "x"); err != nil {
		t.Fatal(err)
	}

	snap := f.page.Snapshot()
	snap["gone"] = map[string]layout.Value{"text": layout.String("?")}

	g := newFixture(t, demoLayout)
	if n := g.page.Restore(snap); n != 5 {
		t.Errorf("Restore() = %d, want 5", n)
	}
	if got := g.entity(t, "name").Text(AttrText); got != "ok" {
		t.Errorf("restored name.text = %q, want \"ok\"", got)
	}
	if got, _ := GetGridCell(g.entity(t, "tbl"), 2, 1); got != "x" {
		t.Errorf("restored cell = %q, want \"x\"", got)
	}
}

// TestBackspaceMultiByte 退格按字符删除恢复出的多字节文本
func TestBackspaceMultiByte(t *testing.T) {
	f := newFixture(t, demoLayout)
	f.page.Restore(Snapshot{"name": {"text": layout.String("日本")}})
	if err := SetGridCell(f.entity(t, "tbl"), 1, 0, "aé"); err != nil {
		t.Fatal(err)
	}

	f.click(t, 5, 5)
	f.typeKeys(t, signal.Backspace)
	if got := f.entity(t, "name").Text(AttrText); got != "日" || !utf8.ValidString(got) {
		t.Errorf("field text = %q, want \"日\"", got)
	}

	f.click(t, 40, 65)
	f.typeKeys(t, signal.Backspace)
	if got, _ := GetGridCell(f.entity(t, "tbl"), 1, 0); got != "a" {
		t.Errorf("cell = %q, want \"a\"", got)
	}
}

// TestCustomWidget 应用可以为新类型注册组件
func TestCustomWidget(t *testing.T) {
	f := &fixture{queue: signal.NewQueue(), surf: &recorder{}, hooks: &recordingHooks{}}
	cfg := testConfig
	f.page = New(&cfg, f.surf, f.queue)

	var rendered []string
	f.page.RegisterWidget("meter", WidgetFuncs{
		InitFunc: func(_ *Page, e *layout.Entity) error {
			e.SetInt("level", 3)
			return nil
		},
		RenderFunc: func(p *Page, e *layout.Entity) error {
			rendered = append(rendered, e.ID)
			return nil
		},
	})
	if err := f.page.Load([]byte("{m}\n\n\n\n\n\n\n\n\n\nm->type=meter")); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	f.frame(t)

	if got := f.entity(t, "m").Int("level"); got != 3 {
		t.Errorf("level = %d, want 3", got)
	}
	if len(rendered) != 1 {
		t.Errorf("custom render calls = %v", rendered)
	}
}
