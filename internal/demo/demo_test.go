package demo

import (
	"context"
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nerdlayout/pkg/config"
	"github.com/decker502/nerdlayout/pkg/page"
	"github.com/decker502/nerdlayout/pkg/signal"
	"github.com/decker502/nerdlayout/pkg/surface"
)

type fakeHost struct {
	saves int
	fps   int
}

func (h *fakeHost) Save() error { h.saves++; return nil }
func (h *fakeHost) SetFPS(fps int) { h.fps = fps }

type harness struct {
	t       *testing.T
	manager *page.Manager
	queue   *signal.Queue
	ctrl    *Controller
	host    *fakeHost
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	appCfg, err := config.LoadAppConfig(dataFS, AppConfigPath)
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}

	h := &harness{t: t, queue: signal.NewQueue(), ctrl: NewController(), host: &fakeHost{}}
	h.manager = page.NewManager(Pages())
	surf := surface.NewDiscard()

	var entries []page.Entry
	for _, entry := range appCfg.Pages {
		lc, err := config.LoadLayoutConfig(Pages(), entry.ConfigFile())
		if err != nil {
			t.Fatalf("LoadLayoutConfig(%s): %v", entry.ConfigFile(), err)
		}
		p := page.New(lc, surf, h.queue)
		p.SetHooks(h.ctrl.Hooks(h.manager, entry.Name))
		entries = append(entries, page.Entry{Name: entry.Name, Page: p})
	}
	if err := h.manager.LoadPages(context.Background(), entries...); err != nil {
		t.Fatalf("LoadPages: %v", err)
	}
	h.ctrl.Attach(h.host)
	return h
}

// click 按下并抬起，各渲染一帧
func (h *harness) click(x, y int) error {
	h.queue.PushMouse(signal.ButtonLeft, x, y)
	if err := h.manager.Render(); err != nil {
		return err
	}
	h.queue.PushMouse(signal.ButtonUp, x, y)
	return h.manager.Render()
}

func (h *harness) keys(codes ...signal.Code) {
	h.t.Helper()
	for _, c := range codes {
		h.queue.PushKey(c)
		if err := h.manager.Render(); err != nil {
			h.t.Fatalf("Render: %v", err)
		}
	}
}

func (h *harness) label(ref string) string {
	h.t.Helper()
	e, err := h.manager.Component(ref)
	if err != nil {
		h.t.Fatalf("Component(%s): %v", ref, err)
	}
	return e.Text(page.AttrLabel)
}

func typed(s string) []signal.Code {
	out := make([]signal.Code, 0, len(s))
	for _, r := range s {
		out = append(out, signal.Code(r))
	}
	return out
}

func TestDemoPagesLoad(t *testing.T) {
	h := newHarness(t)
	if got := h.manager.Names(); len(got) != 2 || got[0] != MainPage || got[1] != SettingsPage {
		t.Fatalf("Names() = %v", got)
	}
	if got := h.label("main->status"); got != "ready" {
		t.Errorf("status = %q, want ready", got)
	}
	settings, err := h.manager.Page(SettingsPage)
	if err != nil {
		t.Fatal(err)
	}
	if cols, rows := settings.GridSize(); cols != 40 || rows != 12 {
		t.Errorf("settings grid = %dx%d, want 40x12", cols, rows)
	}
}

func TestDemoGreet(t *testing.T) {
	h := newHarness(t)
	if err := h.click(5, 45); err != nil {
		t.Fatal(err)
	}
	h.keys(typed("Bob")...)
	if err := h.click(235, 45); err != nil {
		t.Fatal(err)
	}
	if got := h.label("main->hello"); got != "Hello, Bob!" {
		t.Errorf("hello = %q, want \"Hello, Bob!\"", got)
	}

	// clear 清空输入框并给出状态
	if err := h.click(355, 45); err != nil {
		t.Fatal(err)
	}
	name, _ := h.manager.Component("main->name")
	if got := name.Text(page.AttrText); got != "" {
		t.Errorf("name = %q after clear", got)
	}
	if got := h.label("main->status"); got != "cleared" {
		t.Errorf("status = %q, want cleared", got)
	}
}

func TestDemoSettingsApply(t *testing.T) {
	h := newHarness(t)
	if err := h.click(5, 365); err != nil {
		t.Fatal(err)
	}
	if h.manager.CurrentName() != SettingsPage {
		t.Fatalf("current = %q, want settings", h.manager.CurrentName())
	}

	fps, _ := h.manager.Component("settings->fps")
	if got := fps.Text(page.AttrText); got != "20" {
		t.Errorf("fps field = %q, want 20", got)
	}
	if err := h.click(125, 45); err != nil {
		t.Fatal(err)
	}
	h.keys(signal.Backspace, signal.Backspace, '3', '0')
	if err := h.click(235, 45); err != nil {
		t.Fatal(err)
	}
	if h.host.fps != 30 || h.ctrl.FPS() != 30 {
		t.Errorf("fps = %d (controller %d), want 30", h.host.fps, h.ctrl.FPS())
	}
	if got := h.label("settings->note"); got != "fps set to 30" {
		t.Errorf("note = %q", got)
	}

	if err := h.click(5, 105); err != nil {
		t.Fatal(err)
	}
	if h.manager.CurrentName() != MainPage {
		t.Errorf("current = %q after back, want main", h.manager.CurrentName())
	}
}

func TestDemoToolbar(t *testing.T) {
	h := newHarness(t)

	// 第二个条目 save
	if err := h.click(80, 110); err != nil {
		t.Fatal(err)
	}
	if h.host.saves != 1 || h.label("main->status") != "saved" {
		t.Errorf("saves = %d, status = %q", h.host.saves, h.label("main->status"))
	}

	// 未选中列表时 open
	if err := h.click(20, 110); err != nil {
		t.Fatal(err)
	}
	if got := h.label("main->status"); got != "nothing selected" {
		t.Errorf("status = %q, want nothing selected", got)
	}

	err := h.click(190, 110)
	if !errors.Is(err, ebiten.Termination) {
		t.Errorf("quit error = %v, want ebiten.Termination", err)
	}
}
