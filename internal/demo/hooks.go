package demo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nerdlayout/pkg/config"
	"github.com/decker502/nerdlayout/pkg/layout"
	"github.com/decker502/nerdlayout/pkg/page"
)

// 页面名称
const (
	MainPage     = "main"
	SettingsPage = "settings"
)

// Host 回调需要的应用能力
type Host interface {
	Save() error
	SetFPS(fps int)
}

// Controller 演示页面的回调实现
//
// 页面加载阶段只使用管理器，Attach 之后才能保存和修改帧率。
type Controller struct {
	manager *page.Manager
	host    Host
	fps     int

	// 主页面加载完成时的快照，undo 恢复到它
	initial page.Snapshot
}

// NewController 创建控制器
func NewController() *Controller {
	return &Controller{fps: config.DefaultFPS}
}

// Attach 绑定应用
func (c *Controller) Attach(h Host) { c.host = h }

// FPS 当前帧率
func (c *Controller) FPS() int { return c.fps }

// SetFPS 设置设置页显示的初始帧率，需在页面加载前调用
func (c *Controller) SetFPS(fps int) {
	if fps > 0 {
		c.fps = fps
	}
}

// Hooks 实现 app.HooksFactory
func (c *Controller) Hooks(m *page.Manager, name string) page.Hooks {
	c.manager = m
	switch name {
	case MainPage:
		return &mainHooks{c: c}
	case SettingsPage:
		return &settingsHooks{c: c}
	}
	return page.NopHooks{}
}

func setLabel(p *page.Page, id, text string) error {
	e, err := p.Entity(id)
	if err != nil {
		return err
	}
	e.SetString(page.AttrLabel, text)
	return nil
}

// status 在主页面状态栏显示消息
func (c *Controller) status(text string) error {
	e, err := c.manager.Component(MainPage + page.ReferenceSeparator + "status")
	if err != nil {
		return err
	}
	e.SetString(page.AttrLabel, text)
	return nil
}

type mainHooks struct {
	page.NopHooks
	c *Controller
}

func (h *mainHooks) OnInit(p *page.Page) error {
	h.c.initial = p.Snapshot()
	return setLabel(p, "status", "ready")
}

func (h *mainHooks) OnButtonClick(p *page.Page, e *layout.Entity) error {
	switch e.ID {
	case "greet":
		name, err := p.Entity("name")
		if err != nil {
			return err
		}
		who := strings.TrimSpace(name.Text(page.AttrText))
		if who == "" {
			who = "stranger"
		}
		return setLabel(p, "hello", fmt.Sprintf("Hello, %s!", who))
	case "clear":
		name, err := p.Entity("name")
		if err != nil {
			return err
		}
		name.SetString(page.AttrText, "")
		cells, err := p.Entity("cells")
		if err != nil {
			return err
		}
		if err := page.ClearGrid(cells); err != nil {
			return err
		}
		p.ClearFocus()
		return h.c.status("cleared")
	case "settings":
		return h.c.manager.GoToPage(SettingsPage)
	}
	return nil
}

func (h *mainHooks) OnListClick(p *page.Page, _ *layout.Entity, text string) error {
	return h.c.status("selected " + text)
}

func (h *mainHooks) OnToolbarClick(p *page.Page, _ *layout.Entity, label string) error {
	switch label {
	case "open":
		files, err := p.Entity("files")
		if err != nil {
			return err
		}
		i := files.Int(page.AttrSelItem)
		if i == page.NoValue {
			return h.c.status("nothing selected")
		}
		item, err := page.ListItem(files, i)
		if err != nil {
			return err
		}
		return h.c.status("open " + item)
	case "save":
		if h.c.host == nil {
			return h.c.status("save unavailable")
		}
		if err := h.c.host.Save(); err != nil {
			return err
		}
		return h.c.status("saved")
	case "undo":
		n := p.Restore(h.c.initial)
		return h.c.status(fmt.Sprintf("restored %d components", n))
	case "quit":
		return ebiten.Termination
	}
	return nil
}

type settingsHooks struct {
	page.NopHooks
	c *Controller
}

func (h *settingsHooks) OnComponentInit(p *page.Page, e *layout.Entity) error {
	if e.ID == "fps" {
		e.SetString(page.AttrText, strconv.Itoa(h.c.fps))
	}
	return nil
}

func (h *settingsHooks) OnButtonClick(p *page.Page, e *layout.Entity) error {
	switch e.ID {
	case "apply":
		field, err := p.Entity("fps")
		if err != nil {
			return err
		}
		fps, err := strconv.Atoi(strings.TrimSpace(field.Text(page.AttrText)))
		if err != nil || fps <= 0 {
			return setLabel(p, "note", "invalid fps")
		}
		h.c.fps = fps
		if h.c.host != nil {
			h.c.host.SetFPS(fps)
		}
		return setLabel(p, "note", fmt.Sprintf("fps set to %d", fps))
	case "back":
		return h.c.manager.GoToPage(MainPage)
	}
	return nil
}
