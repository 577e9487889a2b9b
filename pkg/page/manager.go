package page

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/decker502/nerdlayout/pkg/layout"
)

// ReferenceSeparator 分隔组件引用中的页面名和实体 id
const ReferenceSeparator = "->"

// Manager 按名称管理页面，并维护当前页面
//
// 布局源文件 <name>.txt 从构造时给定的文件系统中读取。
type Manager struct {
	fsys     fs.FS
	pages    map[string]*Page
	order    []string
	selected string
}

// NewManager 创建页面管理器
func NewManager(fsys fs.FS) *Manager {
	return &Manager{
		fsys:  fsys,
		pages: make(map[string]*Page),
	}
}

// Entry 待加载的页面
type Entry struct {
	Name string
	Page *Page
}

// AddPage 读取并解析 <name>.txt，初始化页面后注册
// 第一个注册的页面成为当前页面
func (m *Manager) AddPage(name string, p *Page) error {
	return m.LoadPages(context.Background(), Entry{Name: name, Page: p})
}

// LoadPages 并发读取和解析多个页面的布局，然后按给定顺序初始化并注册
//
// 任意一个页面失败时不注册任何页面。帧循环必须在此方法返回之后才能开始。
func (m *Manager) LoadPages(ctx context.Context, entries ...Entry) error {
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.Name == "" || entry.Page == nil {
			return fmt.Errorf("%w: page entry %q is incomplete", ErrUnknownPage, entry.Name)
		}
		if _, exists := m.pages[entry.Name]; exists || seen[entry.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicatePage, entry.Name)
		}
		seen[entry.Name] = true
	}

	parsed := make([]*layout.Components, len(entries))
	g, ctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			file := entry.Name + ".txt"
			data, err := fs.ReadFile(m.fsys, file)
			if err != nil {
				return fmt.Errorf("page %s: %w", entry.Name, err)
			}
			columns, rows := entry.Page.GridSize()
			components, err := layout.Parse(data, columns, rows)
			if err != nil {
				return fmt.Errorf("page %s: %s: %w", entry.Name, file, err)
			}
			parsed[i] = components
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, entry := range entries {
		entry.Page.name = entry.Name
		if err := entry.Page.install(parsed[i]); err != nil {
			return fmt.Errorf("page %s: %w", entry.Name, err)
		}
	}
	for _, entry := range entries {
		if err := entry.Page.hooks.OnInit(entry.Page); err != nil {
			return fmt.Errorf("page %s: init hook: %w", entry.Name, err)
		}
	}

	for _, entry := range entries {
		m.pages[entry.Name] = entry.Page
		m.order = append(m.order, entry.Name)
	}
	if m.selected == "" && len(m.order) > 0 {
		m.selected = m.order[0]
	}
	return nil
}

// GoToPage 切换当前页面
func (m *Manager) GoToPage(name string) error {
	p, ok := m.pages[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, name)
	}
	if name != m.selected {
		// 离开时处于按下状态的页面收不到对应的抬起信号
		p.notClicked = true
	}
	m.selected = name
	return nil
}

// Page 按名称查找页面
func (m *Manager) Page(name string) (*Page, error) {
	p, ok := m.pages[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPage, name)
	}
	return p, nil
}

// Current 当前页面，没有页面时为 nil
func (m *Manager) Current() *Page {
	return m.pages[m.selected]
}

// CurrentName 当前页面名称
func (m *Manager) CurrentName() string { return m.selected }

// Names 按注册顺序返回页面名称
func (m *Manager) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Component 解析 page->component 引用
func (m *Manager) Component(ref string) (*layout.Entity, error) {
	pair := strings.Split(ref, ReferenceSeparator)
	if len(pair) != 2 || pair[0] == "" || pair[1] == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	p, err := m.Page(pair[0])
	if err != nil {
		return nil, err
	}
	e, err := p.Entity(pair[1])
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", pair[0], err)
	}
	return e, nil
}

// Render 渲染当前页面
func (m *Manager) Render() error {
	p := m.Current()
	if p == nil {
		return ErrNoPage
	}
	if err := p.Render(); err != nil {
		return fmt.Errorf("page %s: %w", m.selected, err)
	}
	return nil
}
