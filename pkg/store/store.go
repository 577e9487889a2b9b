// Package store 将页面组件的状态保存到 gdata 跨平台存储
//
// 每个页面的快照以 YAML 形式保存在对象 "pages" 下，属性名为页面名。
// gdata 不可用时进入降级模式：保存为空操作，恢复时没有数据。
package store

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/nerdlayout/pkg/page"
)

// 存储路径常量
const pagesObject = "pages"

// Store 页面快照存储
type Store struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
}

// Open 打开应用的 gdata 存储
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata for %s: %w", appName, err)
	}
	return New(m), nil
}

// New 使用已有的 gdata 管理器，nil 表示降级模式
func New(m *gdata.Manager) *Store {
	return &Store{gdataManager: m}
}

// Persistent 是否真正持久化
func (s *Store) Persistent() bool { return s.gdataManager != nil }

// HasPage 是否存在页面的快照
func (s *Store) HasPage(name string) bool {
	if s.gdataManager == nil {
		return false
	}
	return s.gdataManager.ObjectPropExists(pagesObject, name)
}

// SavePage 保存页面当前的组件状态
func (s *Store) SavePage(name string, p *page.Page) error {
	if s.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(p.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal page %s: %w", name, err)
	}
	if err := s.gdataManager.SaveObjectProp(pagesObject, name, data); err != nil {
		return fmt.Errorf("failed to save page %s: %w", name, err)
	}
	log.Printf("[Store] Saved page %s (%d bytes)", name, len(data))
	return nil
}

// LoadSnapshot 读取页面快照，不存在时 ok 为 false
func (s *Store) LoadSnapshot(name string) (snap page.Snapshot, ok bool, err error) {
	if !s.HasPage(name) {
		return nil, false, nil
	}
	data, err := s.gdataManager.LoadObjectProp(pagesObject, name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load page %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal page %s: %w", name, err)
	}
	return snap, true, nil
}

// RestorePage 把保存的快照写回页面
// 快照中已不存在的实体被跳过，返回恢复的实体数
func (s *Store) RestorePage(name string, p *page.Page) (int, error) {
	snap, ok, err := s.LoadSnapshot(name)
	if err != nil || !ok {
		return 0, err
	}
	n := p.Restore(snap)
	log.Printf("[Store] Restored page %s: %d of %d entities", name, n, len(snap))
	return n, nil
}

// SaveAll 保存管理器中的所有页面
func (s *Store) SaveAll(m *page.Manager) error {
	for _, name := range m.Names() {
		p, err := m.Page(name)
		if err != nil {
			return err
		}
		if err := s.SavePage(name, p); err != nil {
			return err
		}
	}
	return nil
}

// RestoreAll 为管理器中的所有页面恢复快照
// 单个页面恢复失败只记录日志，不影响其它页面
func (s *Store) RestoreAll(m *page.Manager) {
	for _, name := range m.Names() {
		p, err := m.Page(name)
		if err != nil {
			continue
		}
		if _, err := s.RestorePage(name, p); err != nil {
			log.Printf("[Store] Warning: %v (keeping layout defaults)", err)
		}
	}
}
