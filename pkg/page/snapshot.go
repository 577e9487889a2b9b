package page

import "github.com/decker502/nerdlayout/pkg/layout"

// Snapshot 页面中所有实体的属性，按实体 id 索引
type Snapshot map[string]map[string]layout.Value

// Snapshot 复制当前所有实体的属性
func (p *Page) Snapshot() Snapshot {
	out := make(Snapshot, p.components.Len())
	for _, e := range p.components.Entities() {
		out[e.ID] = e.Attrs()
	}
	return out
}

// Restore 把快照中的属性写回仍然存在的实体，返回恢复的实体数
func (p *Page) Restore(s Snapshot) int {
	restored := 0
	for id, attrs := range s {
		e, ok := p.components.Get(id)
		if !ok {
			continue
		}
		for k, v := range attrs {
			e.SetAttr(k, v)
		}
		restored++
	}
	return restored
}
