package layout

import (
	"fmt"
	"sort"
)

// Kind 是实体类型标签
type Kind string

// 网格字形直接产生的四种基本类型
const (
	KindBox    Kind = "box"
	KindField  Kind = "field"
	KindPanel  Kind = "panel"
	KindButton Kind = "button"
)

// 通过 type 属性引入的组合类型
const (
	KindLabel    Kind = "label"
	KindList     Kind = "list"
	KindToolbar  Kind = "toolbar"
	KindGridView Kind = "grid-view"
)

// 固定字段对应的属性名
const (
	KeyID     = "id"
	KeyType   = "type"
	KeyX      = "x"
	KeyY      = "y"
	KeyWidth  = "width"
	KeyHeight = "height"
)

// Rect 像素矩形，Right/Bottom 为包含边界
type Rect struct {
	Left, Top, Right, Bottom int
}

// Contains 点是否落在矩形内（含边界）
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// Entity 是从网格中解析出的一个界面元素
//
// X/Y/Width/Height 以网格单元为单位。其余类型相关的属性
// （label、颜色、items、rows、columns、text 等）保存在属性表中。
type Entity struct {
	ID     string
	Kind   Kind
	X      int
	Y      int
	Width  int
	Height int

	attrs map[string]Value
}

// NewEntity 创建一个没有附加属性的实体
func NewEntity(id string, kind Kind, x, y, width, height int) *Entity {
	return &Entity{
		ID:     id,
		Kind:   kind,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		attrs:  make(map[string]Value),
	}
}

// Attr 读取属性
func (e *Entity) Attr(key string) (Value, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

// Has 属性是否存在
func (e *Entity) Has(key string) bool {
	_, ok := e.attrs[key]
	return ok
}

// SetAttr 写入属性（覆盖已有值）
func (e *Entity) SetAttr(key string, v Value) {
	if e.attrs == nil {
		e.attrs = make(map[string]Value)
	}
	e.attrs[key] = v
}

// SetInt 写入整数属性
func (e *Entity) SetInt(key string, n int) { e.SetAttr(key, Int(n)) }

// SetString 写入字符串属性
func (e *Entity) SetString(key, s string) { e.SetAttr(key, String(s)) }

// DeleteAttr 删除属性
func (e *Entity) DeleteAttr(key string) { delete(e.attrs, key) }

// Int 读取整数属性，缺失或类型不符时返回 0
func (e *Entity) Int(key string) int {
	return e.attrs[key].Int()
}

// Text 读取属性的文本形式，缺失时返回 ""
func (e *Entity) Text(key string) string {
	return e.attrs[key].Text()
}

// RequireInt 读取必需的整数属性
func (e *Entity) RequireInt(key string) (int, error) {
	v, ok := e.attrs[key]
	if !ok {
		return 0, fmt.Errorf("entity %q: %w: %s", e.ID, ErrMissingAttribute, key)
	}
	if !v.IsInt() {
		return 0, fmt.Errorf("entity %q: attribute %s is not an integer: %s", e.ID, key, v)
	}
	return v.Int(), nil
}

// RequireText 读取必需属性的文本形式
func (e *Entity) RequireText(key string) (string, error) {
	v, ok := e.attrs[key]
	if !ok {
		return "", fmt.Errorf("entity %q: %w: %s", e.ID, ErrMissingAttribute, key)
	}
	return v.Text(), nil
}

// Keys 返回排序后的属性名
func (e *Entity) Keys() []string {
	keys := make([]string, 0, len(e.attrs))
	for k := range e.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Attrs 返回属性表的拷贝
func (e *Entity) Attrs() map[string]Value {
	out := make(map[string]Value, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

// PixelRect 按单元尺寸换算实体的像素矩形
func (e *Entity) PixelRect(cellW, cellH int) Rect {
	left := e.X * cellW
	top := e.Y * cellH
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + e.Width*cellW - 1,
		Bottom: top + e.Height*cellH - 1,
	}
}

// assign 将一个属性赋值作用到实体上
// 固定字段直接更新结构体字段，其余写入属性表
func (e *Entity) assign(key string, v Value) error {
	switch key {
	case KeyID:
		return fmt.Errorf("entity %q: %w: id cannot be reassigned", e.ID, ErrMalformedProperty)
	case KeyType:
		if v.IsInt() {
			return fmt.Errorf("entity %q: %w: type must be a name, got %s", e.ID, ErrMalformedProperty, v)
		}
		e.Kind = Kind(v.Str())
	case KeyX, KeyY, KeyWidth, KeyHeight:
		if !v.IsInt() {
			return fmt.Errorf("entity %q: %w: %s must be an integer, got %s", e.ID, ErrMalformedProperty, key, v)
		}
		switch key {
		case KeyX:
			e.X = v.Int()
		case KeyY:
			e.Y = v.Int()
		case KeyWidth:
			e.Width = v.Int()
		case KeyHeight:
			e.Height = v.Int()
		}
	default:
		e.SetAttr(key, v)
	}
	return nil
}

// Components 是按插入顺序保存的实体集合
type Components struct {
	order []string
	byID  map[string]*Entity
}

// NewComponents 创建空集合
func NewComponents() *Components {
	return &Components{byID: make(map[string]*Entity)}
}

// Add 加入实体，id 为空或重复时返回错误
func (c *Components) Add(e *Entity) error {
	if e.ID == "" {
		return ErrEmptyID
	}
	if _, exists := c.byID[e.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
	}
	c.order = append(c.order, e.ID)
	c.byID[e.ID] = e
	return nil
}

// Get 按 id 查找实体
func (c *Components) Get(id string) (*Entity, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Len 实体数量
func (c *Components) Len() int { return len(c.order) }

// IDs 按插入顺序返回所有 id
func (c *Components) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Entities 按插入顺序返回所有实体
func (c *Components) Entities() []*Entity {
	out := make([]*Entity, len(c.order))
	for i, id := range c.order {
		out[i] = c.byID[id]
	}
	return out
}
