package page

import (
	"fmt"
	"strings"

	"github.com/decker502/nerdlayout/pkg/layout"
)

// 复合组件状态的序列化格式：
//
//	grid-view: 行之间用 ';' 分隔，单元格之间用 ',' 分隔，空单元格存为 FreeCell
//	list/toolbar: 条目之间用 ',' 分隔；items 属性中的条目用 ';' 分隔
const (
	RowSeparator  = ";"
	CellSeparator = ","
	FreeCell      = "free"
)

// splitTokens 按分隔符拆分，丢弃空片段
func splitTokens(text, sep string) []string {
	parts := strings.Split(text, sep)
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func hasDelimiter(value string) bool {
	return strings.ContainsAny(value, RowSeparator+CellSeparator)
}

// gridCells 解码后的 grid-view 内容
type gridCells struct {
	rows    int
	columns int
	cells   [][]string
}

// decodeGrid 按 rows/columns 解码 text，缺失的单元格视为空单元格
func decodeGrid(e *layout.Entity) (*gridCells, error) {
	rows, err := positiveInt(e, AttrRows)
	if err != nil {
		return nil, err
	}
	columns, err := positiveInt(e, AttrColumns)
	if err != nil {
		return nil, err
	}

	stored := splitTokens(e.Text(AttrText), RowSeparator)
	g := &gridCells{rows: rows, columns: columns, cells: make([][]string, rows)}
	for y := range g.cells {
		var values []string
		if y < len(stored) {
			values = splitTokens(stored[y], CellSeparator)
		}
		row := make([]string, columns)
		for x := range row {
			row[x] = FreeCell
			if x < len(values) {
				row[x] = values[x]
			}
		}
		g.cells[y] = row
	}
	return g, nil
}

func (g *gridCells) encode() string {
	rows := make([]string, len(g.cells))
	for y, row := range g.cells {
		rows[y] = strings.Join(row, CellSeparator)
	}
	return strings.Join(rows, RowSeparator)
}

func (g *gridCells) check(x, y int) error {
	if x < 0 || x >= g.columns {
		return fmt.Errorf("%w: column %d of %d", ErrInvalidIndex, x, g.columns)
	}
	if y < 0 || y >= g.rows {
		return fmt.Errorf("%w: row %d of %d", ErrInvalidIndex, y, g.rows)
	}
	return nil
}

// ClearGrid 将 grid-view 的所有单元格重置为空
func ClearGrid(e *layout.Entity) error {
	rows, err := positiveInt(e, AttrRows)
	if err != nil {
		return err
	}
	columns, err := positiveInt(e, AttrColumns)
	if err != nil {
		return err
	}
	row := strings.TrimSuffix(strings.Repeat(FreeCell+CellSeparator, columns), CellSeparator)
	all := strings.TrimSuffix(strings.Repeat(row+RowSeparator, rows), RowSeparator)
	e.SetString(AttrText, all)
	return nil
}

// GetGridCell 读取单元格，空单元格返回 ""
func GetGridCell(e *layout.Entity, x, y int) (string, error) {
	g, err := decodeGrid(e)
	if err != nil {
		return "", err
	}
	if err := g.check(x, y); err != nil {
		return "", err
	}
	if v := g.cells[y][x]; v != FreeCell {
		return v, nil
	}
	return "", nil
}

// SetGridCell 写入单元格，"" 表示清空
// 值不能包含分隔符，也不能是空单元格标记本身
func SetGridCell(e *layout.Entity, x, y int, value string) error {
	g, err := decodeGrid(e)
	if err != nil {
		return err
	}
	if err := g.check(x, y); err != nil {
		return err
	}
	if hasDelimiter(value) {
		return fmt.Errorf("%w: %q", ErrReservedDelimiter, value)
	}
	if value == FreeCell {
		return fmt.Errorf("%w: %q", ErrReservedValue, value)
	}
	if value == "" {
		value = FreeCell
	}
	g.cells[y][x] = value
	e.SetString(AttrText, g.encode())
	return nil
}

func itemsOf(e *layout.Entity) []string {
	return splitTokens(e.Text(AttrText), CellSeparator)
}

func setItems(e *layout.Entity, items []string) {
	e.SetString(AttrText, strings.Join(items, CellSeparator))
}

func addItem(e *layout.Entity, value string) error {
	if value == "" {
		return fmt.Errorf("%w: empty item", ErrInvalidItem)
	}
	if hasDelimiter(value) {
		return fmt.Errorf("%w: %q", ErrReservedDelimiter, value)
	}
	setItems(e, append(itemsOf(e), value))
	return nil
}

func removeItem(e *layout.Entity, index int) error {
	items := itemsOf(e)
	if index < 0 || index >= len(items) {
		return fmt.Errorf("%w: item %d of %d", ErrInvalidIndex, index, len(items))
	}
	setItems(e, append(items[:index], items[index+1:]...))
	return nil
}

// AddListItem 在列表末尾追加条目
func AddListItem(e *layout.Entity, value string) error { return addItem(e, value) }

// RemoveListItem 删除指定下标的条目
func RemoveListItem(e *layout.Entity, index int) error {
	if err := removeItem(e, index); err != nil {
		return err
	}
	if sel := e.Int(AttrSelItem); sel == index {
		e.SetInt(AttrSelItem, NoValue)
	} else if sel > index {
		e.SetInt(AttrSelItem, sel-1)
	}
	return nil
}

// ListItem 读取指定下标的条目
func ListItem(e *layout.Entity, index int) (string, error) {
	items := itemsOf(e)
	if index < 0 || index >= len(items) {
		return "", fmt.Errorf("%w: item %d of %d", ErrInvalidIndex, index, len(items))
	}
	return items[index], nil
}

// ListItemCount 列表条目数
func ListItemCount(e *layout.Entity) int { return len(itemsOf(e)) }

// ClearList 清空列表并取消选中
func ClearList(e *layout.Entity) {
	e.SetString(AttrText, "")
	e.SetInt(AttrSelItem, NoValue)
}

// ToolbarItem 工具栏条目
type ToolbarItem struct {
	Label string
	Icon  string
}

func (it ToolbarItem) String() string { return it.Label + ":" + it.Icon }

// ParseToolbarItem 解析 label:icon
func ParseToolbarItem(text string) (ToolbarItem, error) {
	pair := splitTokens(text, ":")
	if len(pair) != 2 {
		return ToolbarItem{}, fmt.Errorf("%w: %q is not label:icon", ErrInvalidItem, text)
	}
	return ToolbarItem{Label: pair[0], Icon: pair[1]}, nil
}

// AddToolbarItem 在工具栏末尾追加 label:icon 条目
func AddToolbarItem(e *layout.Entity, value string) error {
	if hasDelimiter(value) {
		return fmt.Errorf("%w: %q", ErrReservedDelimiter, value)
	}
	if _, err := ParseToolbarItem(value); err != nil {
		return err
	}
	return addItem(e, value)
}

// RemoveToolbarItem 删除指定下标的条目
func RemoveToolbarItem(e *layout.Entity, index int) error { return removeItem(e, index) }

// ToolbarItems 解析工具栏的全部条目
func ToolbarItems(e *layout.Entity) ([]ToolbarItem, error) {
	raw := itemsOf(e)
	items := make([]ToolbarItem, 0, len(raw))
	for _, text := range raw {
		it, err := ParseToolbarItem(text)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// ToolbarItemCount 工具栏条目数
func ToolbarItemCount(e *layout.Entity) int { return len(itemsOf(e)) }

// ClearToolbar 清空工具栏并取消选中
func ClearToolbar(e *layout.Entity) {
	e.SetString(AttrText, "")
	e.SetInt(AttrItemX, NoValue)
	e.SetInt(AttrItemY, NoValue)
}

// ParseRectangle 解析 "left,top,right,bottom"
func ParseRectangle(text string) (layout.Rect, error) {
	parts := splitTokens(text, CellSeparator)
	if len(parts) != 4 {
		return layout.Rect{}, fmt.Errorf("rectangle %q must have 4 components", text)
	}
	var n [4]int
	for i, part := range parts {
		v := layout.ParseValue(strings.TrimSpace(part))
		if !v.IsInt() {
			return layout.Rect{}, fmt.Errorf("rectangle %q: component %q is not an integer", text, part)
		}
		n[i] = v.Int()
	}
	return layout.Rect{Left: n[0], Top: n[1], Right: n[2], Bottom: n[3]}, nil
}
