package layout

import (
	"fmt"
	"strings"
)

// Blank 是网格中的空白单元
const Blank byte = ' '

// Grid 是布局解析使用的可变二维字符矩阵
//
// 网格尺寸在创建时固定。解析过程中被消费的字形会被置为空白，
// 解析完成后网格不再被读取。
type Grid struct {
	width  int
	height int
	cells  [][]byte
}

// NewGrid 创建指定尺寸的空白网格
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([][]byte, height)
	for y := range cells {
		row := make([]byte, width)
		for x := range row {
			row[x] = Blank
		}
		cells[y] = row
	}
	return &Grid{width: width, height: height, cells: cells}
}

// LoadGrid 从读取器中取出 height 行填充网格
//
// 短于 width 的行右侧保持空白，超出 width 的字符被忽略。
// 源文件行数不足 height 时返回错误。
func LoadGrid(r *LineReader, width, height int) (*Grid, error) {
	g := NewGrid(width, height)
	for y := 0; y < g.height; y++ {
		line, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("grid row %d of %d: %w", y, g.height, err)
		}
		n := len(line)
		if n > g.width {
			n = g.width
		}
		copy(g.cells[y], line[:n])
	}
	return g, nil
}

// ParseGrid 直接从文本创建网格，尺寸取文本的最大行宽和行数
// 主要用于测试和工具
func ParseGrid(text string) *Grid {
	r := NewLineReader([]byte(text))
	width := 0
	for _, line := range r.lines {
		if len(line) > width {
			width = len(line)
		}
	}
	g, _ := LoadGrid(r, width, r.Count())
	return g
}

// Width 网格列数
func (g *Grid) Width() int { return g.width }

// Height 网格行数
func (g *Grid) Height() int { return g.height }

// InBounds 判断坐标是否在网格内
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Cell 读取单元格，越界返回空白
func (g *Grid) Cell(x, y int) byte {
	if !g.InBounds(x, y) {
		return Blank
	}
	return g.cells[y][x]
}

// Set 写入单元格，越界写入被忽略
func (g *Grid) Set(x, y int, c byte) {
	if g.InBounds(x, y) {
		g.cells[y][x] = c
	}
}

// consume 读取单元格并将其置为空白
func (g *Grid) consume(x, y int) byte {
	c := g.cells[y][x]
	g.cells[y][x] = Blank
	return c
}

// Clear 将所有单元格重置为空白
func (g *Grid) Clear() {
	for _, row := range g.cells {
		for x := range row {
			row[x] = Blank
		}
	}
}

// IsOpeningGlyph 判断字符是否为实体起始字形
func IsOpeningGlyph(c byte) bool {
	return c == '+' || c == '[' || c == '{' || c == '('
}

// HasEntity 网格中是否还残留实体起始字形
func (g *Grid) HasEntity() bool {
	_, _, ok := g.findOpening()
	return ok
}

// findOpening 按行优先顺序查找第一个起始字形
func (g *Grid) findOpening() (int, int, bool) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if IsOpeningGlyph(g.cells[y][x]) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// String 以文本形式输出网格，每行一个换行
func (g *Grid) String() string {
	var sb strings.Builder
	for _, row := range g.cells {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// IsIdentifier 判断字符是否属于标识符（ASCII 字母、数字或下划线）
func IsIdentifier(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}
