package layout

import "strings"

// ParseEntities 从网格中逐个提取实体，直到不再有起始字形
//
// 每次提取后网格都会改变，所以每一轮都从左上角重新扫描。
// 任何一个形状解析失败都会中止整个过程。
func ParseEntities(g *Grid) (*Components, error) {
	components := NewComponents()
	for {
		x, y, ok := g.findOpening()
		if !ok {
			return components, nil
		}
		entity, err := parseEntity(g, x, y)
		if err != nil {
			return nil, err
		}
		if entity.ID == "" {
			return nil, &ParseError{Shape: entity.Kind, Col: x, Row: y, Err: ErrEmptyID}
		}
		if err := components.Add(entity); err != nil {
			return nil, &ParseError{Shape: entity.Kind, Col: x, Row: y, Err: err}
		}
	}
}

// parseEntity 根据起始字形分派到具体形状的解析函数
func parseEntity(g *Grid, x, y int) (*Entity, error) {
	// 扫描未覆盖的尺寸默认为 1 个单元
	entity := NewEntity("", "", x, y, 1, 1)
	var err error
	switch g.Cell(x, y) {
	case '+':
		entity.Kind = KindBox
		err = parseBox(g, entity)
	case '[':
		entity.Kind = KindField
		err = parseSpan(g, entity, ']')
	case '{':
		entity.Kind = KindPanel
		err = parseSpan(g, entity, '}')
	case '(':
		entity.Kind = KindButton
		err = parseSpan(g, entity, ')')
	}
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// parseBox 沿 右 -> 下 -> 左 -> 上 的路径解析方框
//
// 上边可以嵌入标识符字符作为方框的 id。左边宽度必须等于右行宽度，
// 上行高度必须等于下行高度。
func parseBox(g *Grid, e *Entity) error {
	var id strings.Builder
	fail := func(leg string, x, y int, err error) error {
		return &ParseError{Shape: KindBox, Leg: leg, Col: x, Row: y, Err: err}
	}

	posX, posY := e.X, e.Y
	g.consume(posX, posY)

	// 右行：上边
	for posX++; ; posX++ {
		if posX >= g.width {
			return fail(LegRight, posX-1, posY, ErrTruncated)
		}
		c := g.Cell(posX, posY)
		if c == '+' {
			e.Width++
			g.consume(posX, posY)
			break
		}
		if IsIdentifier(c) {
			id.WriteByte(c)
		} else if c != '-' {
			return fail(LegRight, posX, posY, ErrUnexpectedGlyph)
		}
		e.Width++
		g.consume(posX, posY)
	}

	// 下行：右边
	for posY++; ; posY++ {
		if posY >= g.height {
			return fail(LegDown, posX, posY-1, ErrTruncated)
		}
		c := g.Cell(posX, posY)
		if c == '+' {
			e.Height++
			g.consume(posX, posY)
			break
		}
		if c != '|' {
			return fail(LegDown, posX, posY, ErrUnexpectedGlyph)
		}
		e.Height++
		g.consume(posX, posY)
	}

	// 左行：下边
	revWidth := 1
	for posX--; ; posX-- {
		if posX < 0 {
			return fail(LegLeft, 0, posY, ErrTruncated)
		}
		c := g.Cell(posX, posY)
		if c == '+' {
			revWidth++
			g.consume(posX, posY)
			break
		}
		if c != '-' {
			return fail(LegLeft, posX, posY, ErrUnexpectedGlyph)
		}
		revWidth++
		g.consume(posX, posY)
	}
	if revWidth != e.Width {
		return fail(LegLeft, posX, posY, ErrWidthMismatch)
	}

	// 上行：左边，起点的 + 已被清除，遇到空白即回到起点所在行
	revHeight := 1
	for posY--; ; posY-- {
		if posY < 0 {
			return fail(LegUp, posX, 0, ErrTruncated)
		}
		c := g.Cell(posX, posY)
		if c == Blank {
			revHeight++
			break
		}
		if c != '|' {
			return fail(LegUp, posX, posY, ErrUnexpectedGlyph)
		}
		revHeight++
		g.consume(posX, posY)
	}
	if revHeight != e.Height || posY != e.Y {
		return fail(LegUp, posX, posY, ErrHeightMismatch)
	}

	e.ID = id.String()
	return nil
}

// parseSpan 解析单行形状：字段 [..]、面板 {..}、按钮 (..)
// 起止字形之间只允许标识符和空白
func parseSpan(g *Grid, e *Entity, closing byte) error {
	var id strings.Builder
	posX, posY := e.X, e.Y
	g.consume(posX, posY)

	for posX++; ; posX++ {
		if posX >= g.width {
			return &ParseError{Shape: e.Kind, Col: posX - 1, Row: posY, Err: ErrTruncated}
		}
		c := g.Cell(posX, posY)
		if c == closing {
			e.Width++
			g.consume(posX, posY)
			break
		}
		if IsIdentifier(c) {
			id.WriteByte(c)
		} else if c != Blank {
			return &ParseError{Shape: e.Kind, Col: posX, Row: posY, Err: ErrUnexpectedGlyph}
		}
		e.Width++
		g.consume(posX, posY)
	}

	e.ID = id.String()
	return nil
}
