package layout

import (
	"errors"
	"fmt"
)

// 结构性解析错误
var (
	ErrTruncated       = errors.New("truncated")
	ErrUnexpectedGlyph = errors.New("unexpected character")
	ErrWidthMismatch   = errors.New("width mismatch")
	ErrHeightMismatch  = errors.New("height mismatch")
	ErrEmptyID         = errors.New("entity has no id")
	ErrDuplicateID     = errors.New("duplicate entity id")
)

// 属性与引用错误
var (
	ErrUnknownEntity     = errors.New("unknown entity")
	ErrMalformedProperty = errors.New("malformed property")
	ErrMissingAttribute  = errors.New("missing attribute")
)

// 路径方向，用于标识方框解析失败的边
const (
	LegRight = "right"
	LegDown  = "down"
	LegLeft  = "left"
	LegUp    = "up"
)

// ParseError 描述某个形状在网格中的解析失败位置
type ParseError struct {
	Shape Kind   // 正在解析的形状
	Leg   string // 方框的失败边，单行形状为空
	Col   int    // 失败单元格的列
	Row   int    // 失败单元格的行
	Err   error  // 具体原因，可用 errors.Is 判断
}

func (e *ParseError) Error() string {
	if e.Leg != "" {
		return fmt.Sprintf("not a valid %s at (%d,%d): %v (%s)", e.Shape, e.Col, e.Row, e.Err, e.Leg)
	}
	return fmt.Sprintf("not a valid %s at (%d,%d): %v", e.Shape, e.Col, e.Row, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
