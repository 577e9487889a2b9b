package layout

import "fmt"

// Parse 解析完整的布局源文件
//
// width、height 为网格的列数和行数。先载入网格并提取全部实体，
// 再处理剩余的属性行。任何阶段失败都不会返回部分结果。
func Parse(data []byte, width, height int) (*Components, error) {
	return ParseReader(NewLineReader(data), width, height)
}

// ParseReader 与 Parse 相同，但从已有的行读取器中读取
func ParseReader(r *LineReader, width, height int) (*Components, error) {
	g, err := LoadGrid(r, width, height)
	if err != nil {
		return nil, fmt.Errorf("load grid: %w", err)
	}
	components, err := ParseEntities(g)
	if err != nil {
		return nil, fmt.Errorf("parse entities: %w", err)
	}
	if err := AssignProperties(components, r); err != nil {
		return nil, fmt.Errorf("parse properties: %w", err)
	}
	return components, nil
}
