// Package layout 将文本网格布局文件编译为带位置信息的实体集合
//
// 布局文件由两部分组成：
//   - 前 height 行是字符网格，用 + - | [ ] { } ( ) 等字形描述界面元素
//   - 其余各行是属性赋值，格式为 id->key=value,key=value
//
// 本包只负责解析，不做任何渲染或日志输出，所有错误都返回给调用者。
package layout

import "errors"

// ErrNoMoreLines 在读取器中没有剩余行时返回
var ErrNoMoreLines = errors.New("no more lines to read")

// LineReader 按行消费布局源文件
// 支持 \n、\r\n 和 \r 三种换行方式，末尾的空行不会产生额外的一行
type LineReader struct {
	lines []string
	pos   int
}

// NewLineReader 将原始字节拆分为行
func NewLineReader(data []byte) *LineReader {
	lines := make([]string, 0, 32)
	start := 0
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\r':
			lines = append(lines, string(data[start:i]))
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			start = i + 1
		case '\n':
			lines = append(lines, string(data[start:i]))
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return &LineReader{lines: lines}
}

// NewLineReaderFromLines 直接使用已拆分好的行
func NewLineReaderFromLines(lines []string) *LineReader {
	copied := make([]string, len(lines))
	copy(copied, lines)
	return &LineReader{lines: copied}
}

// Next 返回下一行并前移指针
func (r *LineReader) Next() (string, error) {
	if r.pos >= len(r.lines) {
		return "", ErrNoMoreLines
	}
	line := r.lines[r.pos]
	r.pos++
	return line, nil
}

// HasMore 是否还有未读的行
func (r *LineReader) HasMore() bool {
	return r.pos < len(r.lines)
}

// Count 返回总行数
func (r *LineReader) Count() int {
	return len(r.lines)
}

// Line 返回当前已读到的行号（下一次 Next 将返回的行的索引）
func (r *LineReader) Line() int {
	return r.pos
}
