package layout

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Value 是实体属性值：整数或字符串
type Value struct {
	num   int
	str   string
	isNum bool
}

// Int 构造整数值
func Int(n int) Value {
	return Value{num: n, isNum: true}
}

// String 构造字符串值
func String(s string) Value {
	return Value{str: s}
}

// ParseValue 将属性文本转换为值
// 符合整数语法的文本转换为整数，其余保持字符串
func ParseValue(text string) Value {
	if n, ok := parseNumber(text); ok {
		return Int(n)
	}
	return String(text)
}

// IsInt 是否为整数值
func (v Value) IsInt() bool { return v.isNum }

// Int 返回整数部分，字符串值返回 0
func (v Value) Int() int { return v.num }

// Str 返回字符串部分，整数值返回 ""
func (v Value) Str() string { return v.str }

// Text 返回值的文本形式，整数会被格式化
func (v Value) Text() string {
	if v.isNum {
		return strconv.Itoa(v.num)
	}
	return v.str
}

// String 实现 fmt.Stringer
func (v Value) String() string {
	if v.isNum {
		return strconv.Itoa(v.num)
	}
	return strconv.Quote(v.str)
}

// MarshalYAML 整数编码为 YAML 整数，字符串编码为 YAML 字符串
func (v Value) MarshalYAML() (interface{}, error) {
	if v.isNum {
		return v.num, nil
	}
	return v.str, nil
}

// UnmarshalYAML 按节点标签还原整数或字符串
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: attribute value must be a scalar", node.Line)
	}
	if node.ShortTag() == "!!int" {
		var n int
		if err := node.Decode(&n); err != nil {
			return err
		}
		*v = Int(n)
		return nil
	}
	*v = String(node.Value)
	return nil
}

// parseNumber 严格的整数语法："0"、"[1-9][0-9]*" 或 "-[1-9][0-9]*"
// 前导零、加号、小数都不算数字
func parseNumber(text string) (int, bool) {
	if text == "" {
		return 0, false
	}
	digits := text
	if text[0] == '-' {
		digits = text[1:]
		if digits == "" || digits[0] == '0' {
			return 0, false
		}
	}
	if len(digits) > 1 && digits[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return n, true
}
