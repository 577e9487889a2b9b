package layout

import (
	"fmt"
	"strings"
)

// Property 是一条属性赋值中的一个 key=value 对
type Property struct {
	Key   string
	Value Value
}

// ParsePropertyLine 解析形如 id->k1=v1,k2=v2 的属性行
//
// 整行必须恰好包含一个 "->"；每个键值对必须恰好包含一个 "="。
// 逗号之间的空片段被忽略，"a=1," 与 "a=1" 等价。
func ParsePropertyLine(line string) (string, []Property, error) {
	parts := strings.Split(line, "->")
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("%w: expected exactly one \"->\" in %q", ErrMalformedProperty, line)
	}
	id := parts[0]
	if id == "" {
		return "", nil, fmt.Errorf("%w: missing entity id in %q", ErrMalformedProperty, line)
	}

	pairs := strings.Split(parts[1], ",")
	props := make([]Property, 0, len(pairs))
	for _, pair := range pairs {
		if pair == "" {
			continue
		}
		kv := strings.Split(pair, "=")
		if len(kv) != 2 || kv[0] == "" {
			return "", nil, fmt.Errorf("%w: property %q of %s is missing a value", ErrMalformedProperty, pair, id)
		}
		props = append(props, Property{Key: kv[0], Value: ParseValue(kv[1])})
	}
	return id, props, nil
}

// AssignProperties 消费读取器中剩余的所有属性行
//
// 空白行被跳过。引用未知实体、格式错误都会立即返回错误；
// 每一行在全部校验通过之后才写入实体，失败的行不会修改任何实体。
func AssignProperties(c *Components, r *LineReader) error {
	for r.HasMore() {
		lineNo := r.Line() + 1
		line, err := r.Next()
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := AssignPropertyLine(c, line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return nil
}

// AssignPropertyLine 将一条属性行作用到集合中的实体上
func AssignPropertyLine(c *Components, line string) error {
	id, props, err := ParsePropertyLine(line)
	if err != nil {
		return err
	}
	entity, ok := c.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, id)
	}

	// 在临时实体上演练一遍，保证整行要么全部生效要么都不生效
	trial := *entity
	trial.attrs = nil
	for _, p := range props {
		if err := trial.assign(p.Key, p.Value); err != nil {
			return err
		}
	}
	for _, p := range props {
		if err := entity.assign(p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}
