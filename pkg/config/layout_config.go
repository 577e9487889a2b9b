package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decker502/nerdlayout/pkg/layout"
)

// ErrMissingKey 旧格式配置中缺少必需的键
var ErrMissingKey = errors.New("missing config key")

// 页面配置的全部键，其它键被忽略
const (
	KeyWidth  = "width"
	KeyHeight = "height"
	KeyCellW  = "cell-w"
	KeyCellH  = "cell-h"
	KeyRed    = "red"
	KeyGreen  = "green"
	KeyBlue   = "blue"
)

var layoutKeys = []string{KeyWidth, KeyHeight, KeyCellW, KeyCellH, KeyRed, KeyGreen, KeyBlue}

// LayoutConfig 页面布局配置
//
// Width/Height 为像素尺寸，CellW/CellH 为网格单元的像素尺寸，
// Red/Green/Blue 为背景色。
type LayoutConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	CellW  int `yaml:"cell-w"`
	CellH  int `yaml:"cell-h"`
	Red    int `yaml:"red"`
	Green  int `yaml:"green"`
	Blue   int `yaml:"blue"`
}

// Columns 网格列数（向下取整）
func (c *LayoutConfig) Columns() int {
	if c.CellW <= 0 {
		return 0
	}
	return c.Width / c.CellW
}

// Rows 网格行数（向下取整）
func (c *LayoutConfig) Rows() int {
	if c.CellH <= 0 {
		return 0
	}
	return c.Height / c.CellH
}

// Validate 验证配置的合法性
func (c *LayoutConfig) Validate() error {
	if c.CellW <= 0 || c.CellH <= 0 {
		return fmt.Errorf("cell size must be positive, got %dx%d", c.CellW, c.CellH)
	}
	if c.Width < c.CellW || c.Height < c.CellH {
		return fmt.Errorf("pixel size %dx%d is smaller than one %dx%d cell", c.Width, c.Height, c.CellW, c.CellH)
	}
	for _, ch := range []struct {
		name  string
		value int
	}{{KeyRed, c.Red}, {KeyGreen, c.Green}, {KeyBlue, c.Blue}} {
		if ch.value < 0 || ch.value > 255 {
			return fmt.Errorf("%s must be between 0 and 255, got %d", ch.name, ch.value)
		}
	}
	return nil
}

// LoadLayoutConfig 从文件系统读取页面配置
//
// 扩展名为 .yaml/.yml 的文件按 YAML 解析，其余按 key=value 旧格式解析。
func LoadLayoutConfig(fsys fs.FS, name string) (*LayoutConfig, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout config %s: %w", name, err)
	}
	cfg, err := ParseLayoutConfig(name, data)
	if err != nil {
		return nil, fmt.Errorf("layout config %s: %w", name, err)
	}
	return cfg, nil
}

// ParseLayoutConfig 按文件名选择格式解析并验证配置
func ParseLayoutConfig(name string, data []byte) (*LayoutConfig, error) {
	var (
		cfg *LayoutConfig
		err error
	)
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		cfg = &LayoutConfig{}
		err = yaml.Unmarshal(data, cfg)
	default:
		cfg, err = parseLegacyLayoutConfig(data)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout config: %w", err)
	}
	return cfg, nil
}

// parseLegacyLayoutConfig 解析 key=value 格式
// 恰好包含一个 "=" 的行才被识别，全部七个键都必须出现
func parseLegacyLayoutConfig(data []byte) (*LayoutConfig, error) {
	values := make(map[string]layout.Value)
	r := layout.NewLineReader(data)
	for r.HasMore() {
		line, _ := r.Next()
		pair := strings.Split(strings.TrimSpace(line), "=")
		if len(pair) != 2 || pair[0] == "" || pair[1] == "" {
			continue
		}
		values[pair[0]] = layout.ParseValue(pair[1])
	}

	ints := make(map[string]int, len(layoutKeys))
	for _, key := range layoutKeys {
		v, ok := values[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingKey, key)
		}
		if !v.IsInt() {
			return nil, fmt.Errorf("%s must be an integer, got %s", key, v)
		}
		ints[key] = v.Int()
	}

	return &LayoutConfig{
		Width:  ints[KeyWidth],
		Height: ints[KeyHeight],
		CellW:  ints[KeyCellW],
		CellH:  ints[KeyCellH],
		Red:    ints[KeyRed],
		Green:  ints[KeyGreen],
		Blue:   ints[KeyBlue],
	}, nil
}
