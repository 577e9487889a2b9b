package config

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// 应用配置默认值
const (
	DefaultFPS      = 20
	DefaultScale    = 1.0
	DefaultFontSize = 13
	DefaultSaveName = "nerdpage"
)

// AppConfig 应用启动配置
type AppConfig struct {
	Title            string      `yaml:"title"`            // 窗口标题
	FPS              int         `yaml:"fps"`              // 每秒渲染帧数，默认 20
	Scale            float64     `yaml:"scale"`            // 窗口缩放倍数，默认 1
	Font             FontConfig  `yaml:"font"`             // 文本字体
	Images           string      `yaml:"images"`           // 图标目录（PNG/JPEG），为空表示不加载
	Pages            []PageEntry `yaml:"pages"`            // 按顺序加载的页面
	Start            string      `yaml:"start"`            // 初始页面，为空则使用第一个页面
	PeekKeyWithMouse bool        `yaml:"peekKeyWithMouse"` // 鼠标信号帧是否同时查看下一个键盘信号
	SaveName         string      `yaml:"saveName"`         // 存档使用的应用名
}

// FontConfig 字体配置，Path 为空时使用内置位图字体
type FontConfig struct {
	Path string  `yaml:"path"`
	Size float64 `yaml:"size"`
}

// PageEntry 单个页面的配置
// 布局文件为 <name>.txt，Config 为空时使用 <name>.yaml
type PageEntry struct {
	Name   string `yaml:"name"`
	Config string `yaml:"config"`
}

// LayoutFile 页面布局源文件名
func (p PageEntry) LayoutFile() string { return p.Name + ".txt" }

// ConfigFile 页面配置文件名
func (p PageEntry) ConfigFile() string {
	if p.Config != "" {
		return p.Config
	}
	return p.Name + ".yaml"
}

// LoadAppConfig 从文件系统读取应用配置
func LoadAppConfig(fsys fs.FS, name string) (*AppConfig, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read app config %s: %w", name, err)
	}
	cfg, err := ParseAppConfig(data)
	if err != nil {
		return nil, fmt.Errorf("app config %s: %w", name, err)
	}
	return cfg, nil
}

// ParseAppConfig 解析 YAML、填充默认值并验证
func ParseAppConfig(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse app config YAML: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app config: %w", err)
	}
	return &cfg, nil
}

// ApplyDefaults 为未设置的字段填充默认值
func (c *AppConfig) ApplyDefaults() {
	if c.FPS == 0 {
		c.FPS = DefaultFPS
	}
	if c.Scale == 0 {
		c.Scale = DefaultScale
	}
	if c.Font.Size == 0 {
		c.Font.Size = DefaultFontSize
	}
	if c.SaveName == "" {
		c.SaveName = DefaultSaveName
	}
	if c.Start == "" && len(c.Pages) > 0 {
		c.Start = c.Pages[0].Name
	}
}

// Validate 验证应用配置
func (c *AppConfig) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %g", c.Scale)
	}
	if c.Font.Size <= 0 {
		return fmt.Errorf("font size must be positive, got %g", c.Font.Size)
	}
	if len(c.Pages) == 0 {
		return fmt.Errorf("at least one page is required")
	}

	seen := make(map[string]bool, len(c.Pages))
	for i, p := range c.Pages {
		if p.Name == "" {
			return fmt.Errorf("pages[%d]: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("pages[%d]: duplicate page name %q", i, p.Name)
		}
		seen[p.Name] = true
	}
	if !seen[c.Start] {
		return fmt.Errorf("start page %q is not in pages", c.Start)
	}
	return nil
}
