// Package main 布局文件检查工具
//
// 解析布局文件并以表格打印所有实体。可以用 -click 和 -type 在无窗口的
// 页面上回放输入，打印回放之后的组件状态。
//
// 用法:
//
//	go run ./cmd/layoutdump [-config main.yaml] [-click 5,45] [-type Bob] data/pages/main.txt
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/decker502/nerdlayout/pkg/app/frame"
	"github.com/decker502/nerdlayout/pkg/config"
	"github.com/decker502/nerdlayout/pkg/layout"
	"github.com/decker502/nerdlayout/pkg/page"
	"github.com/decker502/nerdlayout/pkg/signal"
	"github.com/decker502/nerdlayout/pkg/surface"
)

type clickList []string

func (c *clickList) String() string { return strings.Join(*c, " ") }
func (c *clickList) Set(v string) error { *c = append(*c, v); return nil }

var (
	verbose    = flag.Bool("verbose", false, "显示回调日志")
	configFile = flag.String("config", "", "页面配置文件，默认查找同名的 .yaml 或 .cfg")
	typed      = flag.String("type", "", "回放完点击后输入的文本")
	fps        = flag.Int("fps", 200, "回放帧率")
)

var clicks clickList

func main() {
	flag.Var(&clicks, "click", "按顺序回放的点击坐标 x,y（可重复）")
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: layoutdump [flags] layout.txt")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if err := run(flag.Arg(0), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "layoutdump: %v\n", err)
		os.Exit(1)
	}
}

func run(layoutPath string, out io.Writer) error {
	dir := os.DirFS(filepath.Dir(layoutPath))
	base := filepath.Base(layoutPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	cfgName := *configFile
	if cfgName == "" {
		for _, candidate := range []string{name + ".yaml", name + ".yml", name + ".cfg"} {
			if _, err := os.Stat(filepath.Join(filepath.Dir(layoutPath), candidate)); err == nil {
				cfgName = candidate
				break
			}
		}
		if cfgName == "" {
			return fmt.Errorf("no config found for %s, use -config", layoutPath)
		}
	}
	lc, err := config.LoadLayoutConfig(dir, cfgName)
	if err != nil {
		return err
	}

	queue := signal.NewQueue()
	p := page.New(lc, surface.NewDiscard(), queue)
	p.SetHooks(logHooks{})
	m := page.NewManager(dir)
	if err := m.AddPage(name, p); err != nil {
		return err
	}

	for _, c := range clicks {
		x, y, err := parseClick(c)
		if err != nil {
			return err
		}
		queue.PushMouse(signal.ButtonLeft, x, y)
		queue.PushMouse(signal.ButtonUp, x, y)
	}
	for _, r := range *typed {
		queue.PushKey(signal.Code(r))
	}
	if err := replay(m, queue); err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, renderPage(name, p))
	return err
}

// replay 逐帧渲染直到队列为空
func replay(m *page.Manager, q *signal.Queue) error {
	if q.Len() == 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	timer := frame.NewTimer(*fps, q)
	err := timer.Run(ctx, func() error {
		if q.Len() == 0 {
			cancel()
			return nil
		}
		return m.Render()
	})
	if errors.Is(err, context.Canceled) {
		log.Printf("[Replay] %d frames", timer.Frames())
		return nil
	}
	return err
}

// parseClick 解析 "x,y"
func parseClick(s string) (int, int, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid click %q, want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid click %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid click %q: %w", s, err)
	}
	return x, y, nil
}

// logHooks 把回调事件写入日志
type logHooks struct{ page.NopHooks }

func (logHooks) OnButtonClick(p *page.Page, e *layout.Entity) error {
	log.Printf("[Hook] button %s", e.ID)
	return nil
}

func (logHooks) OnListClick(p *page.Page, e *layout.Entity, text string) error {
	log.Printf("[Hook] list %s: %s", e.ID, text)
	return nil
}

func (logHooks) OnToolbarClick(p *page.Page, e *layout.Entity, label string) error {
	log.Printf("[Hook] toolbar %s: %s", e.ID, label)
	return nil
}
