// Package frame 不依赖窗口的固定频率帧驱动
package frame

import (
	"context"
	"time"

	"github.com/decker502/nerdlayout/pkg/config"
	"github.com/decker502/nerdlayout/pkg/signal"
)

// Timer 无窗口运行时的帧驱动
//
// 停止时丢弃队列中未处理的信号。
type Timer struct {
	interval time.Duration
	queue    *signal.Queue
	frames   int
}

// NewTimer 以 fps 帧每秒驱动，fps 非正时使用默认值
func NewTimer(fps int, q *signal.Queue) *Timer {
	t := &Timer{queue: q}
	t.SetFPS(fps)
	return t
}

// SetFPS 修改帧频率，下一次 Run 生效
func (t *Timer) SetFPS(fps int) {
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	t.interval = time.Second / time.Duration(fps)
}

// Interval 两帧之间的间隔
func (t *Timer) Interval() time.Duration { return t.interval }

// Frames 已执行的帧数
func (t *Timer) Frames() int { return t.frames }

// Run 每个 tick 调用一次 frame，直到 ctx 结束或 frame 返回错误
//
// ctx 结束时返回 ctx.Err()。
func (t *Timer) Run(ctx context.Context, frame func() error) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	defer t.queue.Clear()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := frame(); err != nil {
				return err
			}
			t.frames++
		}
	}
}
