package frame

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/decker502/nerdlayout/pkg/config"
	"github.com/decker502/nerdlayout/pkg/signal"
)

func TestTimerInterval(t *testing.T) {
	tests := []struct {
		name string
		fps  int
		want time.Duration
	}{
		{"默认帧率", 0, time.Second / config.DefaultFPS},
		{"负数使用默认值", -5, time.Second / config.DefaultFPS},
		{"60 帧", 60, time.Second / 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := NewTimer(tt.fps, signal.NewQueue())
			if got := ft.Interval(); got != tt.want {
				t.Errorf("Interval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimerCancelClearsQueue(t *testing.T) {
	q := signal.NewQueue()
	ft := NewTimer(200, q)
	ctx, cancel := context.WithCancel(context.Background())

	err := ft.Run(ctx, func() error {
		q.Pop()
		if ft.Frames() == 2 {
			// 第三帧时留下未处理的信号再停止
			q.PushKey('a')
			q.PushKey('b')
			cancel()
		}
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if ft.Frames() < 3 {
		t.Errorf("Frames() = %d, want at least 3", ft.Frames())
	}
	if q.Len() != 0 {
		t.Errorf("queue has %d signals after stop, want 0", q.Len())
	}
}

func TestTimerFrameError(t *testing.T) {
	q := signal.NewQueue()
	q.PushKey('x')
	ft := NewTimer(200, q)
	boom := errors.New("boom")

	err := ft.Run(context.Background(), func() error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want boom", err)
	}
	if ft.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", ft.Frames())
	}
	if q.Len() != 0 {
		t.Errorf("queue not cleared after error")
	}
}
