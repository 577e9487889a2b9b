package layout

import (
	"errors"
	"testing"
)

// TestNewLineReader 测试三种换行方式
func TestNewLineReader(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{"空文件", "", nil},
		{"Unix", "a\nb\n", []string{"a", "b"}},
		{"Windows", "a\r\nb\r\n", []string{"a", "b"}},
		{"Mac", "a\rb", []string{"a", "b"}},
		{"保留中间空行", "a\n\nb", []string{"a", "", "b"}},
		{"无结尾换行", "abc", []string{"abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewLineReader([]byte(tt.data))
			if r.Count() != len(tt.want) {
				t.Fatalf("Count() = %d, want %d", r.Count(), len(tt.want))
			}
			for i, want := range tt.want {
				got, err := r.Next()
				if err != nil {
					t.Fatalf("Next() #%d error: %v", i, err)
				}
				if got != want {
					t.Errorf("line %d = %q, want %q", i, got, want)
				}
			}
			if r.HasMore() {
				t.Error("HasMore() should be false at the end")
			}
			if _, err := r.Next(); !errors.Is(err, ErrNoMoreLines) {
				t.Errorf("Next() at end error = %v, want ErrNoMoreLines", err)
			}
		})
	}
}

// TestLoadGrid 短行补空白，长行截断
func TestLoadGrid(t *testing.T) {
	r := NewLineReaderFromLines([]string{"ab", "abcdef", "rest"})

	g, err := LoadGrid(r, 4, 2)
	if err != nil {
		t.Fatalf("LoadGrid() error: %v", err)
	}
	if g.Width() != 4 || g.Height() != 2 {
		t.Fatalf("size = %dx%d, want 4x2", g.Width(), g.Height())
	}
	if got := g.String(); got != "ab  \nabcd\n" {
		t.Errorf("grid = %q, want %q", got, "ab  \nabcd\n")
	}
	if line, _ := r.Next(); line != "rest" {
		t.Errorf("next line after grid = %q, want \"rest\"", line)
	}

	if _, err := LoadGrid(NewLineReaderFromLines([]string{"x"}), 4, 2); !errors.Is(err, ErrNoMoreLines) {
		t.Errorf("LoadGrid() with too few lines error = %v, want ErrNoMoreLines", err)
	}
}

// TestGridCellAccess 越界读写安全
func TestGridCellAccess(t *testing.T) {
	g := NewGrid(3, 2)
	g.Set(1, 1, '+')
	g.Set(5, 5, '+')

	if g.Cell(1, 1) != '+' {
		t.Errorf("Cell(1,1) = %q, want '+'", g.Cell(1, 1))
	}
	if g.Cell(-1, 0) != Blank || g.Cell(3, 0) != Blank {
		t.Error("out-of-range Cell should return Blank")
	}
	g.Clear()
	if g.HasEntity() {
		t.Error("HasEntity() should be false after Clear")
	}
}
