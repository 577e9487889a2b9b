package signal

// Queue 是 FIFO 信号缓冲
//
// 事件处理和帧更新在同一个 goroutine 中执行，因此不加锁。
type Queue struct {
	items []Signal
}

// NewQueue 创建空队列
func NewQueue() *Queue {
	return &Queue{items: make([]Signal, 0, 16)}
}

// Push 追加信号，None 信号被忽略
func (q *Queue) Push(s Signal) {
	if s.IsNone() {
		return
	}
	q.items = append(q.items, s)
}

// PushKey 追加键盘信号
func (q *Queue) PushKey(c Code) { q.Push(Key(c)) }

// PushMouse 追加鼠标信号
func (q *Queue) PushMouse(b Button, x, y int) { q.Push(MouseAt(b, x, y)) }

// Pop 弹出最早的信号
func (q *Queue) Pop() Signal {
	if len(q.items) == 0 {
		return Signal{}
	}
	s := q.items[0]
	q.items[0] = Signal{}
	q.items = q.items[1:]
	return s
}

// PeekKey 查看最早的键盘信号但不移除
func (q *Queue) PeekKey() Signal {
	for _, s := range q.items {
		if !s.IsMouse() {
			return s
		}
	}
	return Signal{}
}

// Len 缓冲中的信号数量
func (q *Queue) Len() int { return len(q.items) }

// Clear 丢弃所有缓冲信号
func (q *Queue) Clear() {
	q.items = q.items[:0]
}
