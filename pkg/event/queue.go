package event

// Queue 单线程帧内事件队列
// 模拟世界只由一个 goroutine 驱动，这里不做同步
type Queue struct {
	events []Event
	now    float64
}

// NewQueue 创建空队列
func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 8)}
}

// SetTime 设置当前模拟时间，之后 Push 的事件都打上这个时间戳
func (q *Queue) SetTime(now float64) {
	q.now = now
}

// Push 追加事件
func (q *Queue) Push(e Event) {
	e.Time = q.now
	q.events = append(q.events, e)
}

// Consume 返回所有待处理事件（FIFO）并清空队列
// 返回的切片归调用者所有
func (q *Queue) Consume() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = make([]Event, 0, cap(out))
	return out
}

// Len 返回待处理事件数量
func (q *Queue) Len() int {
	return len(q.events)
}
