package event

// Handler 处理指定类型的事件，ctx 由路由器的持有者传入
type Handler[T any] interface {
	// HandleEvent 在分发阶段被同步调用
	HandleEvent(ctx T, e Event)
	// EventTypes 声明关心的事件类型，注册时使用
	EventTypes() []Type
}

// HandlerFunc 把普通函数包装成 Handler
type HandlerFunc[T any] struct {
	Types []Type
	Fn    func(ctx T, e Event)
}

// HandleEvent 实现 Handler
func (h HandlerFunc[T]) HandleEvent(ctx T, e Event) {
	h.Fn(ctx, e)
}

// EventTypes 实现 Handler
func (h HandlerFunc[T]) EventTypes() []Type {
	return h.Types
}

// Router 把队列中的事件分发给注册的 Handler
//
//   - 单线程分发
//   - 同一类型可注册多个 Handler，按注册顺序调用
//   - 分发期间新 Push 的事件在同一次 DispatchAll 内继续处理
type Router[T any] struct {
	handlers map[Type][]Handler[T]
	queue    *Queue
}

// NewRouter 创建绑定到 queue 的路由器
func NewRouter[T any](queue *Queue) *Router[T] {
	return &Router[T]{
		handlers: make(map[Type][]Handler[T]),
		queue:    queue,
	}
}

// Register 按 Handler 声明的类型注册
func (r *Router[T]) Register(h Handler[T]) {
	for _, t := range h.EventTypes() {
		r.handlers[t] = append(r.handlers[t], h)
	}
}

// DispatchAll 消费全部待处理事件并分发
// 返回本次分发的事件（按处理顺序），便于调用者记录
func (r *Router[T]) DispatchAll(ctx T) []Event {
	var dispatched []Event
	for r.queue.Len() > 0 {
		for _, e := range r.queue.Consume() {
			for _, h := range r.handlers[e.Type] {
				h.HandleEvent(ctx, e)
			}
			dispatched = append(dispatched, e)
		}
	}
	return dispatched
}

// HandlerCount 返回某类型已注册的 Handler 数量
func (r *Router[T]) HandlerCount(t Type) int {
	return len(r.handlers[t])
}
