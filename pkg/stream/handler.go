// Package stream 通过 websocket 在服务端运行模拟并推送快照
//
// 每个连接一个会话：读协程只负责把客户端消息转发到通道，
// 会话循环是唯一访问 world.World 的协程，按固定 tick 推进模拟。
package stream

import (
	"context"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/gorilla/websocket"
)

// Options 流处理器参数
type Options struct {
	// TickRate 每秒模拟步数，默认 60
	TickRate int
	// SnapshotEvery 每隔多少步推送一次快照，默认 2（有事件的步总是推送）
	SnapshotEvery int
	// Registry 行星表，nil 使用内置行星表
	Registry *config.PlanetRegistry
	// CheckOrigin 跨域检查，nil 时允许所有来源
	CheckOrigin func(r *http.Request) bool
}

func (o Options) withDefaults() Options {
	if o.TickRate <= 0 {
		o.TickRate = 60
	}
	if o.SnapshotEvery <= 0 {
		o.SnapshotEvery = 2
	}
	if o.Registry == nil {
		o.Registry = config.DefaultPlanetRegistry()
	}
	if o.CheckOrigin == nil {
		o.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return o
}

// Handler websocket 入口，挂载到 /ws/sim
type Handler struct {
	opts     Options
	upgrader websocket.Upgrader

	ctx    context.Context
	cancel context.CancelFunc
	active atomic.Int32
}

// NewHandler 创建流处理器
func NewHandler(opts Options) *Handler {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &Handler{
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     opts.CheckOrigin,
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// ServeHTTP 升级连接并运行会话直到断开
//
// 查询参数:
//   - codec: "msgpack" 使用二进制帧，否则 JSON
//   - planet: 初始行星
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Stream] upgrade failed: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	stop := context.AfterFunc(h.ctx, cancel)
	defer stop()

	query := r.URL.Query()
	s := newSession(conn, ParseCodec(query.Get("codec")), query.Get("planet"), h.opts)

	n := h.active.Add(1)
	log.Printf("[Stream] session started from %s (codec=%s, active=%d)", r.RemoteAddr, s.codec, n)
	err = s.run(ctx)
	n = h.active.Add(-1)
	log.Printf("[Stream] session ended from %s: %v (active=%d)", r.RemoteAddr, err, n)
}

// ActiveSessions 当前会话数
func (h *Handler) ActiveSessions() int {
	return int(h.active.Load())
}

// Close 结束所有会话，之后的新连接会立即结束
func (h *Handler) Close() {
	h.cancel()
}

// tickInterval 每步的时间间隔
func (o Options) tickInterval() time.Duration {
	return time.Second / time.Duration(o.TickRate)
}
