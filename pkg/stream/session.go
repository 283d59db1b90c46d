package stream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gonewx/gravity-jump/pkg/event"
	"github.com/gonewx/gravity-jump/pkg/world"
	"github.com/gorilla/websocket"
)

const (
	// maxMessageSize 客户端消息大小上限
	maxMessageSize = 4096
	// writeWait 单次写入超时
	writeWait = 2 * time.Second
	// inputBuffer 读协程到会话循环的通道容量
	inputBuffer = 16
)

// session 一个 websocket 连接对应的模拟会话
type session struct {
	conn  *websocket.Conn
	codec Codec
	opts  Options
	world *world.World

	jump    bool          // 最近一次收到的跳跃输入（电平）
	pending []event.Event // 两次推送之间产生的事件
	tick    int
}

func newSession(conn *websocket.Conn, codec Codec, planet string, opts Options) *session {
	s := &session{
		conn:  conn,
		codec: codec,
		opts:  opts,
		world: world.New(opts.Registry, world.Options{PlanetKey: planet}),
	}
	// 切换行星的事件不经过 Update 返回，单独收集
	s.world.Subscribe(func(e event.Event) {
		s.pending = append(s.pending, e)
	}, event.PlanetChanged)
	return s
}

// run 会话主循环，返回结束原因
func (s *session) run(ctx context.Context) error {
	defer s.conn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inputs := make(chan ClientMessage, inputBuffer)
	readErr := make(chan error, 1)
	go s.readLoop(ctx, inputs, readErr)

	if err := s.send(ServerMessage{Type: MsgHello, Planets: s.opts.Registry.Keys()}); err != nil {
		return err
	}
	if err := s.sendSnapshot(); err != nil {
		return err
	}

	interval := s.opts.tickInterval()
	dt := interval.Seconds()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.closeConn(websocket.CloseGoingAway, "server shutting down")
			return ctx.Err()

		case err := <-readErr:
			return err

		case msg := <-inputs:
			if err := s.apply(msg); err != nil {
				if sendErr := s.send(ServerMessage{Type: MsgError, Error: err.Error()}); sendErr != nil {
					return sendErr
				}
			}

		case <-ticker.C:
			s.step(dt)
			if len(s.pending) > 0 || s.tick%s.opts.SnapshotEvery == 0 {
				if err := s.sendSnapshot(); err != nil {
					return err
				}
			}
		}
	}
}

// step 推进一步模拟
func (s *session) step(dt float64) {
	s.tick++
	s.pending = append(s.pending, s.world.Update(dt, s.jump)...)
}

// apply 处理一条客户端消息
func (s *session) apply(msg ClientMessage) error {
	switch msg.Type {
	case MsgInput:
		s.jump = msg.Jump
	case MsgPlanet:
		if !s.opts.Registry.Has(msg.Key) {
			return fmt.Errorf("unknown planet %q", msg.Key)
		}
		s.world.SetPlanet(msg.Key)
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

func (s *session) sendSnapshot() error {
	snap := s.world.Snapshot()
	msg := ServerMessage{
		Type:     MsgSnapshot,
		Snapshot: &snap,
		Events:   toEventViews(s.pending),
	}
	s.pending = s.pending[:0]
	return s.send(msg)
}

// send 只在会话循环中调用，gorilla 连接同一时间只允许一个写者
func (s *session) send(msg ServerMessage) error {
	messageType, data, err := s.codec.Encode(msg)
	if err != nil {
		return err
	}
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(messageType, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", msg.Type, err)
	}
	return nil
}

func (s *session) closeConn(code int, reason string) {
	deadline := time.Now().Add(writeWait)
	s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
}

// readLoop 读取客户端消息并转发到 inputs，连接出错时把错误写入 errc 后退出
func (s *session) readLoop(ctx context.Context, inputs chan<- ClientMessage, errc chan<- error) {
	s.conn.SetReadLimit(maxMessageSize)
	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				err = errors.New("client closed connection")
			}
			errc <- err
			return
		}

		var msg ClientMessage
		if err := Decode(messageType, data, &msg); err != nil {
			// 无法解析的消息按未知类型处理，由会话循环回复错误
			msg = ClientMessage{Type: "invalid"}
		}

		select {
		case inputs <- msg:
		case <-ctx.Done():
			return
		}
	}
}
