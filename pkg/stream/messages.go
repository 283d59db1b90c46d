package stream

import (
	"github.com/gonewx/gravity-jump/pkg/event"
	"github.com/gonewx/gravity-jump/pkg/world"
)

// 客户端消息类型
const (
	MsgInput  = "input"  // {"type":"input","jump":true}
	MsgPlanet = "planet" // {"type":"planet","key":"moon"}
)

// 服务端消息类型
const (
	MsgHello    = "hello"
	MsgSnapshot = "snapshot"
	MsgError    = "error"
)

// ClientMessage 客户端发来的消息
type ClientMessage struct {
	Type string `json:"type" msgpack:"type"`
	Jump bool   `json:"jump,omitempty" msgpack:"jump,omitempty"`
	Key  string `json:"key,omitempty" msgpack:"key,omitempty"`
}

// EventView 事件的线上格式
type EventView struct {
	Type    string  `json:"type" msgpack:"type"`
	Time    float64 `json:"time" msgpack:"time"`
	Payload any     `json:"payload,omitempty" msgpack:"payload,omitempty"`
}

// ServerMessage 服务端推送的消息
type ServerMessage struct {
	Type     string          `json:"type" msgpack:"type"`
	Planets  []string        `json:"planets,omitempty" msgpack:"planets,omitempty"`
	Snapshot *world.Snapshot `json:"snapshot,omitempty" msgpack:"snapshot,omitempty"`
	Events   []EventView     `json:"events,omitempty" msgpack:"events,omitempty"`
	Error    string          `json:"error,omitempty" msgpack:"error,omitempty"`
}

func toEventViews(events []event.Event) []EventView {
	if len(events) == 0 {
		return nil
	}
	views := make([]EventView, len(events))
	for i, e := range events {
		views[i] = EventView{Type: e.Type.String(), Time: e.Time, Payload: e.Payload}
	}
	return views
}
