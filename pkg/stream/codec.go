package stream

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec 会话使用的消息编码
type Codec string

const (
	CodecJSON    Codec = "json"
	CodecMsgpack Codec = "msgpack"
)

// ParseCodec 解析查询参数中的编码名，空串和未知值都使用 JSON
func ParseCodec(name string) Codec {
	if Codec(name) == CodecMsgpack {
		return CodecMsgpack
	}
	return CodecJSON
}

// Encode 编码一条服务端消息
//
// 返回:
//   - int: websocket 帧类型（JSON 用文本帧，msgpack 用二进制帧）
//   - []byte: 编码后的数据
func (c Codec) Encode(v any) (int, []byte, error) {
	switch c {
	case CodecMsgpack:
		data, err := msgpack.Marshal(v)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode msgpack: %w", err)
		}
		return websocket.BinaryMessage, data, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return websocket.TextMessage, data, nil
	}
}

// Decode 按帧类型解码客户端消息，与会话编码无关
func Decode(messageType int, data []byte, v any) error {
	switch messageType {
	case websocket.BinaryMessage:
		if err := msgpack.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to decode msgpack: %w", err)
		}
	case websocket.TextMessage:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to decode json: %w", err)
		}
	default:
		return fmt.Errorf("unsupported message type %d", messageType)
	}
	return nil
}
