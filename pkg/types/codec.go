package types

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ============================================================================
//                              JSON 编解码
// ============================================================================

// messageWire JSON 线上格式: {"type": "DATA", "data": {...}}
type messageWire struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type dataPayload struct {
	Seq  uint64 `json:"seq"`
	Text string `json:"text"`
}

type ackPayload struct {
	Seq uint64 `json:"seq"`
}

type localPayload struct {
	Text string `json:"text"`
}

// MarshalJSON 实现 json.Marshaler
func (m *Message) MarshalJSON() ([]byte, error) {
	data, err := m.payloadJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(messageWire{Type: m.Type, Data: data})
}

func (m *Message) payloadJSON() ([]byte, error) {
	var payload any
	switch m.Type {
	case TypeData:
		payload = dataPayload{Seq: m.Seq, Text: m.Text}
	case TypeAck:
		payload = ackPayload{Seq: m.Seq}
	case TypeMessage:
		payload = localPayload{Text: m.Text}
	default:
		payload = struct{}{}
	}
	return json.Marshal(payload)
}

// UnmarshalJSON 实现 json.Unmarshaler
//
// 未知类型只保留 Type 字段，payload 被丢弃。
func (m *Message) UnmarshalJSON(b []byte) error {
	var wire messageWire
	if err := json.Unmarshal(b, &wire); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	out := Message{Type: wire.Type}
	switch wire.Type {
	case TypeData:
		var p dataPayload
		if err := unmarshalPayload(wire.Data, &p); err != nil {
			return err
		}
		out.Seq, out.Text = p.Seq, p.Text
	case TypeAck:
		var p ackPayload
		if err := unmarshalPayload(wire.Data, &p); err != nil {
			return err
		}
		out.Seq = p.Seq
	case TypeMessage:
		var p localPayload
		if err := unmarshalPayload(wire.Data, &p); err != nil {
			return err
		}
		out.Text = p.Text
	}

	if err := out.Validate(); err != nil {
		return err
	}
	*m = out
	return nil
}

func unmarshalPayload(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: missing data", ErrInvalidMessage)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	return nil
}

// ============================================================================
//                              二进制编解码
// ============================================================================

// 二进制格式使用 protobuf wire 编码，字段号固定：
//
//	1: type (bytes)
//	2: seq  (varint)
//	3: text (bytes)
const (
	fieldType protowire.Number = 1
	fieldSeq  protowire.Number = 2
	fieldText protowire.Number = 3
)

// MarshalBinary 实现 encoding.BinaryMarshaler
func (m *Message) MarshalBinary() ([]byte, error) {
	if m.Type == "" {
		return nil, ErrEmptyMessageType
	}
	b := make([]byte, 0, 8+len(m.Type)+len(m.Text))
	b = protowire.AppendTag(b, fieldType, protowire.BytesType)
	b = protowire.AppendString(b, string(m.Type))
	if m.Seq != 0 {
		b = protowire.AppendTag(b, fieldSeq, protowire.VarintType)
		b = protowire.AppendVarint(b, m.Seq)
	}
	if m.Text != "" {
		b = protowire.AppendTag(b, fieldText, protowire.BytesType)
		b = protowire.AppendString(b, m.Text)
	}
	return b, nil
}

// UnmarshalBinary 实现 encoding.BinaryUnmarshaler
//
// 未知字段被跳过，便于前向兼容。
func (m *Message) UnmarshalBinary(b []byte) error {
	var out Message
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrInvalidMessage, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldType && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return fmt.Errorf("%w: type: %v", ErrInvalidMessage, protowire.ParseError(n))
			}
			out.Type = MessageType(v)
			b = b[n:]
		case num == fieldSeq && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return fmt.Errorf("%w: seq: %v", ErrInvalidMessage, protowire.ParseError(n))
			}
			out.Seq = v
			b = b[n:]
		case num == fieldText && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return fmt.Errorf("%w: text: %v", ErrInvalidMessage, protowire.ParseError(n))
			}
			out.Text = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("%w: field %d: %v", ErrInvalidMessage, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	if err := out.Validate(); err != nil {
		return err
	}
	*m = out
	return nil
}

// EncodedSize 返回消息 JSON 编码后的字节数（用于流量统计）
func (m *Message) EncodedSize() int {
	b, err := m.MarshalJSON()
	if err != nil {
		return 0
	}
	return len(b)
}

// WireSize 返回类型名与 payload JSON 的字节数之和（网络流量统计口径）
func (m *Message) WireSize() int {
	data, err := m.payloadJSON()
	if err != nil {
		return len(m.Type)
	}
	return len(m.Type) + len(data)
}
