package types

import "fmt"

// ============================================================================
//                              MessageType - 消息类型
// ============================================================================

// MessageType 消息类型
//
// 类型名称是协议的一部分，字段名固定。未知类型必须被静默忽略。
type MessageType string

const (
	// TypeData 应用数据（线上）
	TypeData MessageType = "DATA"
	// TypeAck 确认（线上）
	TypeAck MessageType = "ACK"
	// TypeMessage 应用消息（本地）
	TypeMessage MessageType = "MESSAGE"
)

// IsWire 是否为线上消息类型
func (t MessageType) IsWire() bool {
	return t == TypeData || t == TypeAck
}

// ============================================================================
//                              Message - 消息
// ============================================================================

// Message 协议消息
//
// 不同类型使用的字段：
//   - DATA:    Seq, Text
//   - ACK:     Seq
//   - MESSAGE: Text
type Message struct {
	// Type 消息类型
	Type MessageType

	// Seq 序列号（DATA / ACK）
	Seq uint64

	// Text 应用文本（DATA / MESSAGE）
	Text string
}

// NewData 创建 DATA 消息
func NewData(seq uint64, text string) *Message {
	return &Message{Type: TypeData, Seq: seq, Text: text}
}

// NewAck 创建 ACK 消息
func NewAck(seq uint64) *Message {
	return &Message{Type: TypeAck, Seq: seq}
}

// NewLocal 创建本地 MESSAGE 消息
func NewLocal(text string) *Message {
	return &Message{Type: TypeMessage, Text: text}
}

// Clone 返回消息副本
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

// Validate 校验已知类型的必需字段
//
// 未知类型不做校验，由接收进程忽略。
func (m *Message) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil message", ErrInvalidMessage)
	}
	if m.Type == "" {
		return ErrEmptyMessageType
	}
	switch m.Type {
	case TypeData, TypeAck:
		if m.Seq < 1 {
			return fmt.Errorf("%w: %s seq=%d", ErrInvalidSeq, m.Type, m.Seq)
		}
	}
	return nil
}

// String 返回消息的可读表示
func (m *Message) String() string {
	if m == nil {
		return "<nil>"
	}
	switch m.Type {
	case TypeData:
		return fmt.Sprintf("DATA{seq=%d, text=%q}", m.Seq, m.Text)
	case TypeAck:
		return fmt.Sprintf("ACK{seq=%d}", m.Seq)
	case TypeMessage:
		return fmt.Sprintf("MESSAGE{text=%q}", m.Text)
	default:
		return fmt.Sprintf("%s{}", m.Type)
	}
}
