package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage_Constructors(t *testing.T) {
	assert.Equal(t, &Message{Type: TypeData, Seq: 3, Text: "hi"}, NewData(3, "hi"))
	assert.Equal(t, &Message{Type: TypeAck, Seq: 3}, NewAck(3))
	assert.Equal(t, &Message{Type: TypeMessage, Text: "hi"}, NewLocal("hi"))

	assert.True(t, TypeData.IsWire())
	assert.True(t, TypeAck.IsWire())
	assert.False(t, TypeMessage.IsWire())
}

func TestMessage_Clone(t *testing.T) {
	m := NewData(1, "a")
	c := m.Clone()
	c.Text = "b"

	assert.Equal(t, "a", m.Text)
	assert.Nil(t, (*Message)(nil).Clone())
}

func TestMessage_Validate(t *testing.T) {
	tests := []struct {
		name string
		msg  *Message
		want error
	}{
		{"Data", NewData(1, "x"), nil},
		{"Ack", NewAck(9), nil},
		{"Local", NewLocal(""), nil},
		{"Unknown", &Message{Type: "PING"}, nil},
		{"DataZeroSeq", NewData(0, "x"), ErrInvalidSeq},
		{"AckZeroSeq", NewAck(0), ErrInvalidSeq},
		{"EmptyType", &Message{Seq: 1}, ErrEmptyMessageType},
		{"Nil", nil, ErrInvalidMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMessage_String(t *testing.T) {
	assert.Equal(t, `DATA{seq=2, text="x"}`, NewData(2, "x").String())
	assert.Equal(t, `ACK{seq=2}`, NewAck(2).String())
	assert.Equal(t, `MESSAGE{text="x"}`, NewLocal("x").String())
	assert.Equal(t, `PING{}`, (&Message{Type: "PING"}).String())
	assert.Equal(t, "<nil>", (*Message)(nil).String())
}
