package alo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dep2p/go-guarantees/internal/protocol/prototest"
	"github.com/dep2p/go-guarantees/pkg/types"
)

func TestReceiver_DeliversAndAcksEveryArrival(t *testing.T) {
	rec := prototest.NewMockRecorder()
	r := NewReceiver(rec)
	ctx := prototest.NewMockContext()

	for _, seq := range []uint64{2, 1, 2} {
		r.OnMessage(types.NewData(seq, "t"), "sender", ctx)
	}

	assert.Len(t, ctx.Delivered(), 3, "duplicates delivered again")
	assert.Equal(t, []uint64{2, 1, 2}, ctx.SentSeqs(types.TypeAck))
	for _, sent := range ctx.Sent {
		assert.Equal(t, "sender", sent.To)
	}
	assert.Equal(t, 3, rec.Count(types.EventDelivered))
	assert.Equal(t, 3, rec.Count(types.EventAckSent))
}

func TestReceiver_IgnoresNonData(t *testing.T) {
	r := NewReceiver(nil)
	ctx := prototest.NewMockContext()

	r.OnMessage(types.NewAck(1), "sender", ctx)
	r.OnMessage(&types.Message{Type: "PING"}, "sender", ctx)
	r.OnLocalMessage(types.NewLocal("x"), ctx)
	r.OnTimer("rtx", ctx)

	assert.Empty(t, ctx.Sent)
	assert.Empty(t, ctx.Local)
}
