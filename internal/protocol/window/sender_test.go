package window

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-guarantees/internal/protocol/prototest"
	"github.com/dep2p/go-guarantees/pkg/types"
)

func newSender(t *testing.T, opts ...Option) *Sender {
	t.Helper()
	s, err := New("receiver", opts...)
	require.NoError(t, err)
	return s
}

func input(s *Sender, ctx *prototest.MockContext, texts ...string) {
	for _, text := range texts {
		s.OnLocalMessage(types.NewLocal(text), ctx)
	}
}

func inputN(s *Sender, ctx *prototest.MockContext, n int) {
	for i := 1; i <= n; i++ {
		input(s, ctx, fmt.Sprintf("m%d", i))
	}
}

func ack(s *Sender, ctx *prototest.MockContext, seqs ...uint64) {
	for _, seq := range seqs {
		s.OnMessage(types.NewAck(seq), "receiver", ctx)
	}
}

func seqRange(from, to uint64) []uint64 {
	var out []uint64
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// ============================================================================
//                              构造
// ============================================================================

func TestNew(t *testing.T) {
	s := newSender(t)
	assert.Equal(t, uint64(1), s.NextSeq())
	assert.Equal(t, uint64(1), s.Base())
	assert.Zero(t, s.InFlight())
	assert.False(t, s.TimerActive())

	tests := []struct {
		name     string
		receiver string
		opts     []Option
		want     error
	}{
		{"EmptyReceiver", "", nil, ErrEmptyReceiver},
		{"ZeroWindow", "r", []Option{WithWindow(0)}, ErrInvalidWindow},
		{"ZeroTimeout", "r", []Option{WithTimeout(0)}, ErrInvalidTimeout},
		{"EmptyTimerName", "r", []Option{WithTimerName("")}, ErrEmptyTimerName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.receiver, tt.opts...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// ============================================================================
//                              窗口与排队
// ============================================================================

func TestSender_WindowFull(t *testing.T) {
	s := newSender(t, WithWindow(10))
	ctx := prototest.NewMockContext()

	inputN(s, ctx, 15)

	assert.Equal(t, seqRange(1, 10), ctx.SentSeqs(types.TypeData))
	for _, sent := range ctx.Sent {
		assert.Equal(t, "receiver", sent.To)
	}
	assert.Equal(t, 5, s.Pending())
	assert.Equal(t, 10, s.InFlight())

	require.Len(t, ctx.TimersSet, 1, "timer armed exactly once")
	assert.Equal(t, prototest.TimerCall{Name: "rtx", Duration: 6500 * time.Millisecond}, ctx.TimersSet[0])
	assert.Empty(t, ctx.TimersCancelled)
}

func TestSender_AckSlidesWindow(t *testing.T) {
	s := newSender(t, WithWindow(10))
	ctx := prototest.NewMockContext()
	inputN(s, ctx, 15)
	ctx.Reset()

	ack(s, ctx, 1)

	assert.Equal(t, uint64(2), s.Base())
	assert.Equal(t, []uint64{11}, ctx.SentSeqs(types.TypeData))
	assert.Equal(t, "m11", ctx.SentOfType(types.TypeData)[0].Text)
	assert.Equal(t, 4, s.Pending())

	// base 前移：先取消再重新激活
	assert.Equal(t, []string{"rtx"}, ctx.TimersCancelled)
	assert.Len(t, ctx.TimersSet, 1)
	assert.True(t, ctx.IsActive("rtx"))
}

func TestSender_OutOfOrderAck(t *testing.T) {
	s := newSender(t)
	ctx := prototest.NewMockContext()
	inputN(s, ctx, 3)
	ctx.Reset()

	ack(s, ctx, 2)
	assert.Equal(t, uint64(1), s.Base(), "base blocked by seq 1")
	assert.Equal(t, 2, s.InFlight())
	assert.Empty(t, ctx.TimersSet)
	assert.Empty(t, ctx.TimersCancelled)

	ack(s, ctx, 1)
	assert.Equal(t, uint64(3), s.Base())
	assert.Len(t, ctx.TimersSet, 1)
	assert.Len(t, ctx.TimersCancelled, 1)

	ack(s, ctx, 3)
	assert.Equal(t, uint64(4), s.Base())
	assert.Zero(t, s.InFlight())
	assert.False(t, s.TimerActive())
	assert.False(t, ctx.IsActive("rtx"))
	assert.Len(t, ctx.TimersCancelled, 2)
}

func TestSender_DuplicateAck(t *testing.T) {
	s := newSender(t)
	ctx := prototest.NewMockContext()
	inputN(s, ctx, 3)

	ack(s, ctx, 1)
	ctx.Reset()

	ack(s, ctx, 1, 1, 99)
	assert.Equal(t, uint64(2), s.Base())
	assert.Equal(t, 2, s.InFlight())
	assert.Empty(t, ctx.Sent)
	assert.Empty(t, ctx.TimersSet)
	assert.Empty(t, ctx.TimersCancelled)
}

func TestSender_DrainsPendingInOrder(t *testing.T) {
	s := newSender(t, WithWindow(2))
	ctx := prototest.NewMockContext()
	inputN(s, ctx, 7)

	for seq := uint64(1); seq <= 7; seq++ {
		ack(s, ctx, seq)
	}

	data := ctx.SentOfType(types.TypeData)
	require.Len(t, data, 7)
	for i, m := range data {
		assert.Equal(t, uint64(i+1), m.Seq)
		assert.Equal(t, fmt.Sprintf("m%d", i+1), m.Text)
	}
	assert.Zero(t, s.Pending())
	assert.False(t, s.TimerActive())
}

// ============================================================================
//                              重传
// ============================================================================

func TestSender_RetransmitBaseOnly(t *testing.T) {
	s := newSender(t)
	ctx := prototest.NewMockContext()
	inputN(s, ctx, 3)
	ctx.Reset()

	ctx.Fire(s, "rtx")

	assert.Equal(t, []uint64{1}, ctx.SentSeqs(types.TypeData))
	assert.Len(t, ctx.TimersSet, 1, "timer re-armed")
	assert.Empty(t, ctx.TimersCancelled)
	assert.True(t, s.TimerActive())

	ack(s, ctx, 1)
	ctx.Reset()
	ctx.Fire(s, "rtx")
	assert.Equal(t, []uint64{2}, ctx.SentSeqs(types.TypeData))
}

func TestSender_TimerIgnored(t *testing.T) {
	s := newSender(t)
	ctx := prototest.NewMockContext()

	t.Run("Idle", func(t *testing.T) {
		ctx.Fire(s, "rtx")
		assert.Empty(t, ctx.Sent)
		assert.Empty(t, ctx.TimersSet)
	})

	t.Run("OtherName", func(t *testing.T) {
		inputN(s, ctx, 1)
		ctx.Reset()
		s.OnTimer("heartbeat", ctx)
		assert.Empty(t, ctx.Sent)
		assert.True(t, s.TimerActive())
	})
}

func TestSender_IgnoresUnknownMessages(t *testing.T) {
	rec := prototest.NewMockRecorder()
	s := newSender(t, WithRecorder(rec))
	ctx := prototest.NewMockContext()

	s.OnLocalMessage(types.NewData(1, "x"), ctx)
	s.OnMessage(types.NewData(1, "x"), "receiver", ctx)
	s.OnMessage(&types.Message{Type: "PING"}, "receiver", ctx)

	assert.Empty(t, ctx.Sent)
	assert.Equal(t, uint64(1), s.NextSeq())
	assert.Equal(t, 3, rec.Count(types.EventIgnored))
}

func TestSender_Recorder(t *testing.T) {
	rec := prototest.NewMockRecorder()
	s := newSender(t, WithWindow(2), WithRecorder(rec))
	ctx := prototest.NewMockContext()

	inputN(s, ctx, 3)
	assert.Equal(t, 2, rec.Count(types.EventDataSent))
	assert.Equal(t, 1, rec.Count(types.EventDataQueued))
	assert.Equal(t, 2, rec.Gauge(types.GaugeInFlight))
	assert.Equal(t, 1, rec.Gauge(types.GaugePending))

	ctx.Fire(s, "rtx")
	assert.Equal(t, 1, rec.Count(types.EventDataRetransmitted))

	ack(s, ctx, 1)
	assert.Equal(t, 1, rec.Count(types.EventAckReceived))
	assert.Equal(t, 3, rec.Count(types.EventDataSent))
	assert.Equal(t, 0, rec.Gauge(types.GaugePending))
}

// ============================================================================
//                              不变量
// ============================================================================

// TestSender_Invariants 随机交错输入、ACK 与超时，检查窗口与定时器不变量
func TestSender_Invariants(t *testing.T) {
	for _, window := range []int{1, 4, 10} {
		t.Run(fmt.Sprintf("window=%d", window), func(t *testing.T) {
			rng := rand.New(rand.NewSource(int64(window)))
			s := newSender(t, WithWindow(window))
			ctx := prototest.NewMockContext()

			const total = 200
			inputs := 0

			check := func() {
				require.LessOrEqual(t, s.NextSeq()-s.Base(), uint64(window))
				require.Equal(t, s.InFlight() > 0, s.TimerActive())
				require.Equal(t, s.TimerActive(), ctx.IsActive("rtx"))
			}

			for inputs < total || s.InFlight() > 0 || s.Pending() > 0 {
				switch r := rng.Intn(10); {
				case r < 4 && inputs < total:
					inputs++
					input(s, ctx, fmt.Sprintf("m%d", inputs))
				case r < 8 && s.InFlight() > 0:
					// 确认一个在途消息（可能乱序）
					seq := s.Base() + uint64(rng.Intn(int(s.NextSeq()-s.Base())))
					ack(s, ctx, seq)
				case ctx.IsActive("rtx"):
					ctx.Fire(s, "rtx")
				}
				check()
			}

			assert.Equal(t, uint64(total+1), s.NextSeq())
			assert.Equal(t, uint64(total+1), s.Base())

			seen := make(map[uint64]bool)
			for _, seq := range ctx.SentSeqs(types.TypeData) {
				seen[seq] = true
			}
			assert.Len(t, seen, total, "every input sent at least once")
		})
	}
}

// ============================================================================
//                              pendingQueue
// ============================================================================

func TestPendingQueue(t *testing.T) {
	var q pendingQueue
	for i := 0; i < 4; i++ {
		q.push(fmt.Sprint(i))
	}

	text, ok := q.pop()
	require.True(t, ok)
	assert.Equal(t, "0", text)

	q.compact()
	assert.Equal(t, 1, q.head, "less than half consumed")

	q.pop()
	q.compact()
	assert.Zero(t, q.head)
	assert.Equal(t, []string{"2", "3"}, q.items)
	assert.Equal(t, 2, q.len())

	q.pop()
	q.pop()
	_, ok = q.pop()
	assert.False(t, ok)
	q.compact()
	assert.Zero(t, q.len())
	assert.Empty(t, q.items)
}
