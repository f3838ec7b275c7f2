package eo

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-guarantees/internal/protocol/prototest"
	"github.com/dep2p/go-guarantees/pkg/types"
)

func newReceiver(t *testing.T, opts ...Option) *Receiver {
	t.Helper()
	r, err := NewReceiver(opts...)
	require.NoError(t, err)
	return r
}

func receive(r *Receiver, ctx *prototest.MockContext, seqs ...uint64) {
	for _, seq := range seqs {
		r.OnMessage(types.NewData(seq, fmt.Sprint(seq)), "sender", ctx)
	}
}

func TestNewReceiver_Validation(t *testing.T) {
	_, err := NewReceiver(WithInitialWindow(0))
	assert.ErrorIs(t, err, ErrInvalidSeenWindow)

	_, err = NewReceiver(WithInitialWindow(64), WithMaxGrowth(32))
	assert.ErrorIs(t, err, ErrInvalidGrowth)
}

func TestReceiver_DedupWithoutOrdering(t *testing.T) {
	r := newReceiver(t)
	ctx := prototest.NewMockContext()

	receive(r, ctx, 3, 1, 3, 2, 1, 4)

	assert.Equal(t, []string{"3", "1", "2", "4"}, ctx.Delivered(), "delivered on arrival")
	assert.Equal(t, []uint64{3, 1, 3, 2, 1, 4}, ctx.SentSeqs(types.TypeAck), "every arrival acked")
	assert.Equal(t, uint64(5), r.NextSeq())
}

func TestReceiver_AdvanceSkipsSeen(t *testing.T) {
	r := newReceiver(t)
	ctx := prototest.NewMockContext()

	receive(r, ctx, 2, 3, 5)
	assert.Equal(t, uint64(1), r.NextSeq())

	receive(r, ctx, 1)
	assert.Equal(t, uint64(4), r.NextSeq(), "advanced over 2 and 3")

	receive(r, ctx, 4)
	assert.Equal(t, uint64(6), r.NextSeq())

	// 已越过的位被清除，绕回同一物理槽位的新序列号仍能投递
	for seq := uint64(6); seq <= 100; seq++ {
		receive(r, ctx, seq)
	}
	assert.Len(t, ctx.Delivered(), 100)
	assert.Equal(t, DefaultInitialWindow, r.SeenCapacity(), "in-order traffic never grows the bitmap")
}

// TestReceiver_GrowFromFarAhead seq 100 先到达：32 -> 64 -> 128
func TestReceiver_GrowFromFarAhead(t *testing.T) {
	rec := prototest.NewMockRecorder()
	r := newReceiver(t, WithRecorder(rec))
	ctx := prototest.NewMockContext()

	receive(r, ctx, 100)
	assert.GreaterOrEqual(t, r.SeenCapacity(), 101)
	assert.Equal(t, 128, r.SeenCapacity())
	assert.Equal(t, 1, rec.Count(types.EventSeenGrown))
	assert.Equal(t, 128, rec.Gauge(types.GaugeSeenCapacity))

	rng := rand.New(rand.NewSource(7))
	order := rng.Perm(99)
	for _, i := range order {
		receive(r, ctx, uint64(i+1))
		if i%3 == 0 {
			receive(r, ctx, uint64(i+1), 100)
		}
	}

	delivered := ctx.Delivered()
	require.Len(t, delivered, 100)
	counts := make(map[string]int)
	for _, text := range delivered {
		counts[text]++
	}
	for seq := 1; seq <= 100; seq++ {
		assert.Equal(t, 1, counts[fmt.Sprint(seq)], "seq %d", seq)
	}
	assert.Equal(t, uint64(101), r.NextSeq())
}

func TestReceiver_ExactFitBeyondMaxGrowth(t *testing.T) {
	r := newReceiver(t, WithInitialWindow(4), WithMaxGrowth(16))
	ctx := prototest.NewMockContext()

	receive(r, ctx, 41)
	assert.Equal(t, 41, r.SeenCapacity(), "offset 40 needs exact fit 41")

	receive(r, ctx, 41, 1)
	assert.Equal(t, []string{"41", "1"}, ctx.Delivered())
}

func TestReceiver_GrowPreservesRelativeOffsets(t *testing.T) {
	r := newReceiver(t, WithInitialWindow(4))
	ctx := prototest.NewMockContext()

	// head 移到非零位置后再扩容
	receive(r, ctx, 1, 2, 3, 5)
	require.Equal(t, uint64(4), r.NextSeq())

	receive(r, ctx, 20)
	assert.Equal(t, 32, r.SeenCapacity())

	receive(r, ctx, 5, 20)
	assert.Len(t, ctx.Delivered(), 5, "5 and 20 remain marked after re-homing")

	receive(r, ctx, 4)
	assert.Equal(t, uint64(6), r.NextSeq())
}

func TestReceiver_IgnoresNonData(t *testing.T) {
	r := newReceiver(t)
	ctx := prototest.NewMockContext()

	r.OnMessage(types.NewAck(1), "sender", ctx)
	r.OnMessage(&types.Message{Type: "PING"}, "sender", ctx)

	assert.Empty(t, ctx.Sent)
	assert.Empty(t, ctx.Local)
}

// TestReceiver_ExactlyOnce 随机重复与乱序下每个序列号恰好投递一次
func TestReceiver_ExactlyOnce(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		r := newReceiver(t)
		ctx := prototest.NewMockContext()

		const n = 500
		var arrivals []uint64
		for seq := uint64(1); seq <= n; seq++ {
			for k := 0; k < 1+rng.Intn(3); k++ {
				arrivals = append(arrivals, seq)
			}
		}
		for i := range arrivals {
			j := i + rng.Intn(40)
			if j < len(arrivals) {
				arrivals[i], arrivals[j] = arrivals[j], arrivals[i]
			}
		}
		receive(r, ctx, arrivals...)

		delivered := ctx.Delivered()
		require.Len(t, delivered, n, "seed %d", seed)
		seqs := make([]int, 0, n)
		for _, text := range delivered {
			seq, err := strconv.Atoi(text)
			require.NoError(t, err)
			seqs = append(seqs, seq)
		}
		sort.Ints(seqs)
		for i, seq := range seqs {
			require.Equal(t, i+1, seq)
		}
		assert.Len(t, ctx.SentOfType(types.TypeAck), len(arrivals))
	}
}

func TestSeenWindow(t *testing.T) {
	w := newSeenWindow(70)
	assert.Len(t, w.words, 2)

	w.set(69, true)
	w.set(0, true)
	assert.True(t, w.get(69))
	assert.True(t, w.get(0))
	assert.False(t, w.get(1))

	w.advance()
	// 旧起点被清除，原偏移 69 现在是 68
	assert.True(t, w.get(68))
	assert.False(t, w.get(69))

	assert.False(t, w.ensure(69, 1024))
	assert.True(t, w.ensure(70, 1024))
	assert.Equal(t, 140, w.capacity())
	assert.Zero(t, w.head)
	assert.True(t, w.get(68))
}
