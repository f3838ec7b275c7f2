package eo

import (
	"fmt"

	"github.com/dep2p/go-guarantees/internal/util/logger"
	"github.com/dep2p/go-guarantees/pkg/interfaces"
	"github.com/dep2p/go-guarantees/pkg/types"
)

var log = logger.Logger("protocol/eo")

// Receiver 恰好一次接收方
type Receiver struct {
	maxGrowth int
	rec       interfaces.Recorder

	nextSeq uint64
	seen    *seenWindow
}

var _ interfaces.Process = (*Receiver)(nil)

// NewReceiver 创建接收方
func NewReceiver(opts ...Option) (*Receiver, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("eo receiver: %w", err)
	}

	r := &Receiver{
		maxGrowth: cfg.MaxGrowth,
		rec:       cfg.Recorder,
		nextSeq:   1,
		seen:      newSeenWindow(cfg.InitialWindow),
	}
	r.rec.Set(types.GaugeSeenCapacity, r.seen.capacity())
	return r, nil
}

// OnLocalMessage 接收方没有本地输入
func (r *Receiver) OnLocalMessage(*types.Message, interfaces.Context) {}

// OnMessage 去重投递 DATA 并回复 ACK
func (r *Receiver) OnMessage(msg *types.Message, from string, ctx interfaces.Context) {
	if msg.Type != types.TypeData {
		r.rec.Inc(types.EventIgnored)
		return
	}

	if msg.Seq < r.nextSeq {
		r.rec.Inc(types.EventDuplicate)
		r.ack(msg.Seq, from, ctx)
		return
	}

	offset := int(msg.Seq - r.nextSeq)
	if r.seen.ensure(offset, r.maxGrowth) {
		r.rec.Inc(types.EventSeenGrown)
		r.rec.Set(types.GaugeSeenCapacity, r.seen.capacity())
		log.Debug("去重位图扩容", "seq", msg.Seq, "nextSeq", r.nextSeq, "capacity", r.seen.capacity())
	}

	switch {
	case offset == 0:
		r.deliver(msg.Text, ctx)
		r.advance()
		for r.seen.get(0) {
			r.seen.set(0, false)
			r.advance()
		}
	case !r.seen.get(offset):
		r.seen.set(offset, true)
		r.deliver(msg.Text, ctx)
	default:
		r.rec.Inc(types.EventDuplicate)
	}

	r.ack(msg.Seq, from, ctx)
}

// OnTimer 接收方不使用定时器
func (r *Receiver) OnTimer(string, interfaces.Context) {}

func (r *Receiver) deliver(text string, ctx interfaces.Context) {
	ctx.SendLocal(types.NewLocal(text))
	r.rec.Inc(types.EventDelivered)
}

func (r *Receiver) ack(seq uint64, to string, ctx interfaces.Context) {
	ctx.Send(types.NewAck(seq), to)
	r.rec.Inc(types.EventAckSent)
}

func (r *Receiver) advance() {
	r.seen.advance()
	r.nextSeq++
}

// NextSeq 返回期望的下一个序列号
func (r *Receiver) NextSeq() uint64 { return r.nextSeq }

// SeenCapacity 返回去重位图容量
func (r *Receiver) SeenCapacity() int { return r.seen.capacity() }
