package amo

import (
	"fmt"

	"github.com/dep2p/go-guarantees/internal/protocol/reorder"
	"github.com/dep2p/go-guarantees/internal/util/logger"
	"github.com/dep2p/go-guarantees/pkg/interfaces"
	"github.com/dep2p/go-guarantees/pkg/types"
)

var log = logger.Logger("protocol/amo")

// Receiver 至多一次接收方
type Receiver struct {
	maxBuffer int
	rec       interfaces.Recorder

	nextSeq uint64
	buffer  *reorder.Buffer
}

var _ interfaces.Process = (*Receiver)(nil)

// NewReceiver 创建接收方
func NewReceiver(opts ...Option) (*Receiver, error) {
	cfg := buildConfig(opts)
	if cfg.MaxBuffer <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBuffer, cfg.MaxBuffer)
	}
	return &Receiver{
		maxBuffer: cfg.MaxBuffer,
		rec:       cfg.Recorder,
		nextSeq:   1,
		buffer:    reorder.New(),
	}, nil
}

// OnLocalMessage 接收方没有本地输入
func (r *Receiver) OnLocalMessage(*types.Message, interfaces.Context) {}

// OnMessage 处理 DATA
func (r *Receiver) OnMessage(msg *types.Message, _ string, ctx interfaces.Context) {
	if msg.Type != types.TypeData {
		r.rec.Inc(types.EventIgnored)
		return
	}

	switch {
	case msg.Seq < r.nextSeq:
		r.rec.Inc(types.EventDuplicate)
		return
	case msg.Seq == r.nextSeq:
		r.deliver(msg.Text, ctx)
		r.nextSeq++
		r.flush(ctx)
	default:
		if r.buffer.Put(msg.Seq, msg.Text) {
			r.rec.Inc(types.EventBuffered)
		} else {
			r.rec.Inc(types.EventDuplicate)
		}
	}

	if r.buffer.Len() > r.maxBuffer {
		r.skipAhead(ctx)
	}
	r.rec.Set(types.GaugeBuffered, r.buffer.Len())
}

// OnTimer 接收方不使用定时器
func (r *Receiver) OnTimer(string, interfaces.Context) {}

func (r *Receiver) deliver(text string, ctx interfaces.Context) {
	ctx.SendLocal(types.NewLocal(text))
	r.rec.Inc(types.EventDelivered)
}

func (r *Receiver) flush(ctx interfaces.Context) {
	r.nextSeq = r.buffer.Flush(r.nextSeq, func(_ uint64, text string) {
		r.deliver(text, ctx)
	})
}

// skipAhead 放弃 nextSeq 到最小缓冲序列号之间的缺口
func (r *Receiver) skipAhead(ctx interfaces.Context) {
	lowest, ok := r.buffer.Min()
	if !ok || lowest <= r.nextSeq {
		return
	}
	log.Debug("缓冲溢出，跳过缺口", "from", r.nextSeq, "to", lowest, "buffered", r.buffer.Len())
	r.rec.Inc(types.EventSkipAhead)
	r.nextSeq = lowest
	r.flush(ctx)
}

// NextSeq 返回期望的下一个序列号
func (r *Receiver) NextSeq() uint64 { return r.nextSeq }

// Buffered 返回缓冲条目数
func (r *Receiver) Buffered() int { return r.buffer.Len() }
