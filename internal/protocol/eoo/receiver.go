// Package eoo 实现恰好一次有序（exactly-once-ordered）接收方
//
// 发送方使用 window 包的滑动窗口发送方（默认窗口 4）。
//
// 接收方维护无界的乱序缓冲：
//   - seq < nextSeq: 已投递过，只重发 ACK
//   - seq == nextSeq: 投递并冲刷后续连续的缓冲条目
//   - seq > nextSeq: 缓冲（已存在则忽略）
//
// 每次到达都回复 ACK。缺失的低序列号到达之前，缓冲会持续增长；
// 发送窗口限制了缓冲在正常情况下的规模。
package eoo

import (
	"github.com/dep2p/go-guarantees/internal/protocol/reorder"
	"github.com/dep2p/go-guarantees/pkg/interfaces"
	"github.com/dep2p/go-guarantees/pkg/types"
)

// Receiver 恰好一次有序接收方
type Receiver struct {
	rec interfaces.Recorder

	nextSeq uint64
	buffer  *reorder.Buffer
}

var _ interfaces.Process = (*Receiver)(nil)

// NewReceiver 创建接收方，rec 为 nil 时不记录事件
func NewReceiver(rec interfaces.Recorder) *Receiver {
	if rec == nil {
		rec = interfaces.NopRecorder
	}
	return &Receiver{rec: rec, nextSeq: 1, buffer: reorder.New()}
}

// OnLocalMessage 接收方没有本地输入
func (r *Receiver) OnLocalMessage(*types.Message, interfaces.Context) {}

// OnMessage 按序投递 DATA 并回复 ACK
func (r *Receiver) OnMessage(msg *types.Message, from string, ctx interfaces.Context) {
	if msg.Type != types.TypeData {
		r.rec.Inc(types.EventIgnored)
		return
	}

	switch {
	case msg.Seq < r.nextSeq:
		r.rec.Inc(types.EventDuplicate)
	case msg.Seq == r.nextSeq:
		r.deliver(msg.Text, ctx)
		r.nextSeq = r.buffer.Flush(r.nextSeq+1, func(_ uint64, text string) {
			r.deliver(text, ctx)
		})
	default:
		if r.buffer.Put(msg.Seq, msg.Text) {
			r.rec.Inc(types.EventBuffered)
		} else {
			r.rec.Inc(types.EventDuplicate)
		}
	}

	ctx.Send(types.NewAck(msg.Seq), from)
	r.rec.Inc(types.EventAckSent)
	r.rec.Set(types.GaugeBuffered, r.buffer.Len())
}

// OnTimer 接收方不使用定时器
func (r *Receiver) OnTimer(string, interfaces.Context) {}

func (r *Receiver) deliver(text string, ctx interfaces.Context) {
	ctx.SendLocal(types.NewLocal(text))
	r.rec.Inc(types.EventDelivered)
}

// NextSeq 返回期望的下一个序列号
func (r *Receiver) NextSeq() uint64 { return r.nextSeq }

// Buffered 返回缓冲条目数
func (r *Receiver) Buffered() int { return r.buffer.Len() }
