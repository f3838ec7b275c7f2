// Package alo 实现至少一次（at-least-once）接收方
//
// 发送方使用 window 包的滑动窗口发送方（默认窗口 10）。
// 接收方不做任何跟踪：每个 DATA 都投递给应用并回复 ACK，
// 因此重复到达的 DATA 会被重复投递。
package alo

import (
	"github.com/dep2p/go-guarantees/pkg/interfaces"
	"github.com/dep2p/go-guarantees/pkg/types"
)

// Receiver 至少一次接收方
type Receiver struct {
	rec interfaces.Recorder
}

var _ interfaces.Process = (*Receiver)(nil)

// NewReceiver 创建接收方，rec 为 nil 时不记录事件
func NewReceiver(rec interfaces.Recorder) *Receiver {
	if rec == nil {
		rec = interfaces.NopRecorder
	}
	return &Receiver{rec: rec}
}

// OnLocalMessage 接收方没有本地输入
func (r *Receiver) OnLocalMessage(*types.Message, interfaces.Context) {}

// OnMessage 投递并确认每个 DATA
func (r *Receiver) OnMessage(msg *types.Message, from string, ctx interfaces.Context) {
	if msg.Type != types.TypeData {
		r.rec.Inc(types.EventIgnored)
		return
	}
	ctx.SendLocal(types.NewLocal(msg.Text))
	r.rec.Inc(types.EventDelivered)
	ctx.Send(types.NewAck(msg.Seq), from)
	r.rec.Inc(types.EventAckSent)
}

// OnTimer 接收方不使用定时器
func (r *Receiver) OnTimer(string, interfaces.Context) {}
