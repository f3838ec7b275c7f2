package amo

import (
	"github.com/dep2p/go-guarantees/pkg/interfaces"
	"github.com/dep2p/go-guarantees/pkg/types"
)

// Sender 至多一次发送方
type Sender struct {
	receiver string
	rec      interfaces.Recorder
	nextSeq  uint64
}

var _ interfaces.Process = (*Sender)(nil)

// NewSender 创建发送方，receiver 为对端接收方 ID
func NewSender(receiver string, opts ...Option) (*Sender, error) {
	if receiver == "" {
		return nil, ErrEmptyReceiver
	}
	cfg := buildConfig(opts)
	return &Sender{receiver: receiver, rec: cfg.Recorder, nextSeq: 1}, nil
}

// OnLocalMessage 分配序列号并发送一次
func (s *Sender) OnLocalMessage(msg *types.Message, ctx interfaces.Context) {
	if msg.Type != types.TypeMessage {
		s.rec.Inc(types.EventIgnored)
		return
	}
	seq := s.nextSeq
	s.nextSeq++
	ctx.Send(types.NewData(seq, msg.Text), s.receiver)
	s.rec.Inc(types.EventDataSent)
}

// OnMessage 发送方不处理任何线上消息
func (s *Sender) OnMessage(*types.Message, string, interfaces.Context) {}

// OnTimer 发送方不使用定时器
func (s *Sender) OnTimer(string, interfaces.Context) {}

// NextSeq 返回下一个将分配的序列号
func (s *Sender) NextSeq() uint64 { return s.nextSeq }
