package window

import (
	"fmt"
	"time"

	"github.com/dep2p/go-guarantees/internal/util/logger"
	"github.com/dep2p/go-guarantees/pkg/interfaces"
	"github.com/dep2p/go-guarantees/pkg/types"
)

var log = logger.Logger("protocol/window")

// Sender 滑动窗口发送方
//
// 实现 interfaces.Process。由运行时单线程驱动，不持有锁。
type Sender struct {
	receiver  string
	window    uint64
	timeout   time.Duration
	timerName string
	rec       interfaces.Recorder

	nextSeq     uint64
	base        uint64
	unacked     map[uint64]string
	pending     pendingQueue
	timerActive bool
}

var _ interfaces.Process = (*Sender)(nil)

// New 创建发送方，receiver 为对端接收方 ID
func New(receiver string, opts ...Option) (*Sender, error) {
	if receiver == "" {
		return nil, ErrEmptyReceiver
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("window sender: %w", err)
	}

	return &Sender{
		receiver:  receiver,
		window:    uint64(cfg.Window),
		timeout:   cfg.Timeout,
		timerName: cfg.TimerName,
		rec:       cfg.Recorder,
		nextSeq:   1,
		base:      1,
		unacked:   make(map[uint64]string, cfg.Window),
	}, nil
}

// ============================================================================
//                              Process 实现
// ============================================================================

// OnLocalMessage 处理应用输入
//
// 窗口有空位时立即分配序列号并发送，否则排队。
func (s *Sender) OnLocalMessage(msg *types.Message, ctx interfaces.Context) {
	if msg.Type != types.TypeMessage {
		s.rec.Inc(types.EventIgnored)
		return
	}

	if s.hasWindowSpace() {
		s.sendNew(msg.Text, ctx)
	} else {
		s.pending.push(msg.Text)
		s.rec.Inc(types.EventDataQueued)
		log.Debug("窗口已满，消息排队", "pending", s.pending.len(), "base", s.base)
	}
	s.reportState()
}

// OnMessage 处理 ACK
func (s *Sender) OnMessage(msg *types.Message, _ string, ctx interfaces.Context) {
	if msg.Type != types.TypeAck {
		s.rec.Inc(types.EventIgnored)
		return
	}
	s.rec.Inc(types.EventAckReceived)

	delete(s.unacked, msg.Seq)

	baseChanged := false
	for s.base < s.nextSeq {
		if _, outstanding := s.unacked[s.base]; outstanding {
			break
		}
		s.base++
		baseChanged = true
	}

	if len(s.unacked) == 0 {
		s.disarmTimer(ctx)
	} else if baseChanged {
		s.restartTimer(ctx)
	}

	s.trySendPending(ctx)
	s.reportState()
}

// OnTimer 处理重传定时器到期
//
// 只重传 base 一条消息。
func (s *Sender) OnTimer(name string, ctx interfaces.Context) {
	if name != s.timerName {
		return
	}
	s.timerActive = false
	if len(s.unacked) == 0 {
		return
	}

	if text, ok := s.unacked[s.base]; ok {
		ctx.Send(types.NewData(s.base, text), s.receiver)
		s.rec.Inc(types.EventDataRetransmitted)
		log.Debug("超时重传", "seq", s.base, "inFlight", len(s.unacked))
	}
	s.armTimer(ctx)
}

// ============================================================================
//                              内部方法
// ============================================================================

func (s *Sender) hasWindowSpace() bool {
	return s.nextSeq < s.base+s.window
}

func (s *Sender) sendNew(text string, ctx interfaces.Context) {
	seq := s.nextSeq
	s.nextSeq++

	wasEmpty := len(s.unacked) == 0
	s.unacked[seq] = text
	ctx.Send(types.NewData(seq, text), s.receiver)
	s.rec.Inc(types.EventDataSent)

	if wasEmpty {
		s.restartTimer(ctx)
	}
}

func (s *Sender) trySendPending(ctx interfaces.Context) {
	for s.hasWindowSpace() {
		text, ok := s.pending.pop()
		if !ok {
			break
		}
		s.sendNew(text, ctx)
	}
	s.pending.compact()
}

func (s *Sender) armTimer(ctx interfaces.Context) {
	ctx.SetTimer(s.timerName, s.timeout)
	s.timerActive = true
}

func (s *Sender) disarmTimer(ctx interfaces.Context) {
	if s.timerActive {
		ctx.CancelTimer(s.timerName)
		s.timerActive = false
	}
}

func (s *Sender) restartTimer(ctx interfaces.Context) {
	s.disarmTimer(ctx)
	s.armTimer(ctx)
}

func (s *Sender) reportState() {
	s.rec.Set(types.GaugeInFlight, len(s.unacked))
	s.rec.Set(types.GaugePending, s.pending.len())
}

// ============================================================================
//                              状态查询
// ============================================================================

// NextSeq 返回下一个将分配的序列号
func (s *Sender) NextSeq() uint64 { return s.nextSeq }

// Base 返回最小的未确认序列号
func (s *Sender) Base() uint64 { return s.base }

// InFlight 返回已发送未确认的消息数
func (s *Sender) InFlight() int { return len(s.unacked) }

// Pending 返回排队等待窗口的消息数
func (s *Sender) Pending() int { return s.pending.len() }

// TimerActive 重传定时器是否处于激活状态
func (s *Sender) TimerActive() bool { return s.timerActive }
