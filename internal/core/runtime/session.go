package runtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	guarantees "github.com/dep2p/go-guarantees"
	"github.com/dep2p/go-guarantees/config"
	"github.com/dep2p/go-guarantees/pkg/types"
)

// Session 一对发送方/接收方节点
type Session struct {
	id        string
	guarantee types.Guarantee
	net       *Network
	sender    *Node
	receiver  *Node
	limiter   *rate.Limiter

	mu   sync.Mutex
	sent []string
}

// NewSession 在网络上创建一种投递保证的会话
func NewSession(net *Network, g types.Guarantee, cfg *config.Config) (*Session, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	id := uuid.NewString()
	senderID := "sender-" + id[:8]
	receiverID := "receiver-" + id[:8]

	opts := []guarantees.Option{guarantees.WithConfig(cfg)}
	if net.collector != nil {
		opts = append(opts, guarantees.WithRecorder(net.collector))
	}
	sp, rp, err := guarantees.NewPair(g, receiverID, opts...)
	if err != nil {
		return nil, err
	}

	receiver, err := net.AddNode(receiverID, rp)
	if err != nil {
		return nil, err
	}
	sender, err := net.AddNode(senderID, sp)
	if err != nil {
		net.RemoveNode(receiverID)
		return nil, err
	}

	limit, burst := rate.Inf, 0
	if cfg.Runtime.InputRate > 0 {
		limit, burst = rate.Limit(cfg.Runtime.InputRate), cfg.Runtime.InputBurst
	}

	log.Debug("会话创建", "id", id, "guarantee", g, "sender", senderID, "receiver", receiverID)
	return &Session{
		id:        id,
		guarantee: g,
		net:       net,
		sender:    sender,
		receiver:  receiver,
		limiter:   rate.NewLimiter(limit, burst),
	}, nil
}

// ID 返回会话 ID
func (s *Session) ID() string { return s.id }

// Guarantee 返回会话的投递保证
func (s *Session) Guarantee() types.Guarantee { return s.guarantee }

// Sender 返回发送方节点
func (s *Session) Sender() *Node { return s.sender }

// Receiver 返回接收方节点
func (s *Session) Receiver() *Node { return s.receiver }

// Submit 按输入速率向发送方提交一条应用消息
func (s *Session) Submit(ctx context.Context, text string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	if err := s.sender.Input(types.NewLocal(text)); err != nil {
		return err
	}
	s.mu.Lock()
	s.sent = append(s.sent, text)
	s.mu.Unlock()
	return nil
}

// Sent 返回已提交的文本
func (s *Session) Sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

// Delivered 返回接收方已投递的消息
func (s *Session) Delivered() []*types.Message {
	return s.receiver.Delivered()
}

// WaitDelivered 等待接收方至少投递 n 条消息
//
// 超时或 ctx 取消时返回已投递的消息与 ErrDeliveryTimeout。
func (s *Session) WaitDelivered(ctx context.Context, n int) ([]*types.Message, error) {
	return s.WaitFor(ctx, func(delivered []*types.Message) bool { return len(delivered) >= n })
}

// WaitFor 等待接收方的投递满足 cond
func (s *Session) WaitFor(ctx context.Context, cond func([]*types.Message) bool) ([]*types.Message, error) {
	for {
		delivered := s.receiver.Delivered()
		if cond(delivered) {
			return delivered, nil
		}
		select {
		case <-s.receiver.Notify():
		case <-ctx.Done():
			return delivered, fmt.Errorf("%w: %d delivered: %v", ErrDeliveryTimeout, len(delivered), ctx.Err())
		}
	}
}

// Close 停止并移除两个节点
func (s *Session) Close() {
	s.net.RemoveNode(s.sender.ID())
	s.net.RemoveNode(s.receiver.ID())
}
