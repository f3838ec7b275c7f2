package guarantees

import (
	"fmt"

	"github.com/dep2p/go-guarantees/internal/protocol/alo"
	"github.com/dep2p/go-guarantees/internal/protocol/amo"
	"github.com/dep2p/go-guarantees/internal/protocol/eo"
	"github.com/dep2p/go-guarantees/internal/protocol/eoo"
	"github.com/dep2p/go-guarantees/internal/protocol/window"
	"github.com/dep2p/go-guarantees/pkg/interfaces"
	"github.com/dep2p/go-guarantees/pkg/types"
)

// 版本信息
const (
	// Version 库版本
	Version = "v0.3.0"
)

// ============================================================================
//                              工厂
// ============================================================================

// NewSender 创建指定投递保证的发送方
//
// receiver 为对端接收方的进程 ID，所有 DATA 都发往该 ID。
func NewSender(g types.Guarantee, receiver string, opts ...Option) (interfaces.Process, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGuarantee, int(g))
	}
	if receiver == "" {
		return nil, ErrEmptyReceiver
	}
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	rec := o.recorderFor(g, types.RoleSender)

	if g == types.AtMostOnce {
		s, err := amo.NewSender(receiver, amo.WithRecorder(rec))
		if err != nil {
			return nil, fmt.Errorf("%s sender: %w", g, err)
		}
		return s, nil
	}

	size, timeout, _ := o.cfg.SenderWindow(g)
	s, err := window.New(receiver,
		window.WithWindow(size),
		window.WithTimeout(timeout),
		window.WithRecorder(rec),
	)
	if err != nil {
		return nil, fmt.Errorf("%s sender: %w", g, err)
	}
	return s, nil
}

// NewReceiver 创建指定投递保证的接收方
func NewReceiver(g types.Guarantee, opts ...Option) (interfaces.Process, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGuarantee, int(g))
	}
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	rec := o.recorderFor(g, types.RoleReceiver)

	switch g {
	case types.AtMostOnce:
		r, err := amo.NewReceiver(
			amo.WithMaxBuffer(o.cfg.AtMostOnce.MaxBuffer),
			amo.WithRecorder(rec),
		)
		if err != nil {
			return nil, fmt.Errorf("%s receiver: %w", g, err)
		}
		return r, nil
	case types.AtLeastOnce:
		return alo.NewReceiver(rec), nil
	case types.ExactlyOnce:
		r, err := eo.NewReceiver(
			eo.WithInitialWindow(o.cfg.ExactlyOnce.InitialSeenWindow),
			eo.WithMaxGrowth(o.cfg.ExactlyOnce.MaxSeenGrowth),
			eo.WithRecorder(rec),
		)
		if err != nil {
			return nil, fmt.Errorf("%s receiver: %w", g, err)
		}
		return r, nil
	default:
		return eoo.NewReceiver(rec), nil
	}
}

// NewPair 创建同一投递保证的发送方与接收方
func NewPair(g types.Guarantee, receiver string, opts ...Option) (sender, recv interfaces.Process, err error) {
	sender, err = NewSender(g, receiver, opts...)
	if err != nil {
		return nil, nil, err
	}
	recv, err = NewReceiver(g, opts...)
	if err != nil {
		return nil, nil, err
	}
	return sender, recv, nil
}
