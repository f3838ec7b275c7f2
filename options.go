package guarantees

import (
	"fmt"

	"github.com/dep2p/go-guarantees/config"
	"github.com/dep2p/go-guarantees/pkg/interfaces"
	"github.com/dep2p/go-guarantees/pkg/types"
)

// RecorderSource 按（投递保证, 角色）提供事件记录器
//
// *metrics.Collector 实现该接口。
type RecorderSource interface {
	Recorder(g types.Guarantee, role types.Role) interfaces.Recorder
}

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	cfg      *config.Config
	recorder RecorderSource
}

func newOptions(opts []Option) (*options, error) {
	o := &options{cfg: config.NewConfig()}
	for _, opt := range opts {
		if opt == nil {
			return nil, ErrNilOption
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return o, nil
}

// recorderFor 返回绑定角色的记录器，未配置时为 NopRecorder
func (o *options) recorderFor(g types.Guarantee, role types.Role) interfaces.Recorder {
	if o.recorder == nil {
		return interfaces.NopRecorder
	}
	if rec := o.recorder.Recorder(g, role); rec != nil {
		return rec
	}
	return interfaces.NopRecorder
}

// WithConfig 使用指定的协议配置
//
// 配置在构造时被验证；nil 表示使用默认配置。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg != nil {
			o.cfg = cfg
		}
		return nil
	}
}

// WithRecorder 设置协议事件记录器来源
func WithRecorder(src RecorderSource) Option {
	return func(o *options) error {
		o.recorder = src
		return nil
	}
}
