package amo

import "github.com/dep2p/go-guarantees/pkg/interfaces"

// DefaultMaxBuffer 接收方默认乱序缓冲容量
const DefaultMaxBuffer = 12

// Config 至多一次配置
type Config struct {
	// MaxBuffer 接收方乱序缓冲容量
	MaxBuffer int

	// Recorder 协议事件记录器
	Recorder interfaces.Recorder
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		MaxBuffer: DefaultMaxBuffer,
		Recorder:  interfaces.NopRecorder,
	}
}

// Option 配置选项函数
type Option func(*Config)

// WithMaxBuffer 设置接收方缓冲容量
func WithMaxBuffer(n int) Option {
	return func(c *Config) {
		c.MaxBuffer = n
	}
}

// WithRecorder 设置协议事件记录器，nil 表示不记录
func WithRecorder(rec interfaces.Recorder) Option {
	return func(c *Config) {
		if rec == nil {
			rec = interfaces.NopRecorder
		}
		c.Recorder = rec
	}
}

func buildConfig(opts []Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
