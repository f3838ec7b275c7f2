package eo

import "github.com/dep2p/go-guarantees/pkg/interfaces"

// 默认值
const (
	// DefaultInitialWindow 位图初始容量
	DefaultInitialWindow = 32

	// DefaultMaxGrowth 位图倍增上限
	DefaultMaxGrowth = 1024
)

// Config 恰好一次接收方配置
type Config struct {
	// InitialWindow 位图初始容量（位）
	InitialWindow int

	// MaxGrowth 位图倍增上限，超过后精确扩容
	MaxGrowth int

	// Recorder 协议事件记录器
	Recorder interfaces.Recorder
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		InitialWindow: DefaultInitialWindow,
		MaxGrowth:     DefaultMaxGrowth,
		Recorder:      interfaces.NopRecorder,
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.InitialWindow <= 0 {
		return ErrInvalidSeenWindow
	}
	if c.MaxGrowth < c.InitialWindow {
		return ErrInvalidGrowth
	}
	return nil
}

// Option 配置选项函数
type Option func(*Config)

// WithInitialWindow 设置位图初始容量
func WithInitialWindow(n int) Option {
	return func(c *Config) {
		c.InitialWindow = n
	}
}

// WithMaxGrowth 设置位图倍增上限
func WithMaxGrowth(n int) Option {
	return func(c *Config) {
		c.MaxGrowth = n
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
