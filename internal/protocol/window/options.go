package window

import (
	"time"

	"github.com/dep2p/go-guarantees/pkg/interfaces"
)

// 默认值
const (
	// DefaultWindow 默认发送窗口
	DefaultWindow = 10

	// DefaultTimeout 默认重传超时
	DefaultTimeout = 6500 * time.Millisecond

	// DefaultTimerName 重传定时器名称
	DefaultTimerName = "rtx"
)

// Config 发送方配置
type Config struct {
	// Window 最多未确认的消息数
	Window int

	// Timeout 重传超时
	Timeout time.Duration

	// TimerName 重传定时器名称
	TimerName string

	// Recorder 协议事件记录器
	Recorder interfaces.Recorder
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Window:    DefaultWindow,
		Timeout:   DefaultTimeout,
		TimerName: DefaultTimerName,
		Recorder:  interfaces.NopRecorder,
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.Window <= 0 {
		return ErrInvalidWindow
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.TimerName == "" {
		return ErrEmptyTimerName
	}
	return nil
}

// Option 配置选项函数
type Option func(*Config)

// WithWindow 设置发送窗口
func WithWindow(window int) Option {
	return func(c *Config) {
		c.Window = window
	}
}

// WithTimeout 设置重传超时
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithTimerName 设置重传定时器名称
func WithTimerName(name string) Option {
	return func(c *Config) {
		c.TimerName = name
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
