package config

import (
	"fmt"
	"time"
)

// 协议默认值
const (
	// DefaultRetransmitTimeout 默认重传超时（6.5 个模拟时间单位）
	DefaultRetransmitTimeout = 6500 * time.Millisecond

	// DefaultReliableWindow 至少一次 / 恰好一次的默认发送窗口
	DefaultReliableWindow = 10

	// DefaultOrderedWindow 恰好一次有序的默认发送窗口
	DefaultOrderedWindow = 4

	// DefaultMaxBuffer 至多一次接收方的默认乱序缓冲容量
	DefaultMaxBuffer = 12

	// DefaultInitialSeenWindow 恰好一次接收方已见位图的初始容量
	DefaultInitialSeenWindow = 32

	// DefaultMaxSeenGrowth 已见位图按倍数增长的上限，超过后精确扩容
	DefaultMaxSeenGrowth = 1024
)

// ════════════════════════════════════════════════════════════════════════════
// 至多一次
// ════════════════════════════════════════════════════════════════════════════

// AtMostOnceConfig 至多一次协议配置
type AtMostOnceConfig struct {
	// MaxBuffer 接收方乱序缓冲容量，超过后跳过缺口
	MaxBuffer int `json:"max_buffer"`
}

// DefaultAtMostOnceConfig 返回默认至多一次配置
func DefaultAtMostOnceConfig() AtMostOnceConfig {
	return AtMostOnceConfig{MaxBuffer: DefaultMaxBuffer}
}

// Validate 验证至多一次配置
func (c AtMostOnceConfig) Validate() error {
	if c.MaxBuffer <= 0 {
		return fmt.Errorf("max_buffer %d: %w", c.MaxBuffer, ErrInvalidBuffer)
	}
	return nil
}

// ════════════════════════════════════════════════════════════════════════════
// 至少一次
// ════════════════════════════════════════════════════════════════════════════

// AtLeastOnceConfig 至少一次协议配置
type AtLeastOnceConfig struct {
	// Window 发送窗口（最多未确认的消息数）
	Window int `json:"window"`

	// Timeout 重传超时
	Timeout Duration `json:"timeout"`
}

// DefaultAtLeastOnceConfig 返回默认至少一次配置
func DefaultAtLeastOnceConfig() AtLeastOnceConfig {
	return AtLeastOnceConfig{
		Window:  DefaultReliableWindow,
		Timeout: Duration(DefaultRetransmitTimeout),
	}
}

// Validate 验证至少一次配置
func (c AtLeastOnceConfig) Validate() error {
	return validateWindow(c.Window, c.Timeout)
}

// ════════════════════════════════════════════════════════════════════════════
// 恰好一次
// ════════════════════════════════════════════════════════════════════════════

// ExactlyOnceConfig 恰好一次协议配置
type ExactlyOnceConfig struct {
	// Window 发送窗口
	Window int `json:"window"`

	// Timeout 重传超时
	Timeout Duration `json:"timeout"`

	// InitialSeenWindow 接收方已见位图的初始容量（位）
	InitialSeenWindow int `json:"initial_seen_window"`

	// MaxSeenGrowth 位图按倍数增长的上限
	MaxSeenGrowth int `json:"max_seen_growth"`
}

// DefaultExactlyOnceConfig 返回默认恰好一次配置
func DefaultExactlyOnceConfig() ExactlyOnceConfig {
	return ExactlyOnceConfig{
		Window:            DefaultReliableWindow,
		Timeout:           Duration(DefaultRetransmitTimeout),
		InitialSeenWindow: DefaultInitialSeenWindow,
		MaxSeenGrowth:     DefaultMaxSeenGrowth,
	}
}

// Validate 验证恰好一次配置
func (c ExactlyOnceConfig) Validate() error {
	if err := validateWindow(c.Window, c.Timeout); err != nil {
		return err
	}
	if c.InitialSeenWindow <= 0 {
		return fmt.Errorf("initial_seen_window %d: %w", c.InitialSeenWindow, ErrInvalidSeenWindow)
	}
	if c.MaxSeenGrowth < c.InitialSeenWindow {
		return fmt.Errorf("max_seen_growth %d < initial_seen_window %d: %w",
			c.MaxSeenGrowth, c.InitialSeenWindow, ErrInvalidSeenWindow)
	}
	return nil
}

// ════════════════════════════════════════════════════════════════════════════
// 恰好一次有序
// ════════════════════════════════════════════════════════════════════════════

// ExactlyOnceOrderedConfig 恰好一次有序协议配置
type ExactlyOnceOrderedConfig struct {
	// Window 发送窗口
	Window int `json:"window"`

	// Timeout 重传超时
	Timeout Duration `json:"timeout"`
}

// DefaultExactlyOnceOrderedConfig 返回默认恰好一次有序配置
func DefaultExactlyOnceOrderedConfig() ExactlyOnceOrderedConfig {
	return ExactlyOnceOrderedConfig{
		Window:  DefaultOrderedWindow,
		Timeout: Duration(DefaultRetransmitTimeout),
	}
}

// Validate 验证恰好一次有序配置
func (c ExactlyOnceOrderedConfig) Validate() error {
	return validateWindow(c.Window, c.Timeout)
}

func validateWindow(window int, timeout Duration) error {
	if window <= 0 {
		return fmt.Errorf("window %d: %w", window, ErrInvalidWindow)
	}
	if timeout <= 0 {
		return fmt.Errorf("timeout %s: %w", timeout, ErrInvalidTimeout)
	}
	return nil
}
