package config

import (
	"fmt"
	"math"
	"time"
)

// SimulationConfig 离散事件模拟配置
type SimulationConfig struct {
	// Seed 随机种子，相同种子产生相同的执行
	Seed uint64 `json:"seed"`

	// Messages 每个场景发送的消息数
	Messages int `json:"messages"`

	// Monkeys 混沌测试的运行次数，0 表示不运行
	Monkeys int `json:"monkeys"`

	// MaxSteps 单次运行的最大事件数，防止协议不终止时死循环
	MaxSteps int `json:"max_steps"`
}

// DefaultSimulationConfig 返回默认模拟配置
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Seed:     123,
		Messages: 5,
		Monkeys:  0,
		MaxSteps: 1_000_000,
	}
}

// Validate 验证模拟配置
func (c SimulationConfig) Validate() error {
	if c.Messages <= 0 {
		return fmt.Errorf("messages %d: %w", c.Messages, ErrInvalidSimulation)
	}
	if c.Monkeys < 0 {
		return fmt.Errorf("monkeys %d: %w", c.Monkeys, ErrInvalidSimulation)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max_steps %d: %w", c.MaxSteps, ErrInvalidSimulation)
	}
	return nil
}

// RuntimeConfig 实时运行时配置
type RuntimeConfig struct {
	// TimeScale 模拟时间到真实时间的缩放比例
	//
	// 协议超时与网络延迟都乘以该值，例如 0.01 时 6.5s 的重传超时实际为 65ms。
	TimeScale float64 `json:"time_scale"`

	// InputRate 应用输入速率（条/秒），0 表示不限速
	InputRate float64 `json:"input_rate"`

	// InputBurst 输入突发量
	InputBurst int `json:"input_burst"`

	// DeliveryTimeout 等待全部消息投递的最长时间
	DeliveryTimeout Duration `json:"delivery_timeout"`
}

// DefaultRuntimeConfig 返回默认运行时配置
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		TimeScale:       0.01,
		InputRate:       200,
		InputBurst:      10,
		DeliveryTimeout: Duration(30 * time.Second),
	}
}

// Validate 验证运行时配置
func (c RuntimeConfig) Validate() error {
	if c.TimeScale <= 0 {
		return fmt.Errorf("time_scale %v: %w", c.TimeScale, ErrInvalidRuntime)
	}
	if c.InputRate < 0 {
		return fmt.Errorf("input_rate %v: %w", c.InputRate, ErrInvalidRuntime)
	}
	if c.InputBurst <= 0 {
		return fmt.Errorf("input_burst %d: %w", c.InputBurst, ErrInvalidRuntime)
	}
	if c.DeliveryTimeout <= 0 {
		return fmt.Errorf("delivery_timeout %s: %w", c.DeliveryTimeout, ErrInvalidRuntime)
	}
	return nil
}

// Scale 将模拟时间换算为真实时间
func (c RuntimeConfig) Scale(d time.Duration) time.Duration {
	return time.Duration(math.Round(float64(d) * c.TimeScale))
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	// Enabled 是否启用 Prometheus 指标
	Enabled bool `json:"enabled"`

	// ListenAddr 指标 HTTP 端点监听地址，为空时不暴露端点
	ListenAddr string `json:"listen_addr"`
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{Enabled: true}
}

// Validate 验证指标配置
func (c MetricsConfig) Validate() error {
	if !c.Enabled && c.ListenAddr != "" {
		return fmt.Errorf("listen_addr set while metrics disabled: %w", ErrInvalidMetrics)
	}
	return nil
}
