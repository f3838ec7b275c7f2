package config

import "fmt"

// ValidateAndFix 验证配置并自动修复常见问题
//
// 可修复的问题：
//   - 最小延迟大于最大延迟 -> 交换
//   - 概率超出 [0, 1] -> 截断（丢包率最多截断到 0.99）
//   - 超时为非正数 -> 使用协议默认值
//   - 位图增长上限小于初始容量 -> 提升到初始容量
//   - 输入突发量为非正数 -> 1
//
// 修复后仍无效则返回错误。
func ValidateAndFix(c *Config) (*Config, error) {
	if c == nil {
		return NewConfig(), nil
	}

	if c.Network.DelayMin > c.Network.DelayMax {
		c.Network.DelayMin, c.Network.DelayMax = c.Network.DelayMax, c.Network.DelayMin
	}
	c.Network.DupRate = clamp(c.Network.DupRate, 0, 1)
	c.Network.DropRate = clamp(c.Network.DropRate, 0, 0.99)

	for _, t := range []*Duration{
		&c.AtLeastOnce.Timeout,
		&c.ExactlyOnce.Timeout,
		&c.ExactlyOnceOrdered.Timeout,
	} {
		if *t <= 0 {
			*t = Duration(DefaultRetransmitTimeout)
		}
	}

	if c.ExactlyOnce.MaxSeenGrowth < c.ExactlyOnce.InitialSeenWindow {
		c.ExactlyOnce.MaxSeenGrowth = c.ExactlyOnce.InitialSeenWindow
	}

	if c.Runtime.InputBurst <= 0 {
		c.Runtime.InputBurst = 1
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed after fixes: %w", err)
	}
	return c, nil
}

// MustValidate 验证配置，失败时 panic
//
// 仅用于初始化阶段或测试代码。
func MustValidate(c *Config) {
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
