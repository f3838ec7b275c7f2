package config

import (
	"fmt"
	"time"
)

// NetworkConfig 不可靠网络的故障模型
//
// 每条消息独立地：以 DropRate 概率丢弃；否则在 [DelayMin, DelayMax]
// 内均匀延迟后送达，并以 DupRate 概率再送达一份（独立延迟，因此会乱序）。
type NetworkConfig struct {
	// DelayMin 最小传输延迟
	DelayMin Duration `json:"delay_min"`

	// DelayMax 最大传输延迟
	DelayMax Duration `json:"delay_max"`

	// DupRate 重复概率
	DupRate float64 `json:"dup_rate"`

	// DropRate 丢包概率
	DropRate float64 `json:"drop_rate"`
}

// DefaultNetworkConfig 返回默认网络配置（固定 1 个时间单位延迟，无故障）
func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		DelayMin: Duration(time.Second),
		DelayMax: Duration(time.Second),
	}
}

// FaultyNetworkConfig 返回混沌测试使用的故障网络配置
func FaultyNetworkConfig() NetworkConfig {
	return NetworkConfig{
		DelayMin: Duration(time.Second),
		DelayMax: Duration(3 * time.Second),
		DupRate:  0.3,
		DropRate: 0.3,
	}
}

// Validate 验证网络配置
func (c NetworkConfig) Validate() error {
	if c.DelayMin < 0 || c.DelayMax < c.DelayMin {
		return fmt.Errorf("delay [%s, %s]: %w", c.DelayMin, c.DelayMax, ErrInvalidDelay)
	}
	if c.DupRate < 0 || c.DupRate > 1 {
		return fmt.Errorf("dup_rate %v: %w", c.DupRate, ErrInvalidRate)
	}
	// 丢包率为 1 时任何可靠协议都无法终止
	if c.DropRate < 0 || c.DropRate >= 1 {
		return fmt.Errorf("drop_rate %v: %w", c.DropRate, ErrInvalidRate)
	}
	return nil
}

// Faulty 是否存在任何故障（延迟抖动、重复或丢包）
func (c NetworkConfig) Faulty() bool {
	return c.DelayMax != c.DelayMin || c.DupRate > 0 || c.DropRate > 0
}
