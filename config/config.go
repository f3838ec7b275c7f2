// Package config 提供统一的配置管理
//
// 本包采用分节配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义，自带 Default*Config() 与 Validate()
//   - 支持从 JSON 加载、环境变量覆盖和自动修复
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Network.DropRate = 0.3
//
//	// 从文件加载，再应用环境变量覆盖
//	cfg, err := config.LoadFile("guarantees.json")
//	if err == nil {
//	    err = config.ApplyEnv(cfg, os.Getenv)
//	}
package config

import (
	"fmt"
	"time"

	"github.com/dep2p/go-guarantees/pkg/types"
)

// Config 完整配置结构
//
// 配置按照功能组织：
//   - AtMostOnce / AtLeastOnce / ExactlyOnce / ExactlyOnceOrdered: 各投递保证的协议参数
//   - Network: 不可靠网络的故障模型（模拟器与实时运行时共用）
//   - Simulation: 离散事件模拟参数
//   - Runtime: 实时运行时参数
//   - Metrics: Prometheus 指标
type Config struct {
	// AtMostOnce 至多一次协议配置
	AtMostOnce AtMostOnceConfig `json:"at_most_once"`

	// AtLeastOnce 至少一次协议配置
	AtLeastOnce AtLeastOnceConfig `json:"at_least_once"`

	// ExactlyOnce 恰好一次协议配置
	ExactlyOnce ExactlyOnceConfig `json:"exactly_once"`

	// ExactlyOnceOrdered 恰好一次有序协议配置
	ExactlyOnceOrdered ExactlyOnceOrderedConfig `json:"exactly_once_ordered"`

	// Network 网络故障模型配置
	Network NetworkConfig `json:"network"`

	// Simulation 模拟器配置
	Simulation SimulationConfig `json:"simulation"`

	// Runtime 实时运行时配置
	Runtime RuntimeConfig `json:"runtime"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		AtMostOnce:         DefaultAtMostOnceConfig(),
		AtLeastOnce:        DefaultAtLeastOnceConfig(),
		ExactlyOnce:        DefaultExactlyOnceConfig(),
		ExactlyOnceOrdered: DefaultExactlyOnceOrderedConfig(),
		Network:            DefaultNetworkConfig(),
		Simulation:         DefaultSimulationConfig(),
		Runtime:            DefaultRuntimeConfig(),
		Metrics:            DefaultMetricsConfig(),
	}
}

// Validate 验证配置的有效性
//
// 返回的错误包装了对应的哨兵错误，可以用 errors.Is 判断。
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	sections := []struct {
		name string
		v    interface{ Validate() error }
	}{
		{"at_most_once", c.AtMostOnce},
		{"at_least_once", c.AtLeastOnce},
		{"exactly_once", c.ExactlyOnce},
		{"exactly_once_ordered", c.ExactlyOnceOrdered},
		{"network", c.Network},
		{"simulation", c.Simulation},
		{"runtime", c.Runtime},
		{"metrics", c.Metrics},
	}
	for _, s := range sections {
		if err := s.v.Validate(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

// SenderWindow 返回指定投递保证的发送窗口与重传超时
//
// 至多一次协议没有窗口，ok 为 false。
func (c *Config) SenderWindow(g types.Guarantee) (window int, timeout time.Duration, ok bool) {
	switch g {
	case types.AtLeastOnce:
		return c.AtLeastOnce.Window, c.AtLeastOnce.Timeout.Duration(), true
	case types.ExactlyOnce:
		return c.ExactlyOnce.Window, c.ExactlyOnce.Timeout.Duration(), true
	case types.ExactlyOnceOrdered:
		return c.ExactlyOnceOrdered.Window, c.ExactlyOnceOrdered.Timeout.Duration(), true
	default:
		return 0, 0, false
	}
}
