package config

import "errors"

// 配置错误
var (
	// ErrNilConfig 配置为空
	ErrNilConfig = errors.New("config: config is nil")

	// ErrInvalidWindow 发送窗口无效
	ErrInvalidWindow = errors.New("config: window must be positive")

	// ErrInvalidTimeout 超时无效
	ErrInvalidTimeout = errors.New("config: timeout must be positive")

	// ErrInvalidBuffer 缓冲区容量无效
	ErrInvalidBuffer = errors.New("config: buffer size must be positive")

	// ErrInvalidSeenWindow 已见位图窗口无效
	ErrInvalidSeenWindow = errors.New("config: invalid seen window")

	// ErrInvalidDelay 网络延迟无效
	ErrInvalidDelay = errors.New("config: invalid network delay")

	// ErrInvalidRate 概率不在 [0, 1] 区间
	ErrInvalidRate = errors.New("config: rate must be within [0, 1]")

	// ErrInvalidSimulation 模拟参数无效
	ErrInvalidSimulation = errors.New("config: invalid simulation parameters")

	// ErrInvalidRuntime 运行时参数无效
	ErrInvalidRuntime = errors.New("config: invalid runtime parameters")

	// ErrInvalidMetrics 指标配置无效
	ErrInvalidMetrics = errors.New("config: invalid metrics config")

	// ErrInvalidEnv 环境变量值无法解析
	ErrInvalidEnv = errors.New("config: invalid environment value")
)
