package window

import "errors"

// 错误定义
var (
	// ErrInvalidWindow 窗口大小无效
	ErrInvalidWindow = errors.New("window: window must be positive")

	// ErrInvalidTimeout 重传超时无效
	ErrInvalidTimeout = errors.New("window: timeout must be positive")

	// ErrEmptyTimerName 定时器名称为空
	ErrEmptyTimerName = errors.New("window: timer name is empty")

	// ErrEmptyReceiver 接收方 ID 为空
	ErrEmptyReceiver = errors.New("window: receiver id is empty")
)
