package amo

import "errors"

// 错误定义
var (
	// ErrEmptyReceiver 接收方 ID 为空
	ErrEmptyReceiver = errors.New("amo: receiver id is empty")

	// ErrInvalidBuffer 缓冲容量无效
	ErrInvalidBuffer = errors.New("amo: max buffer must be positive")
)
