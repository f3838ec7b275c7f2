package eo

import "errors"

// 错误定义
var (
	// ErrInvalidSeenWindow 位图初始容量无效
	ErrInvalidSeenWindow = errors.New("eo: initial seen window must be positive")

	// ErrInvalidGrowth 位图倍增上限无效
	ErrInvalidGrowth = errors.New("eo: max seen growth must not be below the initial window")
)
