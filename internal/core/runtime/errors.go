package runtime

import "errors"

var (
	// ErrClosed 节点或网络已关闭
	ErrClosed = errors.New("runtime: closed")

	// ErrDuplicateNode 节点 ID 重复
	ErrDuplicateNode = errors.New("runtime: duplicate node")

	// ErrDeliveryTimeout 等待投递超时
	ErrDeliveryTimeout = errors.New("runtime: delivery timeout")
)
