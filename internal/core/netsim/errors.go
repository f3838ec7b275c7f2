package netsim

import "errors"

var (
	// ErrStepLimit 事件数超过上限（协议可能不终止）
	ErrStepLimit = errors.New("netsim: step limit exceeded")

	// ErrUnknownProcess 进程不存在
	ErrUnknownProcess = errors.New("netsim: unknown process")

	// ErrDuplicateProcess 进程 ID 重复
	ErrDuplicateProcess = errors.New("netsim: duplicate process")

	// ErrNotDelivered 可靠投递违反：消息未投递足够次数
	ErrNotDelivered = errors.New("netsim: message not delivered")

	// ErrDeliveredTwice 至多一次违反：消息投递次数过多
	ErrDeliveredTwice = errors.New("netsim: message delivered more than once")

	// ErrOrderViolation 顺序违反
	ErrOrderViolation = errors.New("netsim: order violation")

	// ErrUnexpectedMessage 投递了未发送过的消息或类型错误
	ErrUnexpectedMessage = errors.New("netsim: unexpected message")

	// ErrTooManySent 发送方在正常网络下发送了过多消息
	ErrTooManySent = errors.New("netsim: sender sent too many messages")

	// ErrOverhead 开销超过上限
	ErrOverhead = errors.New("netsim: overhead limit exceeded")
)
