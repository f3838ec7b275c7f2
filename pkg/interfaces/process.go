// Package interfaces 定义投递保证协议的公共接口
//
// 本文件定义 Process 与 Context 接口。
package interfaces

import (
	"time"

	"github.com/dep2p/go-guarantees/pkg/types"
)

// Context 运行时上下文
//
// 由外部运行时实现，在每次事件回调时传给 Process。
// 所有操作都是非阻塞的，且不返回错误：网络本身是不可靠的，
// 发送失败与丢包在协议层面没有区别。
type Context interface {
	// Send 向指定节点发送线上消息
	Send(msg *types.Message, to string)

	// SendLocal 向本地应用投递消息
	SendLocal(msg *types.Message)

	// SetTimer 设置一次性命名定时器
	//
	// 同名定时器已存在时被替换，不会叠加。
	SetTimer(name string, d time.Duration)

	// CancelTimer 取消命名定时器（定时器不存在时无操作）
	CancelTimer(name string)
}

// Process 协议进程
//
// 发送方与接收方都实现该接口。未识别的消息类型必须被忽略。
type Process interface {
	// OnLocalMessage 处理本地应用输入
	OnLocalMessage(msg *types.Message, ctx Context)

	// OnMessage 处理来自 from 的线上消息
	OnMessage(msg *types.Message, from string, ctx Context)

	// OnTimer 处理定时器到期
	OnTimer(name string, ctx Context)
}
