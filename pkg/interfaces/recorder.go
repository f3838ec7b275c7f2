// Package interfaces 定义投递保证协议的公共接口
//
// 本文件定义 Recorder 接口。
package interfaces

import "github.com/dep2p/go-guarantees/pkg/types"

// Recorder 协议事件记录器
//
// 每个 Recorder 已绑定到一个（投递保证, 角色）组合。
// 实现必须并发安全，且调用开销足够低，可以在每条消息上调用。
type Recorder interface {
	// Inc 事件计数加一
	Inc(event types.ProtocolEvent)

	// Set 设置状态指标的当前值
	Set(gauge types.StateGauge, value int)
}

// NopRecorder 不记录任何内容的 Recorder
var NopRecorder Recorder = nopRecorder{}

type nopRecorder struct{}

func (nopRecorder) Inc(types.ProtocolEvent)   {}
func (nopRecorder) Set(types.StateGauge, int) {}
