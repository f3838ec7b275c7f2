// Package prototest 提供协议测试辅助实现
//
// MockContext 记录进程对运行时的全部调用，MockRecorder 记录协议事件，
// 供各协议包的单元测试断言使用。
package prototest

import (
	"sync"
	"time"

	"github.com/dep2p/go-guarantees/pkg/interfaces"
	"github.com/dep2p/go-guarantees/pkg/types"
)

// ============================================================================
//                              Mock Context
// ============================================================================

// SentMessage 已发送的线上消息
type SentMessage struct {
	Msg *types.Message
	To  string
}

// TimerCall SetTimer 调用记录
type TimerCall struct {
	Name     string
	Duration time.Duration
}

// MockContext 模拟运行时上下文（用于测试）
type MockContext struct {
	mu sync.Mutex

	// Sent 已发送的线上消息
	Sent []SentMessage

	// Local 已投递给本地应用的消息
	Local []*types.Message

	// TimersSet SetTimer 调用记录
	TimersSet []TimerCall

	// TimersCancelled CancelTimer 调用记录
	TimersCancelled []string

	// Active 当前处于激活状态的定时器
	Active map[string]time.Duration
}

var _ interfaces.Context = (*MockContext)(nil)

// NewMockContext 创建模拟上下文
func NewMockContext() *MockContext {
	return &MockContext{Active: make(map[string]time.Duration)}
}

// Send 记录线上消息
func (c *MockContext) Send(msg *types.Message, to string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sent = append(c.Sent, SentMessage{Msg: msg.Clone(), To: to})
}

// SendLocal 记录本地投递
func (c *MockContext) SendLocal(msg *types.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Local = append(c.Local, msg.Clone())
}

// SetTimer 记录定时器设置，同名定时器被替换
func (c *MockContext) SetTimer(name string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.TimersSet = append(c.TimersSet, TimerCall{Name: name, Duration: d})
	c.Active[name] = d
}

// CancelTimer 记录定时器取消
func (c *MockContext) CancelTimer(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.TimersCancelled = append(c.TimersCancelled, name)
	delete(c.Active, name)
}

// Fire 模拟定时器到期：从激活集合移除后回调进程
func (c *MockContext) Fire(p interfaces.Process, name string) {
	c.mu.Lock()
	delete(c.Active, name)
	c.mu.Unlock()
	p.OnTimer(name, c)
}

// SentOfType 返回指定类型的已发送消息
func (c *MockContext) SentOfType(t types.MessageType) []*types.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*types.Message
	for _, s := range c.Sent {
		if s.Msg.Type == t {
			out = append(out, s.Msg)
		}
	}
	return out
}

// SentSeqs 返回指定类型已发送消息的序列号
func (c *MockContext) SentSeqs(t types.MessageType) []uint64 {
	msgs := c.SentOfType(t)
	seqs := make([]uint64, 0, len(msgs))
	for _, m := range msgs {
		seqs = append(seqs, m.Seq)
	}
	return seqs
}

// Delivered 返回已投递给本地应用的文本
func (c *MockContext) Delivered() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	texts := make([]string, 0, len(c.Local))
	for _, m := range c.Local {
		texts = append(texts, m.Text)
	}
	return texts
}

// IsActive 检查定时器是否处于激活状态
func (c *MockContext) IsActive(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.Active[name]
	return ok
}

// Reset 清空所有记录（激活的定时器保留）
func (c *MockContext) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sent = nil
	c.Local = nil
	c.TimersSet = nil
	c.TimersCancelled = nil
}

// ============================================================================
//                              Mock Recorder
// ============================================================================

// MockRecorder 记录协议事件计数与最新的状态值
type MockRecorder struct {
	mu     sync.Mutex
	events map[types.ProtocolEvent]int
	gauges map[types.StateGauge]int
}

var _ interfaces.Recorder = (*MockRecorder)(nil)

// NewMockRecorder 创建模拟记录器
func NewMockRecorder() *MockRecorder {
	return &MockRecorder{
		events: make(map[types.ProtocolEvent]int),
		gauges: make(map[types.StateGauge]int),
	}
}

// Inc 事件计数加一
func (r *MockRecorder) Inc(e types.ProtocolEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[e]++
}

// Set 记录状态值
func (r *MockRecorder) Set(g types.StateGauge, v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gauges[g] = v
}

// Count 返回事件计数
func (r *MockRecorder) Count(e types.ProtocolEvent) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[e]
}

// Gauge 返回状态的最新值
func (r *MockRecorder) Gauge(g types.StateGauge) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gauges[g]
}
