package netsim

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/btree"

	"github.com/dep2p/go-guarantees/internal/util/logger"
	"github.com/dep2p/go-guarantees/pkg/interfaces"
	"github.com/dep2p/go-guarantees/pkg/types"
)

var log = logger.Logger("core/netsim")

// DefaultMaxSteps 默认的事件数上限
const DefaultMaxSteps = 1_000_000

// ============================================================================
//                              事件
// ============================================================================

type eventKind int

const (
	eventMessage eventKind = iota
	eventTimer
)

// event 队列中的事件，按 (at, id) 排序
type event struct {
	at   time.Duration
	id   uint64
	kind eventKind

	to    string
	from  string
	msg   *types.Message
	timer string
}

func eventLess(a, b *event) bool {
	if a.at != b.at {
		return a.at < b.at
	}
	return a.id < b.id
}

// node 进程及其运行时状态
type node struct {
	id     string
	proc   interfaces.Process
	local  []*types.Message
	sent   uint64
	timers map[string]*event
}

// ============================================================================
//                              System
// ============================================================================

// System 离散事件模拟系统
//
// 非并发安全：所有方法必须在同一 goroutine 中调用。
type System struct {
	seed     uint64
	rng      *rand.Rand
	now      time.Duration
	queue    *btree.BTreeG[*event]
	nextID   uint64
	steps    int
	maxSteps int

	nodes   map[string]*node
	network *Network
}

// Option 系统选项
type Option func(*System)

// WithMaxSteps 设置事件数上限
func WithMaxSteps(n int) Option {
	return func(s *System) {
		if n > 0 {
			s.maxSteps = n
		}
	}
}

// WithWireObserver 设置线上流量观察者
func WithWireObserver(o WireObserver) Option {
	return func(s *System) {
		s.network.observer = o
	}
}

// NewSystem 创建模拟系统，相同种子产生相同的执行
func NewSystem(seed uint64, opts ...Option) *System {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	s := &System{
		seed:     seed,
		rng:      rng,
		queue:    btree.NewG(8, eventLess),
		maxSteps: DefaultMaxSteps,
		nodes:    make(map[string]*node),
		network:  newNetwork(rng),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddProcess 添加进程
func (s *System) AddProcess(id string, p interfaces.Process) error {
	if _, ok := s.nodes[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProcess, id)
	}
	s.nodes[id] = &node{id: id, proc: p, timers: make(map[string]*event)}
	return nil
}

// Network 返回模拟网络
func (s *System) Network() *Network { return s.network }

// Rand 返回系统随机数源
func (s *System) Rand() *rand.Rand { return s.rng }

// Seed 返回系统种子
func (s *System) Seed() uint64 { return s.seed }

// Time 返回当前虚拟时间
func (s *System) Time() time.Duration { return s.now }

// StepCount 返回已处理的事件数
func (s *System) StepCount() int { return s.steps }

// Pending 返回队列中的事件数
func (s *System) Pending() int { return s.queue.Len() }

// ============================================================================
//                              输入与查询
// ============================================================================

// SendLocalMessage 向进程发送本地消息，立即同步处理
func (s *System) SendLocalMessage(id string, msg *types.Message) error {
	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProcess, id)
	}
	n.proc.OnLocalMessage(msg, &nodeContext{sys: s, node: n})
	return nil
}

// ReadLocalMessages 取出进程投递给本地应用的消息
func (s *System) ReadLocalMessages(id string) []*types.Message {
	n, ok := s.nodes[id]
	if !ok {
		return nil
	}
	out := n.local
	n.local = nil
	return out
}

// SentMessageCount 返回进程发送的线上消息数
func (s *System) SentMessageCount(id string) uint64 {
	if n, ok := s.nodes[id]; ok {
		return n.sent
	}
	return 0
}

// ============================================================================
//                              单步执行
// ============================================================================

// Step 处理下一个事件，没有事件时返回 false
func (s *System) Step() bool {
	ev, ok := s.queue.DeleteMin()
	if !ok {
		return false
	}
	s.steps++
	s.now = ev.at
	s.dispatch(ev)
	return true
}

// Steps 最多处理 n 个事件
func (s *System) Steps(n int) {
	for i := 0; i < n && s.Step(); i++ {
	}
}

// StepFor 处理 d 时间内的所有事件，并将时钟推进 d
func (s *System) StepFor(d time.Duration) {
	deadline := s.now + d
	for {
		ev, ok := s.queue.Min()
		if !ok || ev.at > deadline {
			break
		}
		s.Step()
	}
	s.now = deadline
}

// StepUntilNoEvents 处理事件直到队列为空
//
// 事件总数超过上限时返回 ErrStepLimit。
func (s *System) StepUntilNoEvents() error {
	for s.queue.Len() > 0 {
		if s.steps >= s.maxSteps {
			log.Warn("事件数超过上限", "steps", s.steps, "pending", s.queue.Len(), "time", s.now)
			return fmt.Errorf("%w: %d steps at %s", ErrStepLimit, s.steps, s.now)
		}
		s.Step()
	}
	return nil
}

func (s *System) dispatch(ev *event) {
	n, ok := s.nodes[ev.to]
	if !ok {
		return
	}
	ctx := &nodeContext{sys: s, node: n}

	switch ev.kind {
	case eventMessage:
		s.network.observe(directionIn, ev.msg.WireSize())
		n.proc.OnMessage(ev.msg, ev.from, ctx)
	case eventTimer:
		if n.timers[ev.timer] == ev {
			delete(n.timers, ev.timer)
		}
		n.proc.OnTimer(ev.timer, ctx)
	}
}

func (s *System) schedule(ev *event) {
	s.nextID++
	ev.id = s.nextID
	s.queue.ReplaceOrInsert(ev)
}

// ============================================================================
//                              进程上下文
// ============================================================================

// nodeContext 实现 interfaces.Context
type nodeContext struct {
	sys  *System
	node *node
}

var _ interfaces.Context = (*nodeContext)(nil)

func (c *nodeContext) Send(msg *types.Message, to string) {
	c.node.sent++
	for _, d := range c.sys.network.transmit(msg) {
		c.sys.schedule(&event{
			at:   c.sys.now + d,
			kind: eventMessage,
			to:   to,
			from: c.node.id,
			msg:  msg.Clone(),
		})
	}
}

func (c *nodeContext) SendLocal(msg *types.Message) {
	c.node.local = append(c.node.local, msg.Clone())
}

func (c *nodeContext) SetTimer(name string, d time.Duration) {
	c.CancelTimer(name)
	ev := &event{
		at:    c.sys.now + d,
		kind:  eventTimer,
		to:    c.node.id,
		timer: name,
	}
	c.sys.schedule(ev)
	c.node.timers[name] = ev
}

func (c *nodeContext) CancelTimer(name string) {
	if ev, ok := c.node.timers[name]; ok {
		c.sys.queue.Delete(ev)
		delete(c.node.timers, name)
	}
}
