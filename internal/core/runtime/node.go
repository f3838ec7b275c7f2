package runtime

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-guarantees/pkg/interfaces"
	"github.com/dep2p/go-guarantees/pkg/types"
)

const mailboxSize = 1024

// nodeTimer 带代号的定时器，代号不匹配的到期回调被忽略
type nodeTimer struct {
	timer *clock.Timer
	gen   uint64
}

// Node 承载一个协议进程
type Node struct {
	id   string
	proc interfaces.Process
	net  *Network

	mailbox chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once

	// 仅在邮箱 goroutine 中访问
	timers map[string]*nodeTimer
	gen    uint64

	mu        sync.Mutex
	delivered []*types.Message
	notify    chan struct{}
}

func newNode(id string, proc interfaces.Process, net *Network) *Node {
	return &Node{
		id:      id,
		proc:    proc,
		net:     net,
		mailbox: make(chan func(), mailboxSize),
		done:    make(chan struct{}),
		timers:  make(map[string]*nodeTimer),
		notify:  make(chan struct{}, 1),
	}
}

// ID 返回节点 ID
func (n *Node) ID() string { return n.id }

func (n *Node) start() {
	n.wg.Add(1)
	go n.loop()
}

func (n *Node) loop() {
	defer n.wg.Done()
	for {
		select {
		case fn := <-n.mailbox:
			fn()
		case <-n.done:
			return
		}
	}
}

// post 投递闭包到邮箱，节点关闭后返回 false
func (n *Node) post(fn func()) bool {
	select {
	case n.mailbox <- fn:
		return true
	case <-n.done:
		return false
	}
}

// Input 向进程投递本地输入
func (n *Node) Input(msg *types.Message) error {
	if !n.post(func() { n.proc.OnLocalMessage(msg, n.ctx()) }) {
		return ErrClosed
	}
	return nil
}

// receive 向进程投递线上消息
func (n *Node) receive(msg *types.Message, from string) {
	n.post(func() { n.proc.OnMessage(msg, from, n.ctx()) })
}

// Sync 等待此前投递到邮箱的事件全部处理完毕
func (n *Node) Sync() error {
	done := make(chan struct{})
	if !n.post(func() { close(done) }) {
		return ErrClosed
	}
	select {
	case <-done:
		return nil
	case <-n.done:
		return ErrClosed
	}
}

// Delivered 返回已投递给本地应用的消息副本
func (n *Node) Delivered() []*types.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*types.Message(nil), n.delivered...)
}

// Notify 每次本地投递后收到通知（合并）
func (n *Node) Notify() <-chan struct{} { return n.notify }

// Close 停止节点并取消所有定时器
func (n *Node) Close() {
	n.once.Do(func() {
		close(n.done)
		n.wg.Wait()
		for name, t := range n.timers {
			t.timer.Stop()
			delete(n.timers, name)
		}
	})
}

// ============================================================================
//                              interfaces.Context 实现
// ============================================================================

// nodeContext 仅在邮箱 goroutine 中使用
type nodeContext struct {
	n *Node
}

var _ interfaces.Context = nodeContext{}

// Send 经网络发送线上消息
func (c nodeContext) Send(msg *types.Message, to string) {
	c.n.net.send(c.n.id, to, msg)
}

// SendLocal 记录本地投递并发出通知
func (c nodeContext) SendLocal(msg *types.Message) {
	n := c.n
	n.mu.Lock()
	n.delivered = append(n.delivered, msg.Clone())
	n.mu.Unlock()

	select {
	case n.notify <- struct{}{}:
	default:
	}
}

// SetTimer 设置一次性定时器，替换同名定时器
func (c nodeContext) SetTimer(name string, d time.Duration) {
	n := c.n
	c.CancelTimer(name)
	n.gen++
	gen := n.gen
	t := n.net.clock.AfterFunc(n.net.scale(d), func() {
		n.post(func() { n.fire(name, gen) })
	})
	n.timers[name] = &nodeTimer{timer: t, gen: gen}
}

// CancelTimer 取消定时器
func (c nodeContext) CancelTimer(name string) {
	if t, ok := c.n.timers[name]; ok {
		t.timer.Stop()
		delete(c.n.timers, name)
	}
}

func (n *Node) fire(name string, gen uint64) {
	t, ok := n.timers[name]
	if !ok || t.gen != gen {
		return
	}
	delete(n.timers, name)
	n.proc.OnTimer(name, n.ctx())
}

func (n *Node) ctx() interfaces.Context { return nodeContext{n: n} }
