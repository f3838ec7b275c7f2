package runtime

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-guarantees/config"
	"github.com/dep2p/go-guarantees/internal/core/metrics"
	"github.com/dep2p/go-guarantees/internal/util/logger"
	"github.com/dep2p/go-guarantees/pkg/interfaces"
	"github.com/dep2p/go-guarantees/pkg/types"
)

var log = logger.Logger("core/runtime")

// Network 节点之间的内存链路
//
// 消息以二进制编码传输，按 NetworkConfig 注入丢包、复制与随机延迟。
// 延迟与协议定时器都按 RuntimeConfig.TimeScale 缩放。
type Network struct {
	clock     clock.Clock
	netCfg    config.NetworkConfig
	rtCfg     config.RuntimeConfig
	collector *metrics.Collector

	rngMu sync.Mutex
	rng   *rand.Rand

	mu     sync.RWMutex
	nodes  map[string]*Node
	closed bool
}

// NewNetwork 创建网络
//
// clk 为 nil 时使用真实时钟，collector 可以为 nil。
func NewNetwork(cfg *config.Config, clk clock.Clock, collector *metrics.Collector) *Network {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if clk == nil {
		clk = clock.New()
	}
	seed := cfg.Simulation.Seed
	return &Network{
		clock:     clk,
		netCfg:    cfg.Network,
		rtCfg:     cfg.Runtime,
		collector: collector,
		rng:       rand.New(rand.NewPCG(seed, seed)),
		nodes:     make(map[string]*Node),
	}
}

// Clock 返回网络使用的时钟
func (n *Network) Clock() clock.Clock { return n.clock }

// AddNode 注册并启动承载 proc 的节点
func (n *Network) AddNode(id string, proc interfaces.Process) (*Node, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil, ErrClosed
	}
	if _, ok := n.nodes[id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, id)
	}
	node := newNode(id, proc, n)
	n.nodes[id] = node
	node.start()
	return node, nil
}

// RemoveNode 停止并移除节点
func (n *Network) RemoveNode(id string) {
	n.mu.Lock()
	node, ok := n.nodes[id]
	delete(n.nodes, id)
	n.mu.Unlock()
	if ok {
		node.Close()
	}
}

// Close 停止所有节点，此后到达的消息被丢弃
func (n *Network) Close() {
	n.mu.Lock()
	n.closed = true
	nodes := n.nodes
	n.nodes = make(map[string]*Node)
	n.mu.Unlock()

	for _, node := range nodes {
		node.Close()
	}
}

func (n *Network) scale(d time.Duration) time.Duration {
	return n.rtCfg.Scale(d)
}

// send 由节点邮箱 goroutine 调用
func (n *Network) send(from, to string, msg *types.Message) {
	data, err := msg.MarshalBinary()
	if err != nil {
		log.Warn("编码消息失败", "from", from, "to", to, "err", err)
		return
	}
	size := msg.WireSize()
	n.collector.ObserveWire(metrics.DirectionOut, size)

	delays, ok := n.fate()
	if !ok {
		n.collector.ObserveWire(metrics.DirectionDropped, size)
		return
	}
	for _, d := range delays {
		n.clock.AfterFunc(n.scale(d), func() { n.arrive(from, to, data, size) })
	}
}

// fate 决定消息是否被丢弃以及各副本的延迟
func (n *Network) fate() ([]time.Duration, bool) {
	n.rngMu.Lock()
	defer n.rngMu.Unlock()

	if n.netCfg.DropRate > 0 && n.rng.Float64() < n.netCfg.DropRate {
		return nil, false
	}
	delays := []time.Duration{n.delay()}
	if n.netCfg.DupRate > 0 && n.rng.Float64() < n.netCfg.DupRate {
		delays = append(delays, n.delay())
	}
	return delays, true
}

func (n *Network) delay() time.Duration {
	lo, hi := n.netCfg.DelayMin.Duration(), n.netCfg.DelayMax.Duration()
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(n.rng.Int64N(int64(hi-lo)+1))
}

func (n *Network) arrive(from, to string, data []byte, size int) {
	n.mu.RLock()
	node, ok := n.nodes[to]
	n.mu.RUnlock()
	if !ok {
		return
	}

	var msg types.Message
	if err := msg.UnmarshalBinary(data); err != nil {
		log.Warn("解码消息失败", "from", from, "to", to, "err", err)
		return
	}
	n.collector.ObserveWire(metrics.DirectionIn, size)
	node.receive(&msg, from)
}
