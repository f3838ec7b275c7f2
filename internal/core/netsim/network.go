package netsim

import (
	"math/rand/v2"
	"time"

	"github.com/dep2p/go-guarantees/config"
	"github.com/dep2p/go-guarantees/pkg/types"
)

// WireObserver 线上流量观察者
//
// *metrics.Collector 实现该接口。
type WireObserver interface {
	ObserveWire(direction string, size int)
}

// 流量方向（与 metrics 包的标签值一致）
const (
	directionOut     = "out"
	directionIn      = "in"
	directionDropped = "dropped"
)

// Network 模拟网络
type Network struct {
	rng *rand.Rand

	delayMin time.Duration
	delayMax time.Duration
	dupRate  float64
	dropRate float64

	messageCount uint64
	traffic      uint64
	observer     WireObserver
}

func newNetwork(rng *rand.Rand) *Network {
	n := &Network{rng: rng}
	n.Apply(config.DefaultNetworkConfig())
	return n
}

// Apply 应用网络配置
func (n *Network) Apply(c config.NetworkConfig) {
	n.SetDelays(c.DelayMin.Duration(), c.DelayMax.Duration())
	n.SetDupRate(c.DupRate)
	n.SetDropRate(c.DropRate)
}

// SetDelay 设置固定延迟
func (n *Network) SetDelay(d time.Duration) {
	n.SetDelays(d, d)
}

// SetDelays 设置延迟范围
func (n *Network) SetDelays(lo, hi time.Duration) {
	if hi < lo {
		lo, hi = hi, lo
	}
	n.delayMin, n.delayMax = lo, hi
}

// SetDupRate 设置重复概率
func (n *Network) SetDupRate(p float64) { n.dupRate = p }

// SetDropRate 设置丢包概率
func (n *Network) SetDropRate(p float64) { n.dropRate = p }

// MessageCount 返回发送到网络的消息总数（含被丢弃的）
func (n *Network) MessageCount() uint64 { return n.messageCount }

// Traffic 返回发送到网络的字节总数
func (n *Network) Traffic() uint64 { return n.traffic }

// transmit 决定一条消息的命运，返回各副本的到达延迟（被丢弃时为空）
func (n *Network) transmit(msg *types.Message) []time.Duration {
	size := msg.WireSize()
	n.messageCount++
	n.traffic += uint64(size)
	n.observe(directionOut, size)

	if n.dropRate > 0 && n.rng.Float64() < n.dropRate {
		n.observe(directionDropped, size)
		return nil
	}
	delays := []time.Duration{n.delay()}
	if n.dupRate > 0 && n.rng.Float64() < n.dupRate {
		delays = append(delays, n.delay())
	}
	return delays
}

func (n *Network) delay() time.Duration {
	if n.delayMax == n.delayMin {
		return n.delayMin
	}
	return n.delayMin + time.Duration(n.rng.Int64N(int64(n.delayMax-n.delayMin)+1))
}

func (n *Network) observe(direction string, size int) {
	if n.observer != nil {
		n.observer.ObserveWire(direction, size)
	}
}
