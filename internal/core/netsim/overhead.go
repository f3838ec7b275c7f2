package netsim

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/dep2p/go-guarantees/pkg/types"
)

// OverheadLimits 开销上限
type OverheadLimits struct {
	// NetMessages 网络消息数上限
	NetMessages uint64
	// Traffic 网络流量上限（字节）
	Traffic uint64
	// Throughput 吞吐量下限（消息/虚拟秒）
	Throughput float64
}

type overheadKey struct {
	g        types.Guarantee
	messages int
	faulty   bool
}

var overheadTable = map[overheadKey]OverheadLimits{
	{types.AtMostOnce, 100, false}:  {100, 20000, 0.6},
	{types.AtMostOnce, 100, true}:   {100, 20000, 0.6},
	{types.AtMostOnce, 1000, false}: {1000, 200000, 0.6},
	{types.AtMostOnce, 1000, true}:  {1000, 200000, 0.6},

	{types.AtLeastOnce, 100, false}:  {200, 20000, 0.6},
	{types.AtLeastOnce, 100, true}:   {500, 40000, 0.6},
	{types.AtLeastOnce, 1000, false}: {2000, 200000, 0.6},
	{types.AtLeastOnce, 1000, true}:  {5000, 400000, 0.6},

	{types.ExactlyOnce, 100, false}:  {200, 20000, 0.6},
	{types.ExactlyOnce, 100, true}:   {500, 40000, 0.6},
	{types.ExactlyOnce, 1000, false}: {2000, 200000, 0.6},
	{types.ExactlyOnce, 1000, true}:  {5000, 400000, 0.6},

	{types.ExactlyOnceOrdered, 100, false}:  {200, 25000, 0.4},
	{types.ExactlyOnceOrdered, 100, true}:   {500, 45000, 0.4},
	{types.ExactlyOnceOrdered, 1000, false}: {2000, 250000, 0.4},
	{types.ExactlyOnceOrdered, 1000, true}:  {5000, 450000, 0.4},
}

// OverheadMessageCounts 开销测试使用的消息数
var OverheadMessageCounts = []int{100, 500, 1000}

// LimitsFor 返回开销上限，没有上限时 ok 为 false
func LimitsFor(g types.Guarantee, messages int, faulty bool) (OverheadLimits, bool) {
	l, ok := overheadTable[overheadKey{g, messages, faulty}]
	return l, ok
}

// CheckOverhead 检查报告的开销是否在上限内
func (r *Report) CheckOverhead() error {
	limits, ok := LimitsFor(r.Guarantee, r.Messages, r.Faulty)
	if !ok {
		return nil
	}
	var err error
	if r.NetMessages > limits.NetMessages {
		err = multierr.Append(err, fmt.Errorf("%w: message count %d > %d", ErrOverhead, r.NetMessages, limits.NetMessages))
	}
	if r.Traffic > limits.Traffic {
		err = multierr.Append(err, fmt.Errorf("%w: traffic %d > %d", ErrOverhead, r.Traffic, limits.Traffic))
	}
	if r.Throughput < limits.Throughput {
		err = multierr.Append(err, fmt.Errorf("%w: throughput %.3f < %.1f", ErrOverhead, r.Throughput, limits.Throughput))
	}
	return err
}

// RunOverhead 依次以 100/500/1000 条消息运行并检查开销
//
// faulty 为 true 时使用故障网络（随机延迟 + 复制 + 丢弃），否则使用正常网络。
func RunOverhead(base RunConfig, faulty bool) ([]*Report, error) {
	sc := Normal()
	sc.Name = "OVERHEAD NORMAL"
	if faulty {
		sc = Chaos()
		sc.Name = "OVERHEAD FAULTY"
	}
	sc.MaxSenderSent = 0

	reports := make([]*Report, 0, len(OverheadMessageCounts))
	for _, n := range OverheadMessageCounts {
		cfg := base
		cfg.Scenario = sc
		cfg.Messages = n
		report, err := Run(cfg)
		if report != nil {
			reports = append(reports, report)
		}
		if err != nil {
			return reports, fmt.Errorf("%d messages: %w", n, err)
		}
		if err := report.CheckOverhead(); err != nil {
			return reports, fmt.Errorf("%d messages: %w", n, err)
		}
	}
	return reports, nil
}
