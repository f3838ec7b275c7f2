package netsim

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	guarantees "github.com/dep2p/go-guarantees"
	"github.com/dep2p/go-guarantees/config"
	"github.com/dep2p/go-guarantees/internal/core/metrics"
	"github.com/dep2p/go-guarantees/pkg/types"
)

// ============================================================================
//                              场景
// ============================================================================

// Scenario 网络场景
type Scenario struct {
	// Name 场景名称
	Name string

	// Messages 默认消息数
	Messages int

	// Network 网络条件
	Network config.NetworkConfig

	// MaxSenderSent 发送方线上消息数上限，0 表示不检查
	MaxSenderSent uint64
}

// Normal 正常网络：固定 1s 延迟，无故障
func Normal() Scenario {
	return Scenario{Name: "NORMAL", Messages: 5, Network: config.DefaultNetworkConfig(), MaxSenderSent: 5}
}

// NormalNonUnique 正常网络，消息文本可能重复
func NormalNonUnique() Scenario {
	return Scenario{Name: "NORMAL NON-UNIQUE", Messages: 10, Network: config.DefaultNetworkConfig(), MaxSenderSent: 10}
}

// Delayed 延迟在 [1s, 3s] 内随机（产生乱序）
func Delayed() Scenario {
	n := config.DefaultNetworkConfig()
	n.DelayMin, n.DelayMax = config.Duration(time.Second), config.Duration(3*time.Second)
	return Scenario{Name: "DELAYED", Messages: 5, Network: n}
}

// Duplicated 30% 的消息被复制
func Duplicated() Scenario {
	n := config.DefaultNetworkConfig()
	n.DupRate = 0.3
	return Scenario{Name: "DUPLICATED", Messages: 5, Network: n}
}

// DelayedDuplicated 随机延迟 + 复制
func DelayedDuplicated() Scenario {
	n := Delayed().Network
	n.DupRate = 0.3
	return Scenario{Name: "DELAYED+DUPLICATED", Messages: 5, Network: n}
}

// Dropped 30% 的消息被丢弃
func Dropped() Scenario {
	n := config.DefaultNetworkConfig()
	n.DropRate = 0.3
	return Scenario{Name: "DROPPED", Messages: 5, Network: n}
}

// Chaos 随机延迟 + 复制 + 丢弃
func Chaos() Scenario {
	return Scenario{Name: "CHAOS MONKEY", Messages: 50, Network: config.FaultyNetworkConfig()}
}

// Suite 返回基本场景集合
func Suite() []Scenario {
	return []Scenario{Normal(), NormalNonUnique(), Delayed(), Duplicated(), DelayedDuplicated(), Dropped()}
}

// ============================================================================
//                              运行
// ============================================================================

// RunConfig 单次运行配置
type RunConfig struct {
	// Guarantee 投递保证
	Guarantee types.Guarantee

	// Scenario 网络场景
	Scenario Scenario

	// Seed 随机种子
	Seed uint64

	// Messages 消息数，0 表示使用场景默认值
	Messages int

	// Config 协议配置，nil 表示默认配置
	Config *config.Config

	// Metrics 指标收集器（可选）
	Metrics *metrics.Collector

	// MaxSteps 事件数上限，0 表示默认值
	MaxSteps int
}

func (c RunConfig) messages() int {
	if c.Messages > 0 {
		return c.Messages
	}
	return c.Scenario.Messages
}

// Report 单次运行报告
type Report struct {
	RunID     string          `json:"runId"`
	Guarantee types.Guarantee `json:"guarantee"`
	Scenario  string          `json:"scenario"`
	Seed      uint64          `json:"seed"`
	Faulty    bool            `json:"faulty"`

	// Messages 输入的消息数
	Messages int `json:"messages"`
	// Delivered 接收方投递的消息数
	Delivered int `json:"delivered"`
	// NetMessages 发送到网络的消息数
	NetMessages uint64 `json:"netMessages"`
	// Traffic 发送到网络的字节数
	Traffic uint64 `json:"traffic"`
	// SenderSent 发送方发出的消息数
	SenderSent uint64 `json:"senderSent"`
	// ReceiverSent 接收方发出的消息数
	ReceiverSent uint64 `json:"receiverSent"`
	// Steps 处理的事件数
	Steps int `json:"steps"`
	// SimTime 虚拟时间
	SimTime time.Duration `json:"simTime"`
	// Throughput 消息数 / 虚拟秒
	Throughput float64 `json:"throughput"`
}

// Name 返回测试名称，如 "[EXACTLY ONCE] DROPPED"
func (r *Report) Name() string {
	return fmt.Sprintf("[%s] %s", r.Guarantee.Title(), r.Scenario)
}

// Run 在模拟系统中运行一个场景并检查投递保证
//
// 检查失败时同时返回报告与错误。
func Run(cfg RunConfig) (*Report, error) {
	opts := []Option{WithMaxSteps(cfg.MaxSteps)}
	if cfg.Metrics != nil {
		opts = append(opts, WithWireObserver(cfg.Metrics))
	}
	sys := NewSystem(cfg.Seed, opts...)
	sys.Network().Apply(cfg.Scenario.Network)

	factoryOpts := []guarantees.Option{guarantees.WithConfig(cfg.Config)}
	if cfg.Metrics != nil {
		factoryOpts = append(factoryOpts, guarantees.WithRecorder(cfg.Metrics))
	}
	sender, receiver, err := guarantees.NewPair(cfg.Guarantee, ReceiverID, factoryOpts...)
	if err != nil {
		return nil, err
	}
	if err := sys.AddProcess(SenderID, sender); err != nil {
		return nil, err
	}
	if err := sys.AddProcess(ReceiverID, receiver); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:     uuid.NewString(),
		Guarantee: cfg.Guarantee,
		Scenario:  cfg.Scenario.Name,
		Seed:      cfg.Seed,
		Faulty:    cfg.Scenario.Network.Faulty(),
		Messages:  cfg.messages(),
	}

	sent, err := SendMessages(sys, report.Messages)
	if err != nil {
		return nil, err
	}
	stepErr := sys.StepUntilNoEvents()
	delivered := sys.ReadLocalMessages(ReceiverID)

	report.Delivered = len(delivered)
	report.NetMessages = sys.Network().MessageCount()
	report.Traffic = sys.Network().Traffic()
	report.SenderSent = sys.SentMessageCount(SenderID)
	report.ReceiverSent = sys.SentMessageCount(ReceiverID)
	report.Steps = sys.StepCount()
	report.SimTime = sys.Time()
	report.Throughput = throughput(report.Messages, report.SimTime)

	if stepErr != nil {
		return report, stepErr
	}

	err = Check(delivered, sent, PropertiesOf(cfg.Guarantee))
	if limit := cfg.Scenario.MaxSenderSent; limit > 0 && report.SenderSent > limit {
		err = multierr.Append(err, fmt.Errorf("%w: %d > %d", ErrTooManySent, report.SenderSent, limit))
	}

	log.Debug("场景运行完成",
		"name", report.Name(),
		"seed", cfg.Seed,
		"delivered", report.Delivered,
		"netMessages", report.NetMessages,
		"time", report.SimTime,
		"ok", err == nil)
	return report, err
}

func throughput(messages int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return math.Inf(1)
	}
	return float64(messages) / elapsed.Seconds()
}

// Result 场景集合中一个场景的结果
type Result struct {
	Scenario Scenario
	Report   *Report
	Err      error
}

// Name 返回测试名称
func (r Result) Name(g types.Guarantee) string {
	return fmt.Sprintf("[%s] %s", g.Title(), r.Scenario.Name)
}

// RunSuite 依次运行基本场景集合，base.Scenario 与 base.Messages 被忽略
func RunSuite(base RunConfig) []Result {
	suite := Suite()
	results := make([]Result, 0, len(suite))
	for _, sc := range suite {
		cfg := base
		cfg.Scenario = sc
		cfg.Messages = 0
		report, err := Run(cfg)
		results = append(results, Result{Scenario: sc, Report: report, Err: err})
	}
	return results
}
