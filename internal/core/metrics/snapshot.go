package metrics

import (
	dto "github.com/prometheus/client_model/go"

	"github.com/dep2p/go-guarantees/pkg/types"
)

// Snapshot 指标快照，用于命令行汇总输出
type Snapshot struct {
	// Events 协议事件计数，键为 "guarantee/role/event"
	Events map[string]float64 `json:"events"`

	// State 协议状态，键为 "guarantee/role/gauge"
	State map[string]float64 `json:"state"`

	// WireMessages 按方向的线上消息数
	WireMessages map[string]float64 `json:"wireMessages"`

	// WireBytes 按方向的线上字节数
	WireBytes map[string]float64 `json:"wireBytes"`
}

// Event 返回指定事件的计数
func (s Snapshot) Event(g types.Guarantee, role types.Role, e types.ProtocolEvent) float64 {
	return s.Events[g.String()+"/"+role.String()+"/"+e.String()]
}

// Snapshot 采集当前所有指标
func (c *Collector) Snapshot() Snapshot {
	snap := Snapshot{
		Events:       make(map[string]float64),
		State:        make(map[string]float64),
		WireMessages: make(map[string]float64),
		WireBytes:    make(map[string]float64),
	}
	if c == nil {
		return snap
	}

	families, err := c.registry.Gather()
	if err != nil {
		log.Warn("采集指标失败", "err", err)
		return snap
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := labelMap(m)
			switch mf.GetName() {
			case namespace + "_protocol_events_total":
				snap.Events[labels["guarantee"]+"/"+labels["role"]+"/"+labels["event"]] = m.GetCounter().GetValue()
			case namespace + "_protocol_state":
				snap.State[labels["guarantee"]+"/"+labels["role"]+"/"+labels["gauge"]] = m.GetGauge().GetValue()
			case namespace + "_wire_messages_total":
				snap.WireMessages[labels["direction"]] = m.GetCounter().GetValue()
			case namespace + "_wire_bytes_total":
				snap.WireBytes[labels["direction"]] = m.GetCounter().GetValue()
			}
		}
	}
	return snap
}

func labelMap(m *dto.Metric) map[string]string {
	out := make(map[string]string, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		out[lp.GetName()] = lp.GetValue()
	}
	return out
}
