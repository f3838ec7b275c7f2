package types

// ============================================================================
//                              ProtocolEvent - 协议事件
// ============================================================================

// ProtocolEvent 协议事件（计数类指标）
type ProtocolEvent int

const (
	// EventDataSent 首次发送 DATA
	EventDataSent ProtocolEvent = iota
	// EventDataRetransmitted 超时重传 DATA
	EventDataRetransmitted
	// EventDataQueued 窗口已满，消息进入待发送队列
	EventDataQueued
	// EventAckSent 发送 ACK
	EventAckSent
	// EventAckReceived 收到 ACK
	EventAckReceived
	// EventDelivered 投递给本地应用
	EventDelivered
	// EventDuplicate 重复消息被抑制
	EventDuplicate
	// EventBuffered 乱序消息进入重排序缓冲
	EventBuffered
	// EventSkipAhead 缓冲溢出，放弃缺口向前跳跃
	EventSkipAhead
	// EventSeenGrown 去重位图扩容
	EventSeenGrown
	// EventIgnored 未知消息类型被忽略
	EventIgnored
)

// String 返回事件名称（用作指标标签）
func (e ProtocolEvent) String() string {
	switch e {
	case EventDataSent:
		return "data_sent"
	case EventDataRetransmitted:
		return "data_retransmitted"
	case EventDataQueued:
		return "data_queued"
	case EventAckSent:
		return "ack_sent"
	case EventAckReceived:
		return "ack_received"
	case EventDelivered:
		return "delivered"
	case EventDuplicate:
		return "duplicate"
	case EventBuffered:
		return "buffered"
	case EventSkipAhead:
		return "skip_ahead"
	case EventSeenGrown:
		return "seen_grown"
	case EventIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              StateGauge - 状态指标
// ============================================================================

// StateGauge 协议状态（瞬时值指标）
type StateGauge int

const (
	// GaugeInFlight 已发送未确认的消息数
	GaugeInFlight StateGauge = iota
	// GaugePending 等待窗口空位的消息数
	GaugePending
	// GaugeBuffered 重排序缓冲中的消息数
	GaugeBuffered
	// GaugeSeenCapacity 去重位图容量
	GaugeSeenCapacity
)

// String 返回指标名称（用作指标标签）
func (g StateGauge) String() string {
	switch g {
	case GaugeInFlight:
		return "in_flight"
	case GaugePending:
		return "pending"
	case GaugeBuffered:
		return "buffered"
	case GaugeSeenCapacity:
		return "seen_capacity"
	default:
		return "unknown"
	}
}
