package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dep2p/go-guarantees/pkg/interfaces"
	"github.com/dep2p/go-guarantees/pkg/types"
)

const namespace = "guarantees"

// 流量方向
const (
	// DirectionOut 进程发出的线上消息
	DirectionOut = "out"
	// DirectionIn 送达进程的线上消息（含重复）
	DirectionIn = "in"
	// DirectionDropped 被网络丢弃的线上消息
	DirectionDropped = "dropped"
)

// Collector 协议指标收集器
type Collector struct {
	registry *prometheus.Registry

	events       *prometheus.CounterVec
	state        *prometheus.GaugeVec
	wireMessages *prometheus.CounterVec
	wireBytes    *prometheus.CounterVec
}

// NewCollector 创建使用独立 Registry 的收集器
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "protocol_events_total",
			Help:      "Protocol events by guarantee, role and event.",
		}, []string{"guarantee", "role", "event"}),
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "protocol_state",
			Help:      "Current protocol state sizes by guarantee, role and gauge.",
		}, []string{"guarantee", "role", "gauge"}),
		wireMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wire_messages_total",
			Help:      "Wire messages by direction.",
		}, []string{"direction"}),
		wireBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wire_bytes_total",
			Help:      "Wire bytes (JSON encoded size) by direction.",
		}, []string{"direction"}),
	}
	c.registry.MustRegister(c.events, c.state, c.wireMessages, c.wireBytes)
	return c
}

// Registry 返回底层 Registry
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler 返回 /metrics HTTP 处理器
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Recorder 返回绑定到（投递保证, 角色）的事件记录器
func (c *Collector) Recorder(g types.Guarantee, role types.Role) interfaces.Recorder {
	if c == nil {
		return interfaces.NopRecorder
	}
	return &recorder{
		events: c.events.MustCurryWith(prometheus.Labels{"guarantee": g.String(), "role": role.String()}),
		state:  c.state.MustCurryWith(prometheus.Labels{"guarantee": g.String(), "role": role.String()}),
	}
}

// ObserveWire 记录一条线上消息
func (c *Collector) ObserveWire(direction string, size int) {
	if c == nil {
		return
	}
	c.wireMessages.WithLabelValues(direction).Inc()
	c.wireBytes.WithLabelValues(direction).Add(float64(size))
}

// recorder 已绑定标签的 Recorder 实现
type recorder struct {
	events *prometheus.CounterVec
	state  *prometheus.GaugeVec
}

func (r *recorder) Inc(e types.ProtocolEvent) {
	r.events.WithLabelValues(e.String()).Inc()
}

func (r *recorder) Set(g types.StateGauge, v int) {
	r.state.WithLabelValues(g.String()).Set(float64(v))
}
