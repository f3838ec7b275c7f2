// Package metrics 提供投递保证协议的监控指标
//
// 基于 Prometheus client_golang，Collector 使用独立的 Registry，提供：
//   - 协议事件计数: guarantees_protocol_events_total{guarantee,role,event}
//   - 协议状态: guarantees_protocol_state{guarantee,role,gauge}
//   - 线上流量: guarantees_wire_messages_total{direction} / guarantees_wire_bytes_total{direction}
//
// # 快速开始
//
//	c := metrics.NewCollector()
//
//	// 绑定到某个（投递保证, 角色）后交给协议进程
//	rec := c.Recorder(types.ExactlyOnceOrdered, types.RoleSender)
//	s, _ := window.New("receiver", window.WithRecorder(rec))
//
//	// 运行时记录线上流量
//	c.ObserveWire(metrics.DirectionOut, msg.WireSize())
//
//	// 汇总
//	snap := c.Snapshot()
//	fmt.Println(snap.Event(types.ExactlyOnceOrdered, types.RoleSender, types.EventDataRetransmitted))
//
// # 空 Collector
//
// 指标被禁用时 fx 模块提供 nil *Collector；nil Collector 的所有方法都是安全的空操作，
// Recorder 返回 interfaces.NopRecorder。
//
// # HTTP 端点
//
// Module 在配置了 ListenAddr 时通过 promhttp 暴露 /metrics。
package metrics
