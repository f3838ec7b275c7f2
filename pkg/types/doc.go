// Package types 定义投递保证协议的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
//   - enums.go    - Guarantee 投递保证级别, Role 进程角色
//   - message.go  - Message 线上消息与本地消息 (DATA / ACK / MESSAGE)
//   - codec.go    - JSON 与二进制编解码
//   - events.go   - 协议事件与状态指标类型
//   - errors.go   - 公共错误定义
//
// # 消息格式
//
// 线上消息（发送方 ↔ 接收方）:
//
//	DATA{seq, text}   一条带序列号的应用消息
//	ACK{seq}          确认收到对应序列号的 DATA
//
// 本地消息（进程 ↔ 应用）:
//
//	MESSAGE{text}     待发送或已投递的应用消息
//
// 序列号从 1 开始，由发送方严格递增分配，永不复用。
package types
