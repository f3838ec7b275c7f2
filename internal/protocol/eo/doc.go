// Package eo 实现恰好一次（exactly-once）接收方
//
// 发送方使用 window 包的滑动窗口发送方（默认窗口 10）。
//
// 接收方用一个循环位图记录 nextSeq 之后已经投递过的序列号：
// 位图逻辑下标 0 对应 nextSeq，物理下标为 (head + offset) % win。
//
//   - seq < nextSeq: 已投递过，只重发 ACK
//   - seq == nextSeq: 投递，前移 head，并越过所有已标记的位
//   - seq > nextSeq: 未标记则投递并标记
//
// 无论哪种情况都回复 ACK。投递不保证顺序。
//
// 位图初始容量 32 位；offset 超出容量时扩容：容量不足 1024 时按倍数增长，
// 仍不够则精确扩容到 offset+1。扩容时已有的位按相对偏移复制，head 归零。
package eo
