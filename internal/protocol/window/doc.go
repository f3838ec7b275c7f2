// Package window 实现带确认重传的滑动窗口发送方
//
// 至少一次、恰好一次、恰好一次有序三种投递保证共用同一个发送方，
// 只在窗口大小上不同（默认 10 / 10 / 4）。
//
// # 状态
//
//   - nextSeq: 下一个分配的序列号，从 1 开始
//   - base: 最小的未确认序列号
//   - unacked: 已发送未确认的 seq -> text，键恰好是 [base, nextSeq) 中未确认的序列号
//   - pending: 窗口已满时排队的本地输入（FIFO）
//   - 一个名为 "rtx" 的单次重传定时器，当且仅当 unacked 非空时处于激活状态
//
// # 重传策略
//
// 定时器到期时只重传 base 对应的一条消息（go-back-one），然后重新激活定时器。
// base 前移时重启定时器，全部确认后取消定时器。
//
// # 使用示例
//
//	s, err := window.New("receiver", window.WithWindow(4))
//	if err != nil {
//	    return err
//	}
//	s.OnLocalMessage(types.NewLocal("hello"), ctx)
package window
