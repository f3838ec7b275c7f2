// Package netsim 提供确定性的离散事件网络模拟器
//
// System 持有一组协议进程与一个虚拟时钟，所有事件（消息到达、定时器到期）
// 按（时间, 序号）存放在 btree 中，由单一事件循环逐个分发，因此相同种子
// 总是产生相同的执行。
//
// 网络模型：
//   - 每条消息以 [DelayMin, DelayMax] 内的均匀随机延迟到达
//   - 以 DropRate 概率丢弃
//   - 以 DupRate 概率复制一份，副本使用独立延迟（因而可能乱序）
//
// # 快速开始
//
//	report, err := netsim.Run(netsim.RunConfig{
//	    Guarantee: types.ExactlyOnceOrdered,
//	    Scenario:  netsim.Dropped(),
//	    Seed:      123,
//	})
//
// # 检查
//
// Check 按投递保证的属性（可靠、至多一次、有序）比较接收方投递的消息与
// 发送的消息，所有违反项通过 multierr 合并返回。
package netsim
