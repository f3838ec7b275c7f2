// Package guarantees 提供消息投递保证协议
//
// 四种投递保证级别，均通过同一对 Process 接口（interfaces.Process）
// 由外部运行时驱动：
//
//   - AtMostOnce (AMO): 不重传；接收方缓冲有限的乱序消息，溢出时放弃缺口
//   - AtLeastOnce (ALO): 滑动窗口 + 超时重传；接收方投递每个到达的 DATA
//   - ExactlyOnce (EO): 滑动窗口 + 超时重传；接收方使用循环位图去重
//   - ExactlyOnceOrdered (EOO): 滑动窗口 + 超时重传；接收方重排序后按序投递
//
// # 快速开始
//
//	import "github.com/dep2p/go-guarantees"
//
//	sender, receiver, err := guarantees.NewPair(types.ExactlyOnceOrdered, "receiver")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// 由运行时在每个事件上回调
//	sender.OnLocalMessage(types.NewLocal("hello"), senderCtx)
//	receiver.OnMessage(msg, "sender", receiverCtx)
//
// # 配置
//
// 默认参数来自 config.NewConfig()：ALO/EO 窗口 10，EOO 窗口 4，重传超时 6.5s，
// AMO 缓冲 12，EO 位图初始 32 位。通过 WithConfig 覆盖：
//
//	cfg := config.NewConfig()
//	cfg.ExactlyOnceOrdered.Window = 8
//	s, err := guarantees.NewSender(types.ExactlyOnceOrdered, "receiver",
//	    guarantees.WithConfig(cfg),
//	)
//
// # 运行时
//
// 协议进程不持有锁，也不做任何阻塞操作。仓库提供两个运行时：
//
//   - internal/core/netsim: 确定性离散事件模拟器（延迟、重复、丢包注入）
//   - internal/core/runtime: 基于 goroutine 与时钟的实时运行时
//
// 命令行入口见 cmd/guarantees。
package guarantees
