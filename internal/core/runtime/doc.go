// Package runtime 提供基于 goroutine 的实时协议运行时
//
// 每个协议进程由一个 Node 承载：Node 拥有唯一的邮箱 goroutine，
// 本地输入、线上消息与定时器到期都以闭包形式投递到邮箱并串行执行，
// 因此协议实现不需要任何锁。
//
// Network 是节点之间的内存链路：消息经二进制编码后按配置的丢包、
// 复制与延迟规则送达，延迟与协议定时器都按 RuntimeConfig.TimeScale 缩放。
//
// Session 把一对发送方/接收方节点绑定到一种投递保证，并以
// rate.Limiter 控制应用输入速率。
//
// # 快速开始
//
//	net := runtime.NewNetwork(cfg, clock.New(), collector)
//	defer net.Close()
//
//	s, err := runtime.NewSession(net, types.ExactlyOnceOrdered, cfg)
//	if err != nil {
//	    return err
//	}
//	for _, text := range texts {
//	    if err := s.Submit(ctx, text); err != nil {
//	        return err
//	    }
//	}
//	delivered, err := s.WaitDelivered(ctx, len(texts))
package runtime
