// Package interfaces 定义投递保证协议的公共接口
//
// # 协作契约
//
// 协议核心不关心进程如何被调度、消息如何在网络中传输，
// 这些由外部运行时（模拟器或实时运行时）提供：
//
//   - process.go   - Process 进程（发送方/接收方状态机）与 Context 运行时上下文
//   - recorder.go  - Recorder 协议事件记录（指标）
//
// # 单线程 Actor 模型
//
// 运行时保证同一个 Process 实例在任意时刻只处理一个事件：
// 本地输入、网络消息到达、或定时器到期。
// 因此 Process 的实现不需要任何内部锁。
package interfaces
