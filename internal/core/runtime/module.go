package runtime

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-guarantees/config"
	"github.com/dep2p/go-guarantees/internal/core/metrics"
)

// ============================================================================
//                              模块输入输出
// ============================================================================

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	// Config 统一配置（可选）
	Config *config.Config `optional:"true"`

	// Clock 时钟（可选，默认真实时钟）
	Clock clock.Clock `optional:"true"`

	// Collector 指标收集器（可选）
	Collector *metrics.Collector `optional:"true"`
}

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	// Network 内存网络
	Network *Network
}

// ProvideServices 提供模块服务
func ProvideServices(input ModuleInput) ModuleOutput {
	return ModuleOutput{
		Network: NewNetwork(input.Config, input.Clock, input.Collector),
	}
}

// ============================================================================
//                              模块定义
// ============================================================================

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("runtime",
		fx.Provide(ProvideServices),
		fx.Invoke(registerLifecycle),
	)
}

type lifecycleInput struct {
	fx.In

	LC      fx.Lifecycle
	Network *Network
}

func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			log.Info("运行时模块启动",
				"timeScale", input.Network.rtCfg.TimeScale,
				"dropRate", input.Network.netCfg.DropRate,
				"dupRate", input.Network.netCfg.DupRate)
			return nil
		},
		OnStop: func(_ context.Context) error {
			log.Info("运行时模块停止")
			input.Network.Close()
			return nil
		},
	})
}
