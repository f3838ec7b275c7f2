package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/fx"

	"github.com/dep2p/go-guarantees/config"
	"github.com/dep2p/go-guarantees/internal/util/logger"
)

var log = logger.Logger("metrics")

// ============================================================================
//                              模块输入输出
// ============================================================================

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	// Config 统一配置（可选）
	Config *config.Config `optional:"true"`
}

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	// Collector 指标收集器，指标被禁用时为 nil
	Collector *Collector
}

// ProvideServices 提供模块服务
func ProvideServices(input ModuleInput) ModuleOutput {
	cfg := config.DefaultMetricsConfig()
	if input.Config != nil {
		cfg = input.Config.Metrics
	}
	if !cfg.Enabled {
		return ModuleOutput{}
	}
	return ModuleOutput{Collector: NewCollector()}
}

// ============================================================================
//                              模块定义
// ============================================================================

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(ProvideServices),
		fx.Invoke(registerLifecycle),
	)
}

type lifecycleInput struct {
	fx.In

	LC        fx.Lifecycle
	Collector *Collector
	Config    *config.Config `optional:"true"`
}

// registerLifecycle 配置了监听地址时启动 /metrics 端点
func registerLifecycle(input lifecycleInput) {
	if input.Collector == nil || input.Config == nil || input.Config.Metrics.ListenAddr == "" {
		return
	}
	addr := input.Config.Metrics.ListenAddr

	mux := http.NewServeMux()
	mux.Handle("/metrics", input.Collector.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			log.Info("指标端点启动", "addr", ln.Addr().String())
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("指标端点异常退出", "err", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("指标端点停止")
			return srv.Shutdown(ctx)
		},
	})
}
