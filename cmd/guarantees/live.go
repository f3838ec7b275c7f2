package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-guarantees/config"
	"github.com/dep2p/go-guarantees/internal/core/metrics"
	"github.com/dep2p/go-guarantees/internal/core/netsim"
	"github.com/dep2p/go-guarantees/internal/core/runtime"
	"github.com/dep2p/go-guarantees/pkg/types"
)

// runLive 通过 fx 组装指标与实时运行时，逐个投递保证发送消息
func runLive(ctx context.Context, cfg *config.Config, gs []types.Guarantee) (bool, error) {
	var (
		net       *runtime.Network
		collector *metrics.Collector
	)
	app := fx.New(
		fx.WithLogger(fxLogger),
		fx.Supply(cfg),
		metrics.Module(),
		runtime.Module(),
		fx.Populate(&net, &collector),
	)

	startCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return true, fmt.Errorf("启动失败: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	rng := rand.New(rand.NewPCG(cfg.Simulation.Seed, cfg.Simulation.Seed))
	failures := 0
	for _, g := range gs {
		texts := netsim.GenerateTexts(rng, cfg.Simulation.Messages)
		start := time.Now()
		delivered, err := liveSession(ctx, net, cfg, g, texts)
		elapsed := time.Since(start)

		if err == nil {
			err = netsim.Check(delivered, texts, netsim.PropertiesOf(g))
		}
		if err != nil {
			failures++
		}
		printResult(fmt.Sprintf("[%s] LIVE", g.Title()), err)
		fmt.Printf("    Messages: %-6d Delivered: %-6d Elapsed: %s\n", len(texts), len(delivered), elapsed.Round(time.Millisecond))

		if ctx.Err() != nil {
			return true, ctx.Err()
		}
	}

	if collector != nil {
		printMetrics(collector.Snapshot(), gs)
	}
	return failures > 0, nil
}

func liveSession(ctx context.Context, net *runtime.Network, cfg *config.Config, g types.Guarantee, texts []string) ([]*types.Message, error) {
	s, err := runtime.NewSession(net, g, cfg)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	for _, text := range texts {
		if err := s.Submit(ctx, text); err != nil {
			return s.Delivered(), err
		}
	}

	waitCtx, cancel := context.WithTimeout(ctx, cfg.Runtime.DeliveryTimeout.Duration())
	defer cancel()

	if !g.Reliable() {
		// 不可靠投递没有明确的完成点：等待超时或全部到达
		delivered, _ := s.WaitDelivered(waitCtx, len(texts))
		return delivered, nil
	}
	props := netsim.PropertiesOf(g)
	return s.WaitFor(waitCtx, func(delivered []*types.Message) bool {
		return netsim.Check(delivered, texts, props) == nil
	})
}

// fxLogger fx 事件日志，-verbose 时输出到开发模式 zap
func fxLogger() fxevent.Logger {
	if *verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			return &fxevent.ZapLogger{Logger: l}
		}
	}
	return &fxevent.ZapLogger{Logger: zap.NewNop()}
}
