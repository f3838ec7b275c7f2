package netsim

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// ChaosSeeds 从基础种子派生 runs 个运行种子
func ChaosSeeds(base uint64, runs int) []uint64 {
	rng := rand.New(rand.NewPCG(base, base))
	seeds := make([]uint64, runs)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}
	return seeds
}

// RunChaos 并行运行 runs 次混沌场景（随机延迟 + 复制 + 丢弃）
//
// 每次运行使用从 base.Seed 派生的独立种子，结果与并行度无关。
// 所有失败通过 multierr 合并返回；报告按运行序号排列。
func RunChaos(ctx context.Context, base RunConfig, runs int) ([]*Report, error) {
	if runs <= 0 {
		return nil, nil
	}
	seeds := ChaosSeeds(base.Seed, runs)
	reports := make([]*Report, runs)
	errs := make([]error, runs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, seed := range seeds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cfg := base
			cfg.Scenario = Chaos()
			cfg.Seed = seed
			report, err := Run(cfg)
			reports[i] = report
			if err != nil {
				errs[i] = fmt.Errorf("run %d (seed %d): %w", i+1, seed, err)
			}
			return nil
		})
	}

	err := g.Wait()
	return reports, multierr.Append(err, multierr.Combine(errs...))
}
