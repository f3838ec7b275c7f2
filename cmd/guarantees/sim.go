package main

import (
	"context"
	"fmt"

	"github.com/dep2p/go-guarantees/config"
	"github.com/dep2p/go-guarantees/internal/core/metrics"
	"github.com/dep2p/go-guarantees/internal/core/netsim"
	"github.com/dep2p/go-guarantees/pkg/types"
)

// runSim 在离散事件模拟器中运行测试集合
func runSim(ctx context.Context, cfg *config.Config, gs []types.Guarantee) (bool, error) {
	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector()
	}

	total, failures := 0, 0
	record := func(name string, err error) {
		total++
		if err != nil {
			failures++
		}
		printResult(name, err)
	}

	for _, g := range gs {
		base := netsim.RunConfig{
			Guarantee: g,
			Seed:      cfg.Simulation.Seed,
			Config:    cfg,
			Metrics:   collector,
			MaxSteps:  cfg.Simulation.MaxSteps,
		}

		for _, r := range netsim.RunSuite(base) {
			record(r.Name(g), r.Err)
		}

		if customNetwork(cfg) {
			run := base
			run.Scenario = netsim.Scenario{
				Name:     "CUSTOM",
				Messages: cfg.Simulation.Messages,
				Network:  cfg.Network,
			}
			report, err := netsim.Run(run)
			record(fmt.Sprintf("[%s] CUSTOM", g.Title()), err)
			printReport(report)
		}

		if cfg.Simulation.Monkeys > 0 {
			_, err := netsim.RunChaos(ctx, base, cfg.Simulation.Monkeys)
			record(fmt.Sprintf("[%s] CHAOS MONKEY x%d", g.Title(), cfg.Simulation.Monkeys), err)
		}

		if *overhead {
			for _, faulty := range []bool{false, true} {
				name := fmt.Sprintf("[%s] OVERHEAD NORMAL", g.Title())
				if faulty {
					name = fmt.Sprintf("[%s] OVERHEAD FAULTY", g.Title())
				}
				reports, err := netsim.RunOverhead(base, faulty)
				record(name, err)
				for _, r := range reports {
					printReport(r)
				}
			}
		}

		if err := ctx.Err(); err != nil {
			return true, err
		}
	}

	if collector != nil && *verbose {
		printMetrics(collector.Snapshot(), gs)
	}
	fmt.Printf("\n%d/%d passed\n", total-failures, total)
	return failures > 0, nil
}

// printReport 输出运行统计
func printReport(r *netsim.Report) {
	if r == nil {
		return
	}
	fmt.Printf("    %-6d Messages: %-8d Traffic: %-8d Delivered: %-6d Time: %-10s Throughput: %.3f\n",
		r.Messages, r.NetMessages, r.Traffic, r.Delivered, r.SimTime, r.Throughput)
}

// printMetrics 输出协议事件汇总
func printMetrics(snap metrics.Snapshot, gs []types.Guarantee) {
	fmt.Println("\n协议事件汇总:")
	for _, g := range gs {
		fmt.Printf("  %-4s sent=%-8.0f retransmitted=%-8.0f acks=%-8.0f delivered=%-8.0f duplicates=%-8.0f skips=%.0f\n",
			g,
			snap.Event(g, types.RoleSender, types.EventDataSent),
			snap.Event(g, types.RoleSender, types.EventDataRetransmitted),
			snap.Event(g, types.RoleReceiver, types.EventAckSent),
			snap.Event(g, types.RoleReceiver, types.EventDelivered),
			snap.Event(g, types.RoleReceiver, types.EventDuplicate),
			snap.Event(g, types.RoleReceiver, types.EventSkipAhead))
	}
}
