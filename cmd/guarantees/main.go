// Package main 提供 guarantees 命令行入口
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	guarantees "github.com/dep2p/go-guarantees"
	"github.com/dep2p/go-guarantees/config"
	"github.com/dep2p/go-guarantees/internal/util/logger"
	"github.com/dep2p/go-guarantees/pkg/types"
)

var log = logger.Logger("cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
//
// 优先级：命令行参数 > 环境变量（GUARANTEES_*）> 配置文件 > 默认值
//
// ═══════════════════════════════════════════════════════════════════════════
var (
	// ─────────────────────────────────────────────────────────────────────
	// 运行参数
	// ─────────────────────────────────────────────────────────────────────
	guaranteeFlag = flag.String("guarantee", "all", "投递保证 (AMO/ALO/EO/EOO/all)")
	modeFlag      = flag.String("mode", "sim", "运行模式 (sim = 离散事件模拟, live = 实时运行时)")
	configFile    = flag.String("config", "", "配置文件路径（JSON）")

	// ─────────────────────────────────────────────────────────────────────
	// 负载与网络
	// ─────────────────────────────────────────────────────────────────────
	messages = flag.Int("messages", 0, "自定义场景 / 实时模式的消息数")
	seed     = flag.Uint64("seed", 0, "随机种子")
	dropRate = flag.Float64("drop", 0, "丢包概率 [0, 1)")
	dupRate  = flag.Float64("dup", 0, "复制概率 [0, 1]")
	delayMin config.Duration
	delayMax config.Duration

	// ─────────────────────────────────────────────────────────────────────
	// 附加测试
	// ─────────────────────────────────────────────────────────────────────
	monkeys  = flag.Int("monkeys", 0, "混沌测试运行次数")
	overhead = flag.Bool("overhead", false, "运行开销测试（100/500/1000 条消息）")

	// ─────────────────────────────────────────────────────────────────────
	// 监控与信息
	// ─────────────────────────────────────────────────────────────────────
	metricsAddr = flag.String("metrics-addr", "", "实时模式下暴露 /metrics 的地址")
	verbose     = flag.Bool("verbose", false, "输出调试日志")
	showVersion = flag.Bool("version", false, "显示版本信息")
)

func init() {
	flag.Var(&delayMin, "delay-min", "最小网络延迟（如 1s）")
	flag.Var(&delayMax, "delay-max", "最大网络延迟（如 3s）")
}

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		}
		os.Exit(1)
	}
}

// errFailed 至少一个测试失败（已输出详情）
var errFailed = errors.New("some tests failed")

func run() error {
	flag.Parse()

	if *showVersion {
		fmt.Printf("guarantees %s\n", guarantees.Version)
		return nil
	}
	if *verbose {
		logger.SetGlobalLevel(slog.LevelDebug)
	}

	cfg, err := buildConfig()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}
	gs, err := parseGuarantees(*guaranteeFlag)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Debug("开始运行", "mode", *modeFlag, "guarantees", gs, "seed", cfg.Simulation.Seed)

	var failed bool
	switch *modeFlag {
	case "sim":
		failed, err = runSim(ctx, cfg, gs)
	case "live":
		failed, err = runLive(ctx, cfg, gs)
	default:
		return fmt.Errorf("未知运行模式: %q", *modeFlag)
	}
	if err != nil {
		return err
	}
	if failed {
		return errFailed
	}
	return nil
}

// parseGuarantees 解析 -guarantee 参数
func parseGuarantees(s string) ([]types.Guarantee, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return types.All(), nil
	}
	var out []types.Guarantee
	for _, part := range strings.Split(s, ",") {
		g, err := types.ParseGuarantee(part)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// printResult 输出一行测试结果
func printResult(name string, err error) {
	if err == nil {
		fmt.Printf("%-48s PASS\n", name)
		return
	}
	fmt.Printf("%-48s FAIL\n", name)
	for _, line := range strings.Split(err.Error(), "; ") {
		fmt.Printf("    %s\n", line)
	}
}
