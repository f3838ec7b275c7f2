package main

import (
	"flag"
	"os"

	"github.com/dep2p/go-guarantees/config"
)

// ============================================================================
//                              配置加载（CLI 专用）
// ============================================================================

// buildConfig 按优先级构建配置
//
//  1. 配置文件（或默认值）
//  2. 环境变量（GUARANTEES_*）
//  3. 显式设置的命令行参数
func buildConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if *configFile != "" {
		loaded, err := config.LoadFile(*configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := config.ApplyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}

	if isFlagSet("seed") {
		cfg.Simulation.Seed = *seed
	}
	if isFlagSet("messages") {
		cfg.Simulation.Messages = *messages
	}
	if isFlagSet("monkeys") {
		cfg.Simulation.Monkeys = *monkeys
	}
	if isFlagSet("drop") {
		cfg.Network.DropRate = *dropRate
	}
	if isFlagSet("dup") {
		cfg.Network.DupRate = *dupRate
	}
	if isFlagSet("delay-min") {
		cfg.Network.DelayMin = delayMin
	}
	if isFlagSet("delay-max") {
		cfg.Network.DelayMax = delayMax
	}
	if isFlagSet("metrics-addr") {
		cfg.Metrics.Enabled = true
		cfg.Metrics.ListenAddr = *metricsAddr
	}

	return config.ValidateAndFix(cfg)
}

// customNetwork 是否通过参数、环境变量或配置文件指定了网络条件或消息数
func customNetwork(cfg *config.Config) bool {
	def := config.NewConfig()
	return cfg.Network != def.Network || cfg.Simulation.Messages != def.Simulation.Messages
}

// isFlagSet 检查命令行参数是否被显式设置
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
