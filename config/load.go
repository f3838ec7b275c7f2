package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// 环境变量覆盖
const (
	EnvSeed     = "GUARANTEES_SEED"
	EnvMessages = "GUARANTEES_MESSAGES"
	EnvMonkeys  = "GUARANTEES_MONKEYS"
	EnvDropRate = "GUARANTEES_DROP_RATE"
	EnvDupRate  = "GUARANTEES_DUP_RATE"
)

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保留默认值：
//
//	{
//	  "exactly_once_ordered": {"window": 8, "timeout": "4s"},
//	  "network": {"delay_min": "1s", "delay_max": "3s", "drop_rate": 0.3}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// LoadFile 从 JSON 文件加载配置
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return FromJSON(data)
}

// ToJSON 将配置序列化为带缩进的 JSON
func ToJSON(c *Config) ([]byte, error) {
	if c == nil {
		return nil, ErrNilConfig
	}
	return json.MarshalIndent(c, "", "  ")
}

// ApplyEnv 应用环境变量覆盖
//
// getenv 通常为 os.Getenv；未设置的变量不影响配置。
func ApplyEnv(c *Config, getenv func(string) string) error {
	if c == nil {
		return ErrNilConfig
	}

	if v := getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvSeed, v, ErrInvalidEnv)
		}
		c.Simulation.Seed = seed
	}

	for _, e := range []struct {
		name string
		dst  *int
	}{
		{EnvMessages, &c.Simulation.Messages},
		{EnvMonkeys, &c.Simulation.Monkeys},
	} {
		if v := getenv(e.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s=%q: %w", e.name, v, ErrInvalidEnv)
			}
			*e.dst = n
		}
	}

	for _, e := range []struct {
		name string
		dst  *float64
	}{
		{EnvDropRate, &c.Network.DropRate},
		{EnvDupRate, &c.Network.DupRate},
	} {
		if v := getenv(e.name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s=%q: %w", e.name, v, ErrInvalidEnv)
			}
			*e.dst = f
		}
	}

	return nil
}
