package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-guarantees/pkg/types"
)

// TestNewConfig 测试创建默认配置
func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, 12, cfg.AtMostOnce.MaxBuffer)
	assert.Equal(t, 10, cfg.AtLeastOnce.Window)
	assert.Equal(t, 10, cfg.ExactlyOnce.Window)
	assert.Equal(t, 4, cfg.ExactlyOnceOrdered.Window)
	assert.Equal(t, 6500*time.Millisecond, cfg.ExactlyOnceOrdered.Timeout.Duration())
	assert.Equal(t, 32, cfg.ExactlyOnce.InitialSeenWindow)
	assert.Equal(t, 1024, cfg.ExactlyOnce.MaxSeenGrowth)
	assert.False(t, cfg.Network.Faulty())
}

// TestConfig_SenderWindow 测试按投递保证选择窗口参数
func TestConfig_SenderWindow(t *testing.T) {
	cfg := NewConfig()

	tests := []struct {
		g      types.Guarantee
		window int
		ok     bool
	}{
		{types.AtMostOnce, 0, false},
		{types.AtLeastOnce, 10, true},
		{types.ExactlyOnce, 10, true},
		{types.ExactlyOnceOrdered, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.g.String(), func(t *testing.T) {
			window, timeout, ok := cfg.SenderWindow(tt.g)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.window, window)
			if ok {
				assert.Equal(t, DefaultRetransmitTimeout, timeout)
			}
		})
	}
}

// TestConfig_Validate 测试各子配置的验证错误
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"ZeroBuffer", func(c *Config) { c.AtMostOnce.MaxBuffer = 0 }, ErrInvalidBuffer},
		{"ZeroWindow", func(c *Config) { c.AtLeastOnce.Window = 0 }, ErrInvalidWindow},
		{"NegativeTimeout", func(c *Config) { c.ExactlyOnceOrdered.Timeout = -1 }, ErrInvalidTimeout},
		{"SeenGrowthBelowInitial", func(c *Config) { c.ExactlyOnce.MaxSeenGrowth = 16 }, ErrInvalidSeenWindow},
		{"DelayInverted", func(c *Config) { c.Network.DelayMin = Duration(5 * time.Second) }, ErrInvalidDelay},
		{"DropAlways", func(c *Config) { c.Network.DropRate = 1 }, ErrInvalidRate},
		{"DupNegative", func(c *Config) { c.Network.DupRate = -0.1 }, ErrInvalidRate},
		{"NoMessages", func(c *Config) { c.Simulation.Messages = 0 }, ErrInvalidSimulation},
		{"ZeroTimeScale", func(c *Config) { c.Runtime.TimeScale = 0 }, ErrInvalidRuntime},
		{"ListenWithoutMetrics", func(c *Config) {
			c.Metrics.Enabled = false
			c.Metrics.ListenAddr = ":9090"
		}, ErrInvalidMetrics},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	t.Run("Nil", func(t *testing.T) {
		var cfg *Config
		assert.ErrorIs(t, cfg.Validate(), ErrNilConfig)
	})
}

// TestValidateAndFix 测试自动修复
func TestValidateAndFix(t *testing.T) {
	cfg := NewConfig()
	cfg.Network.DelayMin = Duration(3 * time.Second)
	cfg.Network.DelayMax = Duration(time.Second)
	cfg.Network.DropRate = 1.5
	cfg.Network.DupRate = -1
	cfg.AtLeastOnce.Timeout = 0
	cfg.ExactlyOnce.InitialSeenWindow = 2048
	cfg.Runtime.InputBurst = 0

	fixed, err := ValidateAndFix(cfg)
	require.NoError(t, err)

	assert.Equal(t, time.Second, fixed.Network.DelayMin.Duration())
	assert.Equal(t, 3*time.Second, fixed.Network.DelayMax.Duration())
	assert.Equal(t, 0.99, fixed.Network.DropRate)
	assert.Equal(t, 0.0, fixed.Network.DupRate)
	assert.Equal(t, DefaultRetransmitTimeout, fixed.AtLeastOnce.Timeout.Duration())
	assert.Equal(t, 2048, fixed.ExactlyOnce.MaxSeenGrowth)
	assert.Equal(t, 1, fixed.Runtime.InputBurst)

	t.Run("Nil", func(t *testing.T) {
		fixed, err := ValidateAndFix(nil)
		require.NoError(t, err)
		assert.Equal(t, NewConfig(), fixed)
	})

	t.Run("Unfixable", func(t *testing.T) {
		cfg := NewConfig()
		cfg.AtLeastOnce.Window = -1
		_, err := ValidateAndFix(cfg)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})
}

// TestMustValidate 测试 MustValidate
func TestMustValidate(t *testing.T) {
	assert.NotPanics(t, func() { MustValidate(NewConfig()) })

	cfg := NewConfig()
	cfg.AtMostOnce.MaxBuffer = -1
	assert.Panics(t, func() { MustValidate(cfg) })
}

// TestDuration_JSON 测试 Duration 的 JSON 编解码
func TestDuration_JSON(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		var d Duration
		require.NoError(t, json.Unmarshal([]byte(`"6.5s"`), &d))
		assert.Equal(t, 6500*time.Millisecond, d.Duration())
	})

	t.Run("Nanoseconds", func(t *testing.T) {
		var d Duration
		require.NoError(t, json.Unmarshal([]byte(`250000000`), &d))
		assert.Equal(t, 250*time.Millisecond, d.Duration())
	})

	t.Run("Invalid", func(t *testing.T) {
		var d Duration
		assert.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
		assert.Error(t, json.Unmarshal([]byte(`true`), &d))
	})

	t.Run("Marshal", func(t *testing.T) {
		data, err := json.Marshal(Duration(1500 * time.Millisecond))
		require.NoError(t, err)
		assert.Equal(t, `"1.5s"`, string(data))
	})
}

// TestFromJSON 测试部分 JSON 覆盖默认值
func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON([]byte(`{
		"exactly_once_ordered": {"window": 8, "timeout": "4s"},
		"network": {"delay_min": "1s", "delay_max": "3s", "drop_rate": 0.3}
	}`))
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.ExactlyOnceOrdered.Window)
	assert.Equal(t, 4*time.Second, cfg.ExactlyOnceOrdered.Timeout.Duration())
	assert.Equal(t, 3*time.Second, cfg.Network.DelayMax.Duration())
	assert.Equal(t, 0.3, cfg.Network.DropRate)
	assert.True(t, cfg.Network.Faulty())

	// 未出现的字段保留默认值
	assert.Equal(t, 12, cfg.AtMostOnce.MaxBuffer)
	assert.Equal(t, 10, cfg.AtLeastOnce.Window)

	_, err = FromJSON([]byte(`{"network": `))
	assert.Error(t, err)
}

// TestLoadFile 测试文件加载与 JSON 往返
func TestLoadFile(t *testing.T) {
	cfg := NewConfig()
	cfg.Simulation.Seed = 42
	cfg.Network = FaultyNetworkConfig()

	data, err := ToJSON(cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "guarantees.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

// TestApplyEnv 测试环境变量覆盖
func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvSeed:     "7",
		EnvMessages: "50",
		EnvMonkeys:  "3",
		EnvDropRate: "0.25",
		EnvDupRate:  "0.1",
	}
	cfg := NewConfig()
	require.NoError(t, ApplyEnv(cfg, func(k string) string { return env[k] }))

	assert.Equal(t, uint64(7), cfg.Simulation.Seed)
	assert.Equal(t, 50, cfg.Simulation.Messages)
	assert.Equal(t, 3, cfg.Simulation.Monkeys)
	assert.Equal(t, 0.25, cfg.Network.DropRate)
	assert.Equal(t, 0.1, cfg.Network.DupRate)

	t.Run("Invalid", func(t *testing.T) {
		err := ApplyEnv(NewConfig(), func(k string) string {
			if k == EnvMessages {
				return "many"
			}
			return ""
		})
		assert.ErrorIs(t, err, ErrInvalidEnv)
	})

	t.Run("Nil", func(t *testing.T) {
		assert.ErrorIs(t, ApplyEnv(nil, os.Getenv), ErrNilConfig)
	})
}

// TestRuntimeConfig_Scale 测试时间缩放
func TestRuntimeConfig_Scale(t *testing.T) {
	c := DefaultRuntimeConfig()
	assert.Equal(t, 65*time.Millisecond, c.Scale(DefaultRetransmitTimeout))
}
