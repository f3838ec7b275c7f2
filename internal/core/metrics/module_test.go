package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-guarantees/config"
)

// TestModule 测试模块提供收集器
func TestModule(t *testing.T) {
	var c *Collector
	app := fxtest.New(t,
		Module(),
		fx.Populate(&c),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.NotNil(t, c)
}

// TestModule_Disabled 指标被禁用时提供 nil 收集器
func TestModule_Disabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Metrics.Enabled = false

	var c *Collector
	app := fxtest.New(t,
		fx.Supply(cfg),
		Module(),
		fx.Populate(&c),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.Nil(t, c)
}

// TestModule_Endpoint 配置监听地址时启动并停止端点
func TestModule_Endpoint(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Metrics.ListenAddr = "127.0.0.1:0"

	app := fxtest.New(t,
		fx.Supply(cfg),
		Module(),
	)
	app.RequireStart()
	app.RequireStop()
}
