package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-guarantees/internal/core/metrics"
	"github.com/dep2p/go-guarantees/pkg/types"
)

// TestModule 通过 fx 组装指标与运行时并完成一次投递
func TestModule(t *testing.T) {
	cfg := fastConfig()

	var (
		net *Network
		c   *metrics.Collector
	)
	app := fxtest.New(t,
		fx.Supply(cfg),
		metrics.Module(),
		Module(),
		fx.Populate(&net, &c),
	)
	app.RequireStart()

	require.NotNil(t, net)
	s, err := NewSession(net, types.ExactlyOnceOrdered, cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Submit(ctx, "hello"))
	delivered, err := s.WaitDelivered(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "hello", delivered[0].Text)

	app.RequireStop()

	snap := c.Snapshot()
	assert.Equal(t, 1.0, snap.Event(types.ExactlyOnceOrdered, types.RoleReceiver, types.EventDelivered))

	_, err = NewSession(net, types.AtLeastOnce, cfg)
	assert.ErrorIs(t, err, ErrClosed, "network closed on stop")
}
