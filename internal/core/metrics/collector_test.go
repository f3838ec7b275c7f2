package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-guarantees/pkg/interfaces"
	"github.com/dep2p/go-guarantees/pkg/types"
)

// ============================================================================
//                              Recorder
// ============================================================================

func TestCollector_Recorder(t *testing.T) {
	c := NewCollector()

	rec := c.Recorder(types.ExactlyOnceOrdered, types.RoleSender)
	rec.Inc(types.EventDataSent)
	rec.Inc(types.EventDataSent)
	rec.Inc(types.EventDataRetransmitted)
	rec.Set(types.GaugeInFlight, 4)

	other := c.Recorder(types.ExactlyOnceOrdered, types.RoleReceiver)
	other.Inc(types.EventDelivered)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.events.WithLabelValues("EOO", "sender", "data_sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.events.WithLabelValues("EOO", "sender", "data_retransmitted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.events.WithLabelValues("EOO", "receiver", "delivered")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.state.WithLabelValues("EOO", "sender", "in_flight")))

	rec.Set(types.GaugeInFlight, 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.state.WithLabelValues("EOO", "sender", "in_flight")))
}

func TestCollector_ObserveWire(t *testing.T) {
	c := NewCollector()
	c.ObserveWire(DirectionOut, 40)
	c.ObserveWire(DirectionOut, 2)
	c.ObserveWire(DirectionDropped, 40)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.wireMessages.WithLabelValues(DirectionOut)))
	assert.Equal(t, 42.0, testutil.ToFloat64(c.wireBytes.WithLabelValues(DirectionOut)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.wireMessages.WithLabelValues(DirectionDropped)))
}

// TestCollector_Nil nil 收集器的所有方法都是空操作
func TestCollector_Nil(t *testing.T) {
	var c *Collector

	assert.Equal(t, interfaces.NopRecorder, c.Recorder(types.AtMostOnce, types.RoleSender))
	assert.NotPanics(t, func() { c.ObserveWire(DirectionIn, 10) })
	assert.Nil(t, c.Registry())

	snap := c.Snapshot()
	assert.Empty(t, snap.Events)
	assert.Empty(t, snap.WireMessages)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 404, rr.Code)
}

// ============================================================================
//                              Snapshot / Handler
// ============================================================================

func TestCollector_Snapshot(t *testing.T) {
	c := NewCollector()
	rec := c.Recorder(types.ExactlyOnce, types.RoleReceiver)
	rec.Inc(types.EventDuplicate)
	rec.Inc(types.EventAckSent)
	rec.Set(types.GaugeSeenCapacity, 128)
	c.ObserveWire(DirectionIn, 30)

	snap := c.Snapshot()
	assert.Equal(t, 1.0, snap.Event(types.ExactlyOnce, types.RoleReceiver, types.EventDuplicate))
	assert.Equal(t, 1.0, snap.Event(types.ExactlyOnce, types.RoleReceiver, types.EventAckSent))
	assert.Zero(t, snap.Event(types.ExactlyOnce, types.RoleSender, types.EventDataSent))
	assert.Equal(t, 128.0, snap.State["EO/receiver/seen_capacity"])
	assert.Equal(t, 1.0, snap.WireMessages[DirectionIn])
	assert.Equal(t, 30.0, snap.WireBytes[DirectionIn])
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.Recorder(types.AtLeastOnce, types.RoleSender).Inc(types.EventDataSent)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body),
		`guarantees_protocol_events_total{event="data_sent",guarantee="ALO",role="sender"} 1`))
}
