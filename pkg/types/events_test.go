package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProtocolEvent_String(t *testing.T) {
	names := map[string]bool{}
	for e := EventDataSent; e <= EventIgnored; e++ {
		name := e.String()
		assert.NotEqual(t, "unknown", name, "event %d", int(e))
		assert.False(t, names[name], "duplicate label %q", name)
		names[name] = true
	}
	assert.Equal(t, "skip_ahead", EventSkipAhead.String())
	assert.Equal(t, "unknown", ProtocolEvent(-1).String())
}

func TestStateGauge_String(t *testing.T) {
	assert.Equal(t, "in_flight", GaugeInFlight.String())
	assert.Equal(t, "pending", GaugePending.String())
	assert.Equal(t, "buffered", GaugeBuffered.String())
	assert.Equal(t, "seen_capacity", GaugeSeenCapacity.String())
	assert.Equal(t, "unknown", StateGauge(42).String())
}
