package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("salon-booking", reg)

	m.IncBookingsCreated()
	m.IncBookingsCreated()
	m.IncSlotConflicts()
	m.IncStatusTransition("pending", "confirmed")
	m.ObserveHTTPRequest("GET", "/api/v1/schedule", 200, 15*time.Millisecond)
	m.ObserveDBQuery("SELECT", time.Millisecond, errors.New("boom"))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.bookingsCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.slotConflicts))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.statusTransitions.WithLabelValues("pending", "confirmed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/schedule", "200")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingsCreated()
		m.IncSlotConflicts()
		m.IncStatusTransition("pending", "cancelled")
		m.ObserveHTTPRequest("POST", "/api/v1/bookings", 201, time.Second)
		m.ObserveDBQuery("INSERT", time.Second, nil)
		m.SetDBConnections(1, 2, 3)
	})
}
