package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestBookingMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)
	m.ObserveAdmission("admitted")
	m.ObserveAdmission("rejected")
	m.ObserveSlotQuery("ok", 12)
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveAdmission("admitted")
	m.ObserveSlotQuery("ok", 0)
}
