package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking flows.
type BookingMetrics struct {
	admissionsTotal *prometheus.CounterVec
	slotQueries     *prometheus.CounterVec
	slotsOffered    prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		admissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "serenity",
			Subsystem: "bookings",
			Name:      "admissions_total",
			Help:      "Booking admission attempts by outcome",
		}, []string{"outcome"}),
		slotQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "serenity",
			Subsystem: "bookings",
			Name:      "slot_queries_total",
			Help:      "Slot availability queries",
		}, []string{"status"}),
		slotsOffered: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "serenity",
			Subsystem: "bookings",
			Name:      "slots_offered",
			Help:      "Number of slots returned per availability query",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 40},
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.admissionsTotal, m.slotQueries, m.slotsOffered)
	return m
}

// ObserveAdmission records one admission attempt. Outcome is "admitted",
// "rejected" or "error".
func (m *BookingMetrics) ObserveAdmission(outcome string) {
	if m == nil {
		return
	}
	m.admissionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveSlotQuery records one availability query and how many slots it
// returned.
func (m *BookingMetrics) ObserveSlotQuery(status string, offered int) {
	if m == nil {
		return
	}
	m.slotQueries.WithLabelValues(status).Inc()
	m.slotsOffered.Observe(float64(offered))
}
