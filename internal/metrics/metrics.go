// Package metrics holds the relay's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "roomrelay"

// Metrics is safe to use through a nil pointer; every method is then a no-op.
type Metrics struct {
	reg prometheus.Registerer

	datagrams    prometheus.Counter
	decodeErrors *prometheus.CounterVec
	actions      *prometheus.CounterVec
	relayed      prometheus.Counter
	sendFailures *prometheus.CounterVec
	evictions    *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reg: reg,
		datagrams: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datagrams_received_total",
			Help:      "Datagrams read from the socket.",
		}),
		decodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_errors_total",
			Help:      "Datagrams dropped because they did not decode as an envelope.",
		}, []string{"reason"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Envelopes handled by action.",
		}, []string{"action"}),
		relayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_relayed_total",
			Help:      "Transform frames delivered to room members.",
		}),
		sendFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "send_failures_total",
			Help:      "Failed socket writes by kind (reply or relay).",
		}, []string{"kind"}),
		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evictions_total",
			Help:      "Peers removed from rooms by reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.datagrams, m.decodeErrors, m.actions, m.relayed, m.sendFailures, m.evictions)
	return m
}

// TrackState exposes room and session counts read at scrape time.
func (m *Metrics) TrackState(rooms, sessions func() int) {
	if m == nil {
		return
	}
	m.reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms_active",
			Help:      "Rooms currently in the registry.",
		}, func() float64 { return float64(rooms()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Peers currently affiliated with a room.",
		}, func() float64 { return float64(sessions()) }),
	)
}

func (m *Metrics) Datagram() {
	if m == nil {
		return
	}
	m.datagrams.Inc()
}

func (m *Metrics) DecodeError(reason string) {
	if m == nil {
		return
	}
	m.decodeErrors.WithLabelValues(reason).Inc()
}

func (m *Metrics) Action(action string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(action).Inc()
}

func (m *Metrics) Relayed(n int) {
	if m == nil {
		return
	}
	m.relayed.Add(float64(n))
}

func (m *Metrics) SendFailure(kind string) {
	if m == nil {
		return
	}
	m.sendFailures.WithLabelValues(kind).Inc()
}

func (m *Metrics) Evicted(reason string, n int) {
	if m == nil {
		return
	}
	m.evictions.WithLabelValues(reason).Add(float64(n))
}

// Handler exposes the given gatherer in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
