package session

import "github.com/prometheus/client_golang/prometheus"

// Metrics used in monitoring service.
var (
	connectAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of wallet connect attempts by result",
			Name:      "session_connects_total",
			Namespace: "tmb",
		},
		[]string{"result"},
	)

	accountSwitches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of account switches by result",
			Name:      "session_account_switches_total",
			Namespace: "tmb",
		},
		[]string{"result"},
	)

	refreshFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of failed balance or paused refreshes",
			Name:      "session_refresh_failures_total",
			Namespace: "tmb",
		},
	)

	sessionConnected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Help:      "Whether a wallet session is connected",
			Name:      "session_connected",
			Namespace: "tmb",
		},
	)
)

func init() {
	prometheus.MustRegister(
		connectAttempts,
		accountSwitches,
		refreshFailures,
		sessionConnected,
	)
}

func observeConnect(err error) {
	connectAttempts.WithLabelValues(resultLabel(err)).Inc()
}

func observeSwitch(err error) {
	accountSwitches.WithLabelValues(resultLabel(err)).Inc()
}

func setConnected(connected bool) {
	if connected {
		sessionConnected.Set(1)
		return
	}
	sessionConnected.Set(0)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case isRejection(err):
		return "rejected"
	default:
		return "failure"
	}
}
