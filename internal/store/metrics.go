package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bikerepair",
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Appointment mutations applied in memory.",
		},
		[]string{"op"},
	)

	persistFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bikerepair",
			Subsystem: "store",
			Name:      "persist_failures_total",
			Help:      "Snapshot writes abandoned after all attempts.",
		},
		[]string{"op"},
	)

	loadFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bikerepair",
			Subsystem: "store",
			Name:      "load_failures_total",
			Help:      "Snapshot reads that fell back to an empty or partial collection.",
		},
	)

	appointmentsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bikerepair",
			Subsystem: "store",
			Name:      "appointments",
			Help:      "Appointments currently held in memory.",
		},
	)
)
