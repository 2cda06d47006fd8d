package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	sessionsCreated prometheus.Counter
	sessionsActive  prometheus.Gauge
	buttonEvents    *prometheus.CounterVec
	gamesWon        prometheus.Counter
	ticks           prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		sessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "numguess_sessions_created_total",
			Help: "Game sessions created since start.",
		}),
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "numguess_sessions_active",
			Help: "Game sessions currently live.",
		}),
		buttonEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "numguess_button_events_total",
			Help: "Button events received, by button.",
		}, []string{"button"}),
		gamesWon: factory.NewCounter(prometheus.CounterOpts{
			Name: "numguess_games_won_total",
			Help: "Rounds that reached the win animation.",
		}),
		ticks: factory.NewCounter(prometheus.CounterOpts{
			Name: "numguess_ticks_total",
			Help: "Simulation ticks advanced across all sessions.",
		}),
	}
}
