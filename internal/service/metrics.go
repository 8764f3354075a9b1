package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recipesStarred = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipp_recipes_starred_total",
			Help: "Total number of star actions applied to recipes",
		},
	)

	// Seed reconciliation metrics
	seedRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipp_seed_runs_total",
			Help: "Total number of seed reconciliation runs by outcome",
		},
		[]string{"outcome"},
	)
	seedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipp_seed_records_total",
			Help: "Seed entries processed, by the action taken",
		},
		[]string{"action"},
	)
)
