// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus collectors for scoring activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for recorded evaluations
const (
	OutcomeCreated = "created"
	OutcomeUpdated = "updated"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	evaluationsRecorded *prometheus.CounterVec
	submissionsRejected *prometheus.CounterVec
	categoriesDeleted   prometheus.Counter
	evaluationsDropped  prometheus.Counter
	ledgerSize          prometheus.Gauge
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		evaluationsRecorded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pageant_evaluations_recorded_total",
				Help: "Evaluations persisted, by whether they were created or updated in place.",
			},
			[]string{"outcome"},
		),
		submissionsRejected: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pageant_submissions_rejected_total",
				Help: "Score submissions rejected before any write.",
			},
			[]string{"reason"},
		),
		categoriesDeleted: f.NewCounter(
			prometheus.CounterOpts{
				Name: "pageant_categories_deleted_total",
				Help: "Categories deleted with cascading recompute.",
			},
		),
		evaluationsDropped: f.NewCounter(
			prometheus.CounterOpts{
				Name: "pageant_evaluations_dropped_total",
				Help: "Evaluations removed by cascading deletes.",
			},
		),
		ledgerSize: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "pageant_ledger_evaluations",
				Help: "Number of evaluations in the ledger after the last write.",
			},
		),
	}
}

func (m *Metrics) EvaluationRecorded(created bool) {
	if m == nil {
		return
	}
	outcome := OutcomeUpdated
	if created {
		outcome = OutcomeCreated
	}
	m.evaluationsRecorded.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SubmissionRejected(reason string) {
	if m == nil {
		return
	}
	m.submissionsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) CategoryDeleted(dropped int) {
	if m == nil {
		return
	}
	m.categoriesDeleted.Inc()
	m.evaluationsDropped.Add(float64(dropped))
}

func (m *Metrics) EvaluationsDropped(n int) {
	if m == nil {
		return
	}
	m.evaluationsDropped.Add(float64(n))
}

func (m *Metrics) LedgerSize(n int) {
	if m == nil {
		return
	}
	m.ledgerSize.Set(float64(n))
}
