// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/pageant/handlers"
	"github.com/danielhkuo/pageant/middleware"
	"github.com/danielhkuo/pageant/scoring"
)

func NewRouter(svc *scoring.Service, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	categoryHandler := handlers.NewCategoryHandler(svc)
	candidateHandler := handlers.NewCandidateHandler(svc)
	jurorHandler := handlers.NewJurorHandler(svc)
	evaluationHandler := handlers.NewEvaluationHandler(svc)
	resultsHandler := handlers.NewResultsHandler(svc)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Placeholder login (roles are not enforced)
	mux.HandleFunc("POST /login", middleware.WithLogging(handlers.Login))

	// Categories
	mux.HandleFunc("GET /categories", middleware.WithLogging(categoryHandler.List))
	mux.HandleFunc("POST /categories", middleware.WithLogging(categoryHandler.Create))
	mux.HandleFunc("PUT /categories/{id}", middleware.WithLogging(categoryHandler.Rename))
	mux.HandleFunc("DELETE /categories/{id}", middleware.WithLogging(categoryHandler.Delete))

	// Candidates
	mux.HandleFunc("GET /candidates", middleware.WithLogging(candidateHandler.List))
	mux.HandleFunc("POST /candidates", middleware.WithLogging(candidateHandler.Register))
	mux.HandleFunc("DELETE /candidates/{id}", middleware.WithLogging(candidateHandler.Delete))
	mux.HandleFunc("GET /candidates/{id}/breakdown", middleware.WithLogging(candidateHandler.Breakdown))

	// Jurors and their evaluations
	mux.HandleFunc("GET /jurors", middleware.WithLogging(jurorHandler.List))
	mux.HandleFunc("POST /jurors", middleware.WithLogging(jurorHandler.Register))
	mux.HandleFunc("DELETE /jurors/{id}", middleware.WithLogging(jurorHandler.Delete))
	mux.HandleFunc("PUT /jurors/{jurorID}/evaluations/{candidateID}", middleware.WithLogging(evaluationHandler.Submit))
	mux.HandleFunc("GET /jurors/{jurorID}/evaluations/{candidateID}", middleware.WithLogging(evaluationHandler.Get))

	// Results
	mux.HandleFunc("GET /rankings", middleware.WithLogging(resultsHandler.GetRankings))
	mux.HandleFunc("GET /statistics", middleware.WithLogging(resultsHandler.GetStatistics))
	mux.HandleFunc("POST /snapshots", middleware.WithLogging(resultsHandler.PublishSnapshot))
	mux.HandleFunc("GET /snapshots", middleware.WithLogging(resultsHandler.ListSnapshots))

	// Prometheus exposition
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pageant API v1"))
	})

	return mux
}
