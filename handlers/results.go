// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/pageant/middleware"
	"github.com/danielhkuo/pageant/models"
	"github.com/danielhkuo/pageant/scoring"
)

type ResultsHandler struct {
	svc *scoring.Service
}

func NewResultsHandler(svc *scoring.Service) *ResultsHandler {
	return &ResultsHandler{svc: svc}
}

// GetRankings handles GET /rankings
func (h *ResultsHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.svc.RankCandidates(r.Context())
	if err != nil {
		writeError(w, err, "compute rankings")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.RankingsResponse{
		HasData:  len(rankings) > 0,
		Rankings: rankings,
	})
}

// GetStatistics handles GET /statistics. An empty ledger is reported
// with has_data=false rather than as an error.
func (h *ResultsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, ok, err := h.svc.ComputeStatistics(r.Context())
	if err != nil {
		writeError(w, err, "compute statistics")
		return
	}

	resp := models.StatisticsResponse{HasData: ok}
	if ok {
		resp.Statistics = &stats
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// PublishSnapshot handles POST /snapshots
func (h *ResultsHandler) PublishSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.PublishSnapshot(r.Context())
	if err != nil {
		writeError(w, err, "publish snapshot")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, snap)
}

// ListSnapshots handles GET /snapshots
func (h *ResultsHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.svc.ListSnapshots(r.Context())
	if err != nil {
		writeError(w, err, "list snapshots")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, snaps)
}
