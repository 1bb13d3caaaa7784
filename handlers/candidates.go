// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/pageant/middleware"
	"github.com/danielhkuo/pageant/models"
	"github.com/danielhkuo/pageant/scoring"
)

type CandidateHandler struct {
	svc *scoring.Service
}

func NewCandidateHandler(svc *scoring.Service) *CandidateHandler {
	return &CandidateHandler{svc: svc}
}

// List handles GET /candidates
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	cands, err := h.svc.ListCandidates(r.Context())
	if err != nil {
		writeError(w, err, "list candidates")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, cands)
}

// Register handles POST /candidates
func (h *CandidateHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterCandidateRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		writeError(w, err, "register candidate")
		return
	}

	cand, err := h.svc.RegisterCandidate(r.Context(), req)
	if err != nil {
		writeError(w, err, "register candidate")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, cand)
}

// Delete handles DELETE /candidates/{id}
func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	dropped, err := h.svc.DeleteCandidate(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "delete candidate")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{Dropped: dropped})
}

// Breakdown handles GET /candidates/{id}/breakdown
func (h *CandidateHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.CandidateBreakdown(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "compute breakdown")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, b)
}
