// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/pageant/middleware"
	"github.com/danielhkuo/pageant/models"
	"github.com/danielhkuo/pageant/scoring"
)

type EvaluationHandler struct {
	svc *scoring.Service
}

func NewEvaluationHandler(svc *scoring.Service) *EvaluationHandler {
	return &EvaluationHandler{svc: svc}
}

// Submit handles PUT /jurors/{jurorID}/evaluations/{candidateID}.
// Re-submitting replaces the earlier scores for the same pair.
func (h *EvaluationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitEvaluationRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		writeError(w, err, "record evaluation")
		return
	}

	res, err := h.svc.RecordScore(r.Context(), r.PathValue("jurorID"), r.PathValue("candidateID"), req.Scores)
	if err != nil {
		writeError(w, err, "record evaluation")
		return
	}

	status := http.StatusOK
	message := "Evaluation updated"
	if res.Created {
		status = http.StatusCreated
		message = "Evaluation recorded"
	}

	middleware.JSONResponse(w, status, models.SubmitEvaluationResponse{
		Evaluation: res.Evaluation,
		Created:    res.Created,
		Message:    message,
	})
}

// Get handles GET /jurors/{jurorID}/evaluations/{candidateID}
func (h *EvaluationHandler) Get(w http.ResponseWriter, r *http.Request) {
	ev, err := h.svc.GetEvaluation(r.Context(), r.PathValue("jurorID"), r.PathValue("candidateID"))
	if err != nil {
		writeError(w, err, "get evaluation")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, ev)
}
