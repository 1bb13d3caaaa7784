// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/pageant/middleware"
	"github.com/danielhkuo/pageant/models"
	"github.com/danielhkuo/pageant/scoring"
)

type JurorHandler struct {
	svc *scoring.Service
}

func NewJurorHandler(svc *scoring.Service) *JurorHandler {
	return &JurorHandler{svc: svc}
}

// List handles GET /jurors
func (h *JurorHandler) List(w http.ResponseWriter, r *http.Request) {
	jurors, err := h.svc.ListJurors(r.Context())
	if err != nil {
		writeError(w, err, "list jurors")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, jurors)
}

// Register handles POST /jurors. A known email signs the juror back in
// and returns 200 instead of 201.
func (h *JurorHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterJurorRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		writeError(w, err, "register juror")
		return
	}

	juror, created, err := h.svc.RegisterJuror(r.Context(), req)
	if err != nil {
		writeError(w, err, "register juror")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	middleware.JSONResponse(w, status, models.RegisterJurorResponse{Juror: juror, Created: created})
}

// Delete handles DELETE /jurors/{id}
func (h *JurorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	dropped, err := h.svc.DeleteJuror(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "delete juror")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{Dropped: dropped})
}
