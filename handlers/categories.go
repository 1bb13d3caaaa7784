// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/pageant/middleware"
	"github.com/danielhkuo/pageant/models"
	"github.com/danielhkuo/pageant/scoring"
)

type CategoryHandler struct {
	svc *scoring.Service
}

func NewCategoryHandler(svc *scoring.Service) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List handles GET /categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.ListCategories(r.Context())
	if err != nil {
		writeError(w, err, "list categories")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, cats)
}

// Create handles POST /categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		writeError(w, err, "add category")
		return
	}

	cat, err := h.svc.AddCategory(r.Context(), req.Name)
	if err != nil {
		writeError(w, err, "add category")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, cat)
}

// Rename handles PUT /categories/{id}
func (h *CategoryHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req models.RenameCategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		writeError(w, err, "rename category")
		return
	}

	cat, err := h.svc.RenameCategory(r.Context(), r.PathValue("id"), req.Name)
	if err != nil {
		writeError(w, err, "rename category")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, cat)
}

// Delete handles DELETE /categories/{id}. Affected evaluations are
// recomputed before the response is written.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.DeleteCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "delete category")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.DeleteCategoryResponse{
		Recomputed: res.Recomputed,
		Dropped:    res.Dropped,
	})
}
