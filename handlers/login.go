// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pageant/auth"
	"github.com/danielhkuo/pageant/middleware"
	"github.com/danielhkuo/pageant/models"
)

// Login handles POST /login with the placeholder role table
func Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		writeError(w, err, "log in")
		return
	}

	role, err := auth.Authenticate(req.Username, req.Password)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	slog.Info("user logged in", "role", role)
	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{Role: string(role)})
}
