// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /rankings", middleware.WithLogging(handler))

Logs completion with method, path, status, client IP and duration_ms.

# Recovery and CORS

	server := http.Server{
		Handler: middleware.WithRecovery(middleware.CORS(cfg.CORSOrigins)(mux)),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

DecodeAndValidate parses a body and runs its validate tags:

	var req models.RegisterCandidateRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
*/
package middleware
