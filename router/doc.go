// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the pageant API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, registry)

# Endpoints

	GET    /health
	POST   /login

	GET    /categories
	POST   /categories
	PUT    /categories/{id}
	DELETE /categories/{id}            - recomputes affected evaluations

	GET    /candidates                 - sorted by surname
	POST   /candidates
	DELETE /candidates/{id}
	GET    /candidates/{id}/breakdown

	GET    /jurors
	POST   /jurors                     - known email signs in
	DELETE /jurors/{id}
	PUT    /jurors/{jurorID}/evaluations/{candidateID}
	GET    /jurors/{jurorID}/evaluations/{candidateID}

	GET    /rankings
	GET    /statistics
	POST   /snapshots
	GET    /snapshots

	GET    /metrics                    - Prometheus exposition
*/
package router
