// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the pageant API.

# Handler Types

Each handler is a struct holding the scoring service:

  - CategoryHandler: list, add, rename, delete
  - CandidateHandler: list, register, delete, per-category breakdown
  - JurorHandler: list, register or sign in, delete
  - EvaluationHandler: submit and read one juror's scores for a candidate
  - ResultsHandler: rankings, statistics, snapshots

	categoryHandler := handlers.NewCategoryHandler(svc)

Login is a plain function backed by the placeholder role table.

# Submitting Scores

	PUT /jurors/{jurorID}/evaluations/{candidateID}
	{"scores": {"<category id>": 8, "<category id>": 6}}

Every active category needs a score from 1 to 10. The first submission for
a pair returns 201; later ones replace it and return 200. A rejected
submission writes nothing.

# Errors

Service errors map onto status codes:

  - validation failures and malformed bodies: 400
  - unknown category, candidate, juror or evaluation: 404
  - duplicate category name, snapshot with no evaluations: 409
  - anything else: 500, logged with slog
*/
package handlers
