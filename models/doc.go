// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateCategoryRequest / RenameCategoryRequest: name
  - RegisterCandidateRequest: name, surname, age, photo_ref, category_ids
  - RegisterJurorRequest: name, surname, email, category_ids
  - SubmitEvaluationRequest: scores (map[string]int)
  - LoginRequest: username, password

Request types carry validator tags; call Validate before using them.

# Domain Types

  - Category: scoring category
  - Candidate: pageant contestant
  - Juror: person who scores candidates
  - Evaluation: one juror's scores for one candidate (1-10 per category)

# Result Types

  - Ranking: candidate position, average, evaluation count
  - Statistics: global mean, strictest juror, best candidate, total
  - CandidateBreakdown: per-category averages for one candidate
  - ResultSnapshot: frozen rankings and statistics

# Constants

Score bounds:

	MinScore = 1
	MaxScore = 10

Store keys:

	KeyCategories, KeyCandidates, KeyJurors, KeyEvaluations, KeySnapshots
*/
package models
