// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Score bounds, inclusive
const (
	MinScore = 1
	MaxScore = 10
)

// Store keys
const (
	KeyCategories  = "categories"
	KeyCandidates  = "candidates"
	KeyJurors      = "jurors"
	KeyEvaluations = "evaluations"
	KeySnapshots   = "snapshots"
)

// Request types

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type RenameCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type RegisterCandidateRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Surname     string   `json:"surname" validate:"required,max=100"`
	Age         int      `json:"age" validate:"min=0,max=130"`
	PhotoRef    string   `json:"photo_ref" validate:"omitempty,max=2048"`
	CategoryIDs []string `json:"category_ids" validate:"dive,required"`
}

type RegisterJurorRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Surname     string   `json:"surname" validate:"required,max=100"`
	Email       string   `json:"email" validate:"omitempty,email"`
	CategoryIDs []string `json:"category_ids" validate:"dive,required"`
}

// category_id -> integer score (1 to 10)
type SubmitEvaluationRequest struct {
	Scores map[string]int `json:"scores" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response types

type SubmitEvaluationResponse struct {
	Evaluation Evaluation `json:"evaluation"`
	Created    bool       `json:"created"`
	Message    string     `json:"message"`
}

type DeleteCategoryResponse struct {
	Recomputed int `json:"recomputed"`
	Dropped    int `json:"dropped"`
}

// Evaluations removed along with a candidate or juror
type DeleteResponse struct {
	Dropped int `json:"dropped"`
}

type RegisterJurorResponse struct {
	Juror   Juror `json:"juror"`
	Created bool  `json:"created"`
}

type RankingsResponse struct {
	HasData  bool      `json:"has_data"`
	Rankings []Ranking `json:"rankings"`
}

type StatisticsResponse struct {
	HasData    bool        `json:"has_data"`
	Statistics *Statistics `json:"statistics,omitempty"`
}

type LoginResponse struct {
	Role string `json:"role"`
}

// Domain types

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Candidate struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Surname     string   `json:"surname"`
	Age         int      `json:"age"`
	PhotoRef    string   `json:"photo_ref,omitempty"`
	CategoryIDs []string `json:"category_ids"`
}

// FullName joins name and surname.
func (c Candidate) FullName() string { return joinName(c.Name, c.Surname) }

type Juror struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Surname     string   `json:"surname"`
	Email       string   `json:"email,omitempty"`
	CategoryIDs []string `json:"category_ids"`
}

// FullName joins name and surname.
func (j Juror) FullName() string { return joinName(j.Name, j.Surname) }

// Evaluation is one juror's score set for one candidate.
// (JurorID, CandidateID) identifies it; ID stays fixed across re-submissions.
type Evaluation struct {
	ID             string         `json:"id"`
	JurorID        string         `json:"juror_id"`
	CandidateID    string         `json:"candidate_id"`
	Scores         map[string]int `json:"scores"`
	AggregateScore float64        `json:"aggregate_score"`
	Timestamp      time.Time      `json:"timestamp"`
}

// Result types

type Ranking struct {
	Rank            int       `json:"rank"` // 1-indexed ranking
	Candidate       Candidate `json:"candidate"`
	Average         float64   `json:"average"`
	EvaluationCount int       `json:"evaluation_count"`
}

type JurorAverage struct {
	JurorID         string  `json:"juror_id"`
	Name            string  `json:"name"`
	Average         float64 `json:"average"`
	EvaluationCount int     `json:"evaluation_count"`
}

type CandidateAverage struct {
	CandidateID     string  `json:"candidate_id"`
	Name            string  `json:"name"`
	Average         float64 `json:"average"`
	EvaluationCount int     `json:"evaluation_count"`
}

type Statistics struct {
	GlobalMean         float64          `json:"global_mean"`
	StrictestJuror     JurorAverage     `json:"strictest_juror"`
	BestCandidate      CandidateAverage `json:"best_candidate"`
	TotalEvaluations   int              `json:"total_evaluations"`
	LatestEvaluationAt time.Time        `json:"latest_evaluation_at"`
}

type CategoryAverage struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	Average    float64 `json:"average"`
	ScoreCount int     `json:"score_count"`
}

type CandidateBreakdown struct {
	Candidate       Candidate         `json:"candidate"`
	HasData         bool              `json:"has_data"`
	Average         float64           `json:"average"`
	EvaluationCount int               `json:"evaluation_count"`
	Categories      []CategoryAverage `json:"categories"`
}

type ResultSnapshot struct {
	ID         string      `json:"id"`
	ComputedAt time.Time   `json:"computed_at"`
	Rankings   []Ranking   `json:"rankings"`
	Statistics *Statistics `json:"statistics,omitempty"`
	InputsHash string      `json:"inputs_hash"` // Hash of all evaluation IDs for verification
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func joinName(name, surname string) string {
	switch {
	case surname == "":
		return name
	case name == "":
		return surname
	}
	return name + " " + surname
}
