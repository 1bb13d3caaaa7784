// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/pageant/db"
	"github.com/danielhkuo/pageant/models"
	"github.com/danielhkuo/pageant/scoring"
	"github.com/danielhkuo/pageant/store"
)

// SetupTestDB opens a fresh sqlite database with the full schema in a temp dir
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "pageant.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// SetupTestService returns a service backed by a fresh sqlite store
func SetupTestService(t *testing.T) *scoring.Service {
	t.Helper()
	return scoring.NewService(store.NewSQL(SetupTestDB(t), db.TypeSQLite), nil)
}

// CreateTestCategory adds a category and returns it
func CreateTestCategory(t *testing.T, svc *scoring.Service, name string) models.Category {
	t.Helper()

	cat, err := svc.AddCategory(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return cat
}

// CreateTestCandidate registers a candidate and returns it
func CreateTestCandidate(t *testing.T, svc *scoring.Service, name, surname string) models.Candidate {
	t.Helper()

	cand, err := svc.RegisterCandidate(context.Background(), models.RegisterCandidateRequest{
		Name:    name,
		Surname: surname,
		Age:     21,
	})
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}
	return cand
}

// CreateTestJuror registers a juror and returns it
func CreateTestJuror(t *testing.T, svc *scoring.Service, name, surname string) models.Juror {
	t.Helper()

	juror, _, err := svc.RegisterJuror(context.Background(), models.RegisterJurorRequest{
		Name:    name,
		Surname: surname,
	})
	if err != nil {
		t.Fatalf("Failed to create test juror: %v", err)
	}
	return juror
}

// SubmitTestEvaluation records scores for a juror and candidate
func SubmitTestEvaluation(t *testing.T, svc *scoring.Service, jurorID, candidateID string, scores map[string]int) models.Evaluation {
	t.Helper()

	res, err := svc.RecordScore(context.Background(), jurorID, candidateID, scores)
	if err != nil {
		t.Fatalf("Failed to submit test evaluation: %v", err)
	}
	return res.Evaluation
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
