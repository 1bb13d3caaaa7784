// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/pageant/models"
	"github.com/danielhkuo/pageant/testutil"
)

func TestResults_NoData(t *testing.T) {
	svc := testutil.SetupTestService(t)
	handler := NewResultsHandler(svc)
	testutil.CreateTestCategory(t, svc, "Elegance")
	testutil.CreateTestCandidate(t, svc, "Isabella", "Montoya")

	w := httptest.NewRecorder()
	handler.GetRankings(w, testutil.MakeRequest("GET", "/rankings", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var rankings models.RankingsResponse
	testutil.AssertJSON(t, w, &rankings)
	if rankings.HasData || len(rankings.Rankings) != 0 {
		t.Errorf("Expected no data, got %+v", rankings)
	}

	w = httptest.NewRecorder()
	handler.GetStatistics(w, testutil.MakeRequest("GET", "/statistics", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var stats models.StatisticsResponse
	testutil.AssertJSON(t, w, &stats)
	if stats.HasData || stats.Statistics != nil {
		t.Errorf("Expected no statistics, got %+v", stats)
	}

	w = httptest.NewRecorder()
	handler.PublishSnapshot(w, testutil.MakeRequest("POST", "/snapshots", nil, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestResults_TwoJurors(t *testing.T) {
	svc := testutil.SetupTestService(t)
	handler := NewResultsHandler(svc)
	a := testutil.CreateTestCategory(t, svc, "Elegance")
	b := testutil.CreateTestCategory(t, svc, "Talent")
	x := testutil.CreateTestCandidate(t, svc, "Isabella", "Montoya")
	y := testutil.CreateTestCandidate(t, svc, "Sofia", "Valdez")
	testutil.CreateTestCandidate(t, svc, "Camila", "Ortega")
	j1 := testutil.CreateTestJuror(t, svc, "Ana", "Ramos")
	j2 := testutil.CreateTestJuror(t, svc, "Luis", "Torres")

	testutil.SubmitTestEvaluation(t, svc, j1.ID, x.ID, map[string]int{a.ID: 8, b.ID: 6})
	testutil.SubmitTestEvaluation(t, svc, j2.ID, x.ID, map[string]int{a.ID: 10, b.ID: 10})
	testutil.SubmitTestEvaluation(t, svc, j1.ID, y.ID, map[string]int{a.ID: 5, b.ID: 4})

	w := httptest.NewRecorder()
	handler.GetRankings(w, testutil.MakeRequest("GET", "/rankings", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var rankings models.RankingsResponse
	testutil.AssertJSON(t, w, &rankings)
	if !rankings.HasData {
		t.Fatal("Expected has_data=true")
	}
	if len(rankings.Rankings) != 2 {
		t.Fatalf("Expected 2 ranked candidates, got %d", len(rankings.Rankings))
	}
	top := rankings.Rankings[0]
	if top.Candidate.ID != x.ID || top.Rank != 1 || top.Average != 8.5 || top.EvaluationCount != 2 {
		t.Errorf("Unexpected top ranking: %+v", top)
	}

	w = httptest.NewRecorder()
	handler.GetStatistics(w, testutil.MakeRequest("GET", "/statistics", nil, nil))
	var stats models.StatisticsResponse
	testutil.AssertJSON(t, w, &stats)
	if !stats.HasData || stats.Statistics == nil {
		t.Fatal("Expected statistics")
	}
	if stats.Statistics.StrictestJuror.JurorID != j1.ID {
		t.Errorf("Expected %s as strictest juror, got %+v", j1.ID, stats.Statistics.StrictestJuror)
	}
	if stats.Statistics.BestCandidate.CandidateID != x.ID {
		t.Errorf("Expected %s as best candidate, got %+v", x.ID, stats.Statistics.BestCandidate)
	}
	if stats.Statistics.TotalEvaluations != 3 {
		t.Errorf("Expected 3 evaluations, got %d", stats.Statistics.TotalEvaluations)
	}
}

func TestSnapshots(t *testing.T) {
	svc := testutil.SetupTestService(t)
	handler := NewResultsHandler(svc)
	cat := testutil.CreateTestCategory(t, svc, "Elegance")
	cand := testutil.CreateTestCandidate(t, svc, "Isabella", "Montoya")
	juror := testutil.CreateTestJuror(t, svc, "Ana", "Ramos")
	testutil.SubmitTestEvaluation(t, svc, juror.ID, cand.ID, map[string]int{cat.ID: 7})

	w := httptest.NewRecorder()
	handler.PublishSnapshot(w, testutil.MakeRequest("POST", "/snapshots", nil, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var snap models.ResultSnapshot
	testutil.AssertJSON(t, w, &snap)
	if snap.ID == "" || snap.InputsHash == "" || len(snap.Rankings) != 1 {
		t.Errorf("Unexpected snapshot: %+v", snap)
	}

	w = httptest.NewRecorder()
	handler.ListSnapshots(w, testutil.MakeRequest("GET", "/snapshots", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var snaps []models.ResultSnapshot
	testutil.AssertJSON(t, w, &snaps)
	if len(snaps) != 1 || snaps[0].ID != snap.ID {
		t.Errorf("Expected the published snapshot, got %+v", snaps)
	}
}
