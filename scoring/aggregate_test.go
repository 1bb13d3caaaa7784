// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pageant/models"
)

const tolerance = 1e-9

var fixedNow = time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// pageantState has categories A and B, candidates X, Y, Z and jurors J1, J2.
func pageantState() State {
	return State{
		Categories: []models.Category{
			{ID: "A", Name: "Elegance"},
			{ID: "B", Name: "Talent"},
		},
		Candidates: []models.Candidate{
			{ID: "X", Name: "Isabella", Surname: "Montoya"},
			{ID: "Y", Name: "Sofia", Surname: "Valdez"},
			{ID: "Z", Name: "Camila", Surname: "Ortega"},
		},
		Jurors: []models.Juror{
			{ID: "J1", Name: "Ana", Surname: "Ramos"},
			{ID: "J2", Name: "Luis", Surname: "Torres"},
		},
	}
}

func mustRecord(t *testing.T, st *State, jurorID, candidateID string, scores map[string]int, newID func() string) RecordResult {
	t.Helper()
	res, err := RecordScore(st, jurorID, candidateID, scores, fixedNow, newID)
	require.NoError(t, err)
	return res
}

func TestRecordScore_AggregateIsMean(t *testing.T) {
	tests := []struct {
		name   string
		scores map[string]int
		want   float64
	}{
		{name: "equal scores", scores: map[string]int{"A": 5, "B": 5}, want: 5},
		{name: "two categories", scores: map[string]int{"A": 8, "B": 6}, want: 7},
		{name: "bounds", scores: map[string]int{"A": 1, "B": 10}, want: 5.5},
		{name: "perfect", scores: map[string]int{"A": 10, "B": 10}, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := pageantState()
			res := mustRecord(t, &st, "J1", "X", tt.scores, sequentialIDs("ev"))

			assert.True(t, res.Created)
			assert.InDelta(t, tt.want, res.Evaluation.AggregateScore, tolerance)
			assert.Equal(t, tt.scores, res.Evaluation.Scores)
			assert.Equal(t, fixedNow, res.Evaluation.Timestamp)
		})
	}
}

func TestRecordScore_ThreeCategoryMean(t *testing.T) {
	st := pageantState()
	st.Categories = append(st.Categories, models.Category{ID: "C", Name: "Folklore"})

	res := mustRecord(t, &st, "J1", "X", map[string]int{"A": 7, "B": 8, "C": 10}, sequentialIDs("ev"))
	assert.InDelta(t, 25.0/3.0, res.Evaluation.AggregateScore, tolerance)
}

func TestRecordScore_ResubmitReplacesInPlace(t *testing.T) {
	st := pageantState()
	newID := sequentialIDs("ev")

	first := mustRecord(t, &st, "J1", "X", map[string]int{"A": 3, "B": 4}, newID)
	later := fixedNow.Add(time.Hour)
	second, err := RecordScore(&st, "J1", "X", map[string]int{"A": 9, "B": 10}, later, newID)
	require.NoError(t, err)

	assert.True(t, first.Created)
	assert.False(t, second.Created)
	assert.Equal(t, first.Evaluation.ID, second.Evaluation.ID, "identity must survive re-submission")
	require.Len(t, st.Evaluations, 1)
	assert.Equal(t, map[string]int{"A": 9, "B": 10}, st.Evaluations[0].Scores)
	assert.InDelta(t, 9.5, st.Evaluations[0].AggregateScore, tolerance)
	assert.Equal(t, later, st.Evaluations[0].Timestamp)
}

func TestRecordScore_DistinctPairsAppend(t *testing.T) {
	st := pageantState()
	newID := sequentialIDs("ev")

	mustRecord(t, &st, "J1", "X", map[string]int{"A": 5, "B": 5}, newID)
	mustRecord(t, &st, "J2", "X", map[string]int{"A": 5, "B": 5}, newID)
	mustRecord(t, &st, "J1", "Y", map[string]int{"A": 5, "B": 5}, newID)

	assert.Len(t, st.Evaluations, 3)
}

func TestRecordScore_DoesNotAliasInput(t *testing.T) {
	st := pageantState()
	scores := map[string]int{"A": 5, "B": 6}
	mustRecord(t, &st, "J1", "X", scores, sequentialIDs("ev"))

	scores["A"] = 1
	assert.Equal(t, 5, st.Evaluations[0].Scores["A"])
}

func TestRecordScore_Validation(t *testing.T) {
	tests := []struct {
		name       string
		scores     map[string]int
		wantField  string
		wantReason string
	}{
		{name: "above range", scores: map[string]int{"A": 11, "B": 5}, wantField: "A", wantReason: ReasonOutOfRange},
		{name: "below range", scores: map[string]int{"A": 5, "B": 0}, wantField: "B", wantReason: ReasonOutOfRange},
		{name: "negative", scores: map[string]int{"A": -3, "B": 5}, wantField: "A", wantReason: ReasonOutOfRange},
		{name: "missing category", scores: map[string]int{"A": 5}, wantField: "B", wantReason: ReasonMissingScore},
		{name: "empty submission", scores: map[string]int{}, wantField: "A", wantReason: ReasonMissingScore},
		{name: "unknown category", scores: map[string]int{"A": 5, "B": 5, "Q": 5}, wantField: "Q", wantReason: ReasonUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := pageantState()
			_, err := RecordScore(&st, "J1", "X", tt.scores, fixedNow, sequentialIDs("ev"))

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, tt.wantReason, verr.Reason)
			assert.Empty(t, st.Evaluations, "no partial write on rejection")
		})
	}
}

func TestRecordScore_InvalidUpdateKeepsPriorValue(t *testing.T) {
	st := pageantState()
	newID := sequentialIDs("ev")
	mustRecord(t, &st, "J1", "X", map[string]int{"A": 6, "B": 8}, newID)

	_, err := RecordScore(&st, "J1", "X", map[string]int{"A": 11, "B": 8}, fixedNow.Add(time.Minute), newID)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	require.Len(t, st.Evaluations, 1)
	assert.Equal(t, map[string]int{"A": 6, "B": 8}, st.Evaluations[0].Scores)
	assert.InDelta(t, 7.0, st.Evaluations[0].AggregateScore, tolerance)
	assert.Equal(t, fixedNow, st.Evaluations[0].Timestamp)
}

func TestRecordScore_NoCategories(t *testing.T) {
	st := pageantState()
	st.Categories = nil

	_, err := RecordScore(&st, "J1", "X", map[string]int{}, fixedNow, sequentialIDs("ev"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ReasonNoCategories, verr.Reason)
}

func TestRecordScore_NotFound(t *testing.T) {
	tests := []struct {
		name        string
		jurorID     string
		candidateID string
		wantKind    string
	}{
		{name: "unknown juror", jurorID: "ghost", candidateID: "X", wantKind: "juror"},
		{name: "unknown candidate", jurorID: "J1", candidateID: "ghost", wantKind: "candidate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := pageantState()
			_, err := RecordScore(&st, tt.jurorID, tt.candidateID, map[string]int{"A": 5, "B": 5}, fixedNow, sequentialIDs("ev"))

			var nerr *NotFoundError
			require.ErrorAs(t, err, &nerr)
			assert.Equal(t, tt.wantKind, nerr.Kind)
			assert.Equal(t, "ghost", nerr.ID)
		})
	}
}

func TestRankCandidates_TwoJurorScenario(t *testing.T) {
	st := pageantState()
	newID := sequentialIDs("ev")

	j1 := mustRecord(t, &st, "J1", "X", map[string]int{"A": 8, "B": 6}, newID)
	j2 := mustRecord(t, &st, "J2", "X", map[string]int{"A": 10, "B": 10}, newID)
	assert.InDelta(t, 7.0, j1.Evaluation.AggregateScore, tolerance)
	assert.InDelta(t, 10.0, j2.Evaluation.AggregateScore, tolerance)

	rankings := RankCandidates(st)
	require.Len(t, rankings, 1)
	assert.Equal(t, "X", rankings[0].Candidate.ID)
	assert.Equal(t, 1, rankings[0].Rank)
	assert.InDelta(t, 8.5, rankings[0].Average, tolerance)
	assert.Equal(t, 2, rankings[0].EvaluationCount)
}

func TestRankCandidates_SortedAndOmitsUnscored(t *testing.T) {
	st := pageantState()
	newID := sequentialIDs("ev")

	mustRecord(t, &st, "J1", "Y", map[string]int{"A": 9, "B": 9}, newID)
	mustRecord(t, &st, "J1", "X", map[string]int{"A": 4, "B": 5}, newID)
	mustRecord(t, &st, "J2", "X", map[string]int{"A": 6, "B": 7}, newID)

	rankings := RankCandidates(st)
	require.Len(t, rankings, 2, "Z has no evaluations and must not appear")

	for i := 1; i < len(rankings); i++ {
		assert.GreaterOrEqual(t, rankings[i-1].Average, rankings[i].Average)
	}
	for i, r := range rankings {
		assert.Equal(t, i+1, r.Rank)
		assert.NotEqual(t, "Z", r.Candidate.ID)
	}
	assert.Equal(t, "Y", rankings[0].Candidate.ID)
}

func TestRankCandidates_TiesKeepCandidateOrder(t *testing.T) {
	st := pageantState()
	newID := sequentialIDs("ev")

	// Z is evaluated first but is registered after Y
	mustRecord(t, &st, "J1", "Z", map[string]int{"A": 7, "B": 7}, newID)
	mustRecord(t, &st, "J1", "Y", map[string]int{"A": 6, "B": 8}, newID)

	rankings := RankCandidates(st)
	require.Len(t, rankings, 2)
	assert.Equal(t, "Y", rankings[0].Candidate.ID)
	assert.Equal(t, "Z", rankings[1].Candidate.ID)
}

func TestRankCandidates_IgnoresUnknownCandidates(t *testing.T) {
	st := pageantState()
	st.Evaluations = []models.Evaluation{
		{ID: "e1", JurorID: "J1", CandidateID: "deleted", Scores: map[string]int{"A": 10}, AggregateScore: 10},
	}

	assert.Empty(t, RankCandidates(st))
}

func TestRankCandidates_Empty(t *testing.T) {
	rankings := RankCandidates(pageantState())
	assert.NotNil(t, rankings)
	assert.Empty(t, rankings)
}

func TestComputeStatistics_NoData(t *testing.T) {
	stats, ok := ComputeStatistics(pageantState())
	assert.False(t, ok)
	assert.Equal(t, models.Statistics{}, stats)
}

func TestComputeStatistics(t *testing.T) {
	st := pageantState()
	newID := sequentialIDs("ev")

	mustRecord(t, &st, "J1", "X", map[string]int{"A": 8, "B": 6}, newID)   // 7.0
	mustRecord(t, &st, "J2", "X", map[string]int{"A": 10, "B": 10}, newID) // 10.0
	mustRecord(t, &st, "J1", "Y", map[string]int{"A": 5, "B": 4}, newID)   // 4.5
	mustRecord(t, &st, "J2", "Y", map[string]int{"A": 9, "B": 8}, newID)   // 8.5

	stats, ok := ComputeStatistics(st)
	require.True(t, ok)

	assert.InDelta(t, 7.5, stats.GlobalMean, tolerance)
	assert.Equal(t, 4, stats.TotalEvaluations)

	assert.Equal(t, "J1", stats.StrictestJuror.JurorID)
	assert.Equal(t, "Ana Ramos", stats.StrictestJuror.Name)
	assert.InDelta(t, 5.75, stats.StrictestJuror.Average, tolerance)
	assert.Equal(t, 2, stats.StrictestJuror.EvaluationCount)

	assert.Equal(t, "X", stats.BestCandidate.CandidateID)
	assert.Equal(t, "Isabella Montoya", stats.BestCandidate.Name)
	assert.InDelta(t, 8.5, stats.BestCandidate.Average, tolerance)

	assert.Equal(t, fixedNow, stats.LatestEvaluationAt)
}

func TestComputeStatistics_GlobalMeanIsFlat(t *testing.T) {
	// Uneven score counts make a flat mean differ from a mean of means
	st := pageantState()
	st.Evaluations = []models.Evaluation{
		{ID: "e1", JurorID: "J1", CandidateID: "X", Scores: map[string]int{"A": 10}, AggregateScore: 10},
		{ID: "e2", JurorID: "J2", CandidateID: "X", Scores: map[string]int{"A": 2, "B": 4}, AggregateScore: 3},
	}

	stats, ok := ComputeStatistics(st)
	require.True(t, ok)
	assert.InDelta(t, 16.0/3.0, stats.GlobalMean, tolerance)
}

func TestComputeStatistics_TiesFirstEncountered(t *testing.T) {
	st := pageantState()
	st.Evaluations = []models.Evaluation{
		{ID: "e1", JurorID: "J2", CandidateID: "Y", Scores: map[string]int{"A": 6, "B": 6}, AggregateScore: 6},
		{ID: "e2", JurorID: "J1", CandidateID: "X", Scores: map[string]int{"A": 6, "B": 6}, AggregateScore: 6},
	}

	stats, ok := ComputeStatistics(st)
	require.True(t, ok)
	assert.Equal(t, "J2", stats.StrictestJuror.JurorID)
	assert.Equal(t, "Y", stats.BestCandidate.CandidateID)
}

func TestDeleteCategory_MatchesNeverScored(t *testing.T) {
	withC := pageantState()
	withC.Categories = append(withC.Categories, models.Category{ID: "C", Name: "Folklore"})
	withoutC := pageantState()

	submissions := []struct {
		juror, candidate string
		scores           map[string]int
	}{
		{"J1", "X", map[string]int{"A": 8, "B": 6, "C": 1}},
		{"J2", "X", map[string]int{"A": 10, "B": 9, "C": 2}},
		{"J1", "Y", map[string]int{"A": 3, "B": 7, "C": 10}},
		{"J2", "Z", map[string]int{"A": 5, "B": 5, "C": 10}},
	}

	idsA, idsB := sequentialIDs("ev"), sequentialIDs("ev")
	for _, s := range submissions {
		mustRecord(t, &withC, s.juror, s.candidate, s.scores, idsA)

		reduced := map[string]int{"A": s.scores["A"], "B": s.scores["B"]}
		mustRecord(t, &withoutC, s.juror, s.candidate, reduced, idsB)
	}

	res, err := DeleteCategory(&withC, "C")
	require.NoError(t, err)
	assert.Equal(t, 4, res.Recomputed)
	assert.Equal(t, 0, res.Dropped)

	got := RankCandidates(withC)
	want := RankCandidates(withoutC)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Candidate.ID, got[i].Candidate.ID)
		assert.InDelta(t, want[i].Average, got[i].Average, tolerance)
		assert.Equal(t, want[i].EvaluationCount, got[i].EvaluationCount)
	}

	gotStats, _ := ComputeStatistics(withC)
	wantStats, _ := ComputeStatistics(withoutC)
	assert.InDelta(t, wantStats.GlobalMean, gotStats.GlobalMean, tolerance)
	assert.Len(t, withC.Categories, 2)
	assert.Equal(t, InputsHash(withoutC.Evaluations), InputsHash(withC.Evaluations))
}

func TestDeleteCategory_StripsReferencesAndDropsEmpty(t *testing.T) {
	st := pageantState()
	st.Candidates[0].CategoryIDs = []string{"A", "B"}
	st.Jurors[0].CategoryIDs = []string{"B"}
	st.Evaluations = []models.Evaluation{
		{ID: "e1", JurorID: "J1", CandidateID: "X", Scores: map[string]int{"B": 4}, AggregateScore: 4},
		{ID: "e2", JurorID: "J2", CandidateID: "X", Scores: map[string]int{"A": 10}, AggregateScore: 10},
	}

	res, err := DeleteCategory(&st, "B")
	require.NoError(t, err)

	assert.Equal(t, DeleteResult{Recomputed: 0, Dropped: 1}, res)
	assert.Equal(t, []string{"A"}, st.Candidates[0].CategoryIDs)
	assert.Empty(t, st.Jurors[0].CategoryIDs)
	require.Len(t, st.Evaluations, 1)
	assert.Equal(t, "e2", st.Evaluations[0].ID)

	rankings := RankCandidates(st)
	require.Len(t, rankings, 1)
	assert.InDelta(t, 10.0, rankings[0].Average, tolerance)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	st := pageantState()
	_, err := DeleteCategory(&st, "missing")

	var nerr *NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "category", nerr.Kind)
	assert.Len(t, st.Categories, 2)
}

func TestBreakdown(t *testing.T) {
	st := pageantState()
	newID := sequentialIDs("ev")
	mustRecord(t, &st, "J1", "X", map[string]int{"A": 8, "B": 6}, newID)
	mustRecord(t, &st, "J2", "X", map[string]int{"A": 10, "B": 9}, newID)

	b, err := Breakdown(st, "X")
	require.NoError(t, err)
	assert.True(t, b.HasData)
	assert.Equal(t, 2, b.EvaluationCount)
	assert.InDelta(t, 8.25, b.Average, tolerance)
	require.Len(t, b.Categories, 2)
	assert.Equal(t, "A", b.Categories[0].CategoryID)
	assert.InDelta(t, 9.0, b.Categories[0].Average, tolerance)
	assert.InDelta(t, 7.5, b.Categories[1].Average, tolerance)

	empty, err := Breakdown(st, "Z")
	require.NoError(t, err)
	assert.False(t, empty.HasData)
	assert.Empty(t, empty.Categories)

	_, err = Breakdown(st, "nobody")
	var nerr *NotFoundError
	assert.ErrorAs(t, err, &nerr)
}

func TestInputsHash(t *testing.T) {
	a := []models.Evaluation{{ID: "e1", Timestamp: fixedNow}, {ID: "e2", Timestamp: fixedNow}}
	b := []models.Evaluation{{ID: "e2", Timestamp: fixedNow}, {ID: "e1", Timestamp: fixedNow}}

	assert.Equal(t, InputsHash(a), InputsHash(b), "order independent")
	assert.Equal(t, "no-evaluations", InputsHash(nil))

	changed := []models.Evaluation{{ID: "e1", Timestamp: fixedNow.Add(time.Second)}, {ID: "e2", Timestamp: fixedNow}}
	assert.NotEqual(t, InputsHash(a), InputsHash(changed))
}

func TestInputsHash_ChangesOnCategoryDelete(t *testing.T) {
	st := pageantState()
	mustRecord(t, &st, "J1", "X", map[string]int{"A": 1, "B": 10}, sequentialIDs("ev"))
	before := InputsHash(st.Evaluations)

	_, err := DeleteCategory(&st, "A")
	require.NoError(t, err)

	// timestamps are untouched by the recompute, scores are not
	assert.Equal(t, fixedNow, st.Evaluations[0].Timestamp)
	assert.NotEqual(t, before, InputsHash(st.Evaluations))
}

func TestInputsHash_ScoresMatter(t *testing.T) {
	a := []models.Evaluation{{ID: "e1", Timestamp: fixedNow, Scores: map[string]int{"A": 8, "B": 6}}}
	b := []models.Evaluation{{ID: "e1", Timestamp: fixedNow, Scores: map[string]int{"A": 6, "B": 8}}}
	assert.NotEqual(t, InputsHash(a), InputsHash(b))
}
