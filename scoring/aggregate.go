// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/pageant/models"
)

// State is a snapshot of every stored collection, in stored order.
// The functions in this file only read or mutate the State they are given.
type State struct {
	Categories  []models.Category
	Candidates  []models.Candidate
	Jurors      []models.Juror
	Evaluations []models.Evaluation
}

// empty reports whether no categories, candidates or jurors exist.
func (st State) empty() bool {
	return len(st.Categories) == 0 && len(st.Candidates) == 0 && len(st.Jurors) == 0
}

// RecordResult is the persisted evaluation and whether it was newly created.
type RecordResult struct {
	Evaluation models.Evaluation
	Created    bool
}

// DeleteResult counts the evaluations touched by a cascading delete.
type DeleteResult struct {
	Recomputed int
	Dropped    int
}

// ValidateScores checks a submission against the active categories.
// Every category needs a score in [MinScore, MaxScore] and no other keys are allowed.
func ValidateScores(categories []models.Category, scores map[string]int) error {
	if len(categories) == 0 {
		return &ValidationError{Reason: ReasonNoCategories, Message: "no categories are configured"}
	}

	active := make(map[string]bool, len(categories))
	for _, cat := range categories {
		active[cat.ID] = true

		v, ok := scores[cat.ID]
		if !ok {
			return &ValidationError{
				Field:   cat.ID,
				Reason:  ReasonMissingScore,
				Message: fmt.Sprintf("score for %q is required", cat.Name),
			}
		}
		if v < models.MinScore || v > models.MaxScore {
			return &ValidationError{
				Field:  cat.ID,
				Reason: ReasonOutOfRange,
				Message: fmt.Sprintf("score for %q must be between %d and %d, got %d",
					cat.Name, models.MinScore, models.MaxScore, v),
			}
		}
	}

	for _, id := range sortedKeys(scores) {
		if !active[id] {
			return &ValidationError{
				Field:   id,
				Reason:  ReasonUnknownCategory,
				Message: "category is not active",
			}
		}
	}

	return nil
}

// RecordScore validates scores and upserts the evaluation for (jurorID, candidateID).
// On error st is left untouched.
func RecordScore(st *State, jurorID, candidateID string, scores map[string]int, now time.Time, newID func() string) (RecordResult, error) {
	if findJuror(st.Jurors, jurorID) < 0 {
		return RecordResult{}, notFound("juror", jurorID)
	}
	if findCandidate(st.Candidates, candidateID) < 0 {
		return RecordResult{}, notFound("candidate", candidateID)
	}
	if err := ValidateScores(st.Categories, scores); err != nil {
		return RecordResult{}, err
	}

	copied := make(map[string]int, len(scores))
	for k, v := range scores {
		copied[k] = v
	}

	if i := findEvaluation(st.Evaluations, jurorID, candidateID); i >= 0 {
		ev := &st.Evaluations[i]
		ev.Scores = copied
		ev.AggregateScore = aggregateOf(copied)
		ev.Timestamp = now
		return RecordResult{Evaluation: *ev, Created: false}, nil
	}

	ev := models.Evaluation{
		ID:             newID(),
		JurorID:        jurorID,
		CandidateID:    candidateID,
		Scores:         copied,
		AggregateScore: aggregateOf(copied),
		Timestamp:      now,
	}
	st.Evaluations = append(st.Evaluations, ev)
	return RecordResult{Evaluation: ev, Created: true}, nil
}

// RankCandidates averages each candidate's aggregate scores and sorts descending.
// Candidates without evaluations are omitted. Equal averages keep candidate order.
func RankCandidates(st State) []models.Ranking {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, ev := range st.Evaluations {
		sums[ev.CandidateID] += ev.AggregateScore
		counts[ev.CandidateID]++
	}

	rankings := make([]models.Ranking, 0, len(counts))
	for _, c := range st.Candidates {
		n := counts[c.ID]
		if n == 0 {
			continue
		}
		rankings = append(rankings, models.Ranking{
			Candidate:       c,
			Average:         sums[c.ID] / float64(n),
			EvaluationCount: n,
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Average > rankings[j].Average
	})

	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings
}

// ComputeStatistics summarizes the ledger. ok is false when there are no evaluations.
func ComputeStatistics(st State) (stats models.Statistics, ok bool) {
	if len(st.Evaluations) == 0 {
		return models.Statistics{}, false
	}

	var all []float64
	jurors := newGroups()
	candidates := newGroups()
	var latest time.Time

	for _, ev := range st.Evaluations {
		for _, id := range sortedKeys(ev.Scores) {
			all = append(all, float64(ev.Scores[id]))
		}
		jurors.add(ev.JurorID, ev.AggregateScore)
		candidates.add(ev.CandidateID, ev.AggregateScore)
		if ev.Timestamp.After(latest) {
			latest = ev.Timestamp
		}
	}

	strictID, strictAvg, strictN := jurors.extreme(func(a, b float64) bool { return a < b })
	bestID, bestAvg, bestN := candidates.extreme(func(a, b float64) bool { return a > b })

	stats = models.Statistics{
		GlobalMean: mean(all),
		StrictestJuror: models.JurorAverage{
			JurorID:         strictID,
			Average:         strictAvg,
			EvaluationCount: strictN,
		},
		BestCandidate: models.CandidateAverage{
			CandidateID:     bestID,
			Average:         bestAvg,
			EvaluationCount: bestN,
		},
		TotalEvaluations:   len(st.Evaluations),
		LatestEvaluationAt: latest,
	}
	if i := findJuror(st.Jurors, strictID); i >= 0 {
		stats.StrictestJuror.Name = st.Jurors[i].FullName()
	}
	if i := findCandidate(st.Candidates, bestID); i >= 0 {
		stats.BestCandidate.Name = st.Candidates[i].FullName()
	}

	return stats, true
}

// DeleteCategory removes a category and recomputes every evaluation that scored it.
// Evaluations with no remaining scores are dropped.
func DeleteCategory(st *State, categoryID string) (DeleteResult, error) {
	idx := findCategory(st.Categories, categoryID)
	if idx < 0 {
		return DeleteResult{}, notFound("category", categoryID)
	}

	st.Categories = append(st.Categories[:idx:idx], st.Categories[idx+1:]...)

	for i := range st.Candidates {
		st.Candidates[i].CategoryIDs = without(st.Candidates[i].CategoryIDs, categoryID)
	}
	for i := range st.Jurors {
		st.Jurors[i].CategoryIDs = without(st.Jurors[i].CategoryIDs, categoryID)
	}

	var res DeleteResult
	kept := st.Evaluations[:0:0]
	for _, ev := range st.Evaluations {
		if _, scored := ev.Scores[categoryID]; !scored {
			kept = append(kept, ev)
			continue
		}

		remaining := make(map[string]int, len(ev.Scores))
		for k, v := range ev.Scores {
			if k != categoryID {
				remaining[k] = v
			}
		}
		if len(remaining) == 0 {
			res.Dropped++
			continue
		}

		ev.Scores = remaining
		ev.AggregateScore = aggregateOf(remaining)
		kept = append(kept, ev)
		res.Recomputed++
	}
	st.Evaluations = kept

	return res, nil
}

// dropEvaluations removes evaluations matching fn and returns how many were removed.
func dropEvaluations(st *State, fn func(models.Evaluation) bool) int {
	kept := st.Evaluations[:0:0]
	for _, ev := range st.Evaluations {
		if !fn(ev) {
			kept = append(kept, ev)
		}
	}
	dropped := len(st.Evaluations) - len(kept)
	st.Evaluations = kept
	return dropped
}

// Breakdown reports per-category means of raw scores for one candidate.
func Breakdown(st State, candidateID string) (models.CandidateBreakdown, error) {
	idx := findCandidate(st.Candidates, candidateID)
	if idx < 0 {
		return models.CandidateBreakdown{}, notFound("candidate", candidateID)
	}

	out := models.CandidateBreakdown{
		Candidate:  st.Candidates[idx],
		Categories: []models.CategoryAverage{},
	}

	var aggregates []float64
	perCategory := make(map[string][]float64)
	for _, ev := range st.Evaluations {
		if ev.CandidateID != candidateID {
			continue
		}
		aggregates = append(aggregates, ev.AggregateScore)
		for k, v := range ev.Scores {
			perCategory[k] = append(perCategory[k], float64(v))
		}
	}

	if len(aggregates) == 0 {
		return out, nil
	}

	out.HasData = true
	out.Average = mean(aggregates)
	out.EvaluationCount = len(aggregates)
	for _, cat := range st.Categories {
		values := perCategory[cat.ID]
		if len(values) == 0 {
			continue
		}
		out.Categories = append(out.Categories, models.CategoryAverage{
			CategoryID: cat.ID,
			Name:       cat.Name,
			Average:    mean(values),
			ScoreCount: len(values),
		})
	}

	return out, nil
}

// InputsHash fingerprints the ledger by evaluation ID, timestamp and scores.
// Recomputed scores change the hash even when timestamps do not.
func InputsHash(evals []models.Evaluation) string {
	if len(evals) == 0 {
		return "no-evaluations"
	}

	keys := make([]string, len(evals))
	for i, ev := range evals {
		var b strings.Builder
		b.WriteString(ev.ID)
		b.WriteByte('@')
		b.WriteString(strconv.FormatInt(ev.Timestamp.UnixNano(), 10))
		for _, cat := range sortedKeys(ev.Scores) {
			fmt.Fprintf(&b, "|%s=%d", cat, ev.Scores[cat])
		}
		keys[i] = b.String()
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// aggregateOf is the mean of the recorded scores, summed in key order.
func aggregateOf(scores map[string]int) float64 {
	values := make([]float64, 0, len(scores))
	for _, k := range sortedKeys(scores) {
		values = append(values, float64(scores[k]))
	}
	return mean(values)
}

// mean calculates the arithmetic mean
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// groups accumulates per-ID sums in first-encountered order.
type groups struct {
	order  []string
	sums   map[string]float64
	counts map[string]int
}

func newGroups() *groups {
	return &groups{sums: make(map[string]float64), counts: make(map[string]int)}
}

func (g *groups) add(id string, v float64) {
	if _, seen := g.counts[id]; !seen {
		g.order = append(g.order, id)
	}
	g.sums[id] += v
	g.counts[id]++
}

// extreme returns the group whose average wins under better; earlier groups win ties.
func (g *groups) extreme(better func(a, b float64) bool) (id string, avg float64, n int) {
	for i, gid := range g.order {
		a := g.sums[gid] / float64(g.counts[gid])
		if i == 0 || better(a, avg) {
			id, avg, n = gid, a, g.counts[gid]
		}
	}
	return id, avg, n
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func findCategory(cats []models.Category, id string) int {
	for i, c := range cats {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func findCandidate(cands []models.Candidate, id string) int {
	for i, c := range cands {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func findJuror(jurors []models.Juror, id string) int {
	for i, j := range jurors {
		if j.ID == id {
			return i
		}
	}
	return -1
}

func findEvaluation(evals []models.Evaluation, jurorID, candidateID string) int {
	for i, ev := range evals {
		if ev.JurorID == jurorID && ev.CandidateID == candidateID {
			return i
		}
	}
	return -1
}
