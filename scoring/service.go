// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/danielhkuo/pageant/metrics"
	"github.com/danielhkuo/pageant/models"
	"github.com/danielhkuo/pageant/store"
)

// Service runs each operation as load, mutate, write back against a Store.
// Writes are serialized within one process; reads that span several
// collections hold the read lock so they never observe a partial write.
type Service struct {
	mu      sync.RWMutex
	store   store.Store
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides uuid generation, mainly for tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(st store.Store, m *metrics.Metrics, opts ...Option) *Service {
	s := &Service{
		store:   st,
		metrics: m,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Categories

func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return store.Load[models.Category](ctx, s.store, models.KeyCategories)
}

func (s *Service) AddCategory(ctx context.Context, name string) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, &ValidationError{Field: "name", Reason: ReasonInvalidField, Message: "name is required"}
	}

	cats, err := store.Load[models.Category](ctx, s.store, models.KeyCategories)
	if err != nil {
		return models.Category{}, err
	}
	if err := checkCategoryName(cats, "", name); err != nil {
		return models.Category{}, err
	}

	cat := models.Category{ID: s.newID(), Name: name}
	cats = append(cats, cat)
	if err := s.write(ctx, map[string]any{models.KeyCategories: cats}); err != nil {
		return models.Category{}, err
	}

	slog.Info("category added", "category_id", cat.ID, "name", cat.Name)
	return cat, nil
}

func (s *Service) RenameCategory(ctx context.Context, id, name string) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, &ValidationError{Field: "name", Reason: ReasonInvalidField, Message: "name is required"}
	}

	cats, err := store.Load[models.Category](ctx, s.store, models.KeyCategories)
	if err != nil {
		return models.Category{}, err
	}
	idx := findCategory(cats, id)
	if idx < 0 {
		return models.Category{}, notFound("category", id)
	}
	if err := checkCategoryName(cats, id, name); err != nil {
		return models.Category{}, err
	}

	cats[idx].Name = name
	if err := s.write(ctx, map[string]any{models.KeyCategories: cats}); err != nil {
		return models.Category{}, err
	}

	slog.Info("category renamed", "category_id", id, "name", name)
	return cats[idx], nil
}

// DeleteCategory removes the category and recomputes affected evaluations before returning.
func (s *Service) DeleteCategory(ctx context.Context, id string) (DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return DeleteResult{}, err
	}

	res, err := DeleteCategory(&st, id)
	if err != nil {
		return DeleteResult{}, err
	}

	if err := s.writeState(ctx, st); err != nil {
		return DeleteResult{}, err
	}

	s.metrics.CategoryDeleted(res.Dropped)
	slog.Info("category deleted", "category_id", id, "recomputed", res.Recomputed, "dropped", res.Dropped)
	return res, nil
}

// Candidates

// ListCandidates returns candidates sorted by surname, then name.
func (s *Service) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	cands, err := store.Load[models.Candidate](ctx, s.store, models.KeyCandidates)
	if err != nil {
		return nil, err
	}
	col := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(cands, func(i, j int) bool {
		return lessName(col, cands[i].Surname, cands[i].Name, cands[j].Surname, cands[j].Name)
	})
	return cands, nil
}

func (s *Service) RegisterCandidate(ctx context.Context, req models.RegisterCandidateRequest) (models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req.Name = strings.TrimSpace(req.Name)
	req.Surname = strings.TrimSpace(req.Surname)
	if err := models.Validate(req); err != nil {
		return models.Candidate{}, &ValidationError{Reason: ReasonInvalidField, Message: err.Error()}
	}

	st, err := s.load(ctx)
	if err != nil {
		return models.Candidate{}, err
	}
	if err := checkCategoryRefs(st.Categories, req.CategoryIDs); err != nil {
		return models.Candidate{}, err
	}

	cand := models.Candidate{
		ID:          s.newID(),
		Name:        req.Name,
		Surname:     req.Surname,
		Age:         req.Age,
		PhotoRef:    req.PhotoRef,
		CategoryIDs: dedupe(req.CategoryIDs),
	}
	st.Candidates = append(st.Candidates, cand)
	if err := s.write(ctx, map[string]any{models.KeyCandidates: st.Candidates}); err != nil {
		return models.Candidate{}, err
	}

	slog.Info("candidate registered", "candidate_id", cand.ID, "name", cand.FullName())
	return cand, nil
}

// DeleteCandidate removes the candidate and every evaluation of them.
func (s *Service) DeleteCandidate(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	idx := findCandidate(st.Candidates, id)
	if idx < 0 {
		return 0, notFound("candidate", id)
	}

	st.Candidates = append(st.Candidates[:idx:idx], st.Candidates[idx+1:]...)
	dropped := dropEvaluations(&st, func(ev models.Evaluation) bool { return ev.CandidateID == id })

	if err := s.writeState(ctx, st); err != nil {
		return 0, err
	}

	s.metrics.EvaluationsDropped(dropped)
	slog.Info("candidate deleted", "candidate_id", id, "dropped", dropped)
	return dropped, nil
}

// Jurors

// ListJurors returns jurors sorted by surname, then name.
func (s *Service) ListJurors(ctx context.Context) ([]models.Juror, error) {
	jurors, err := store.Load[models.Juror](ctx, s.store, models.KeyJurors)
	if err != nil {
		return nil, err
	}
	col := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(jurors, func(i, j int) bool {
		return lessName(col, jurors[i].Surname, jurors[i].Name, jurors[j].Surname, jurors[j].Name)
	})
	return jurors, nil
}

// RegisterJuror creates a juror. When the email matches an existing juror,
// that juror is returned with created == false.
func (s *Service) RegisterJuror(ctx context.Context, req models.RegisterJurorRequest) (juror models.Juror, created bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req.Name = strings.TrimSpace(req.Name)
	req.Surname = strings.TrimSpace(req.Surname)
	req.Email = strings.TrimSpace(req.Email)
	if err := models.Validate(req); err != nil {
		return models.Juror{}, false, &ValidationError{Reason: ReasonInvalidField, Message: err.Error()}
	}

	st, err := s.load(ctx)
	if err != nil {
		return models.Juror{}, false, err
	}

	email := req.Email
	if email != "" {
		folded := cases.Fold().String(email)
		for _, j := range st.Jurors {
			if j.Email != "" && cases.Fold().String(j.Email) == folded {
				slog.Info("juror signed in", "juror_id", j.ID)
				return j, false, nil
			}
		}
	}

	if err := checkCategoryRefs(st.Categories, req.CategoryIDs); err != nil {
		return models.Juror{}, false, err
	}

	juror = models.Juror{
		ID:          s.newID(),
		Name:        req.Name,
		Surname:     req.Surname,
		Email:       email,
		CategoryIDs: dedupe(req.CategoryIDs),
	}
	st.Jurors = append(st.Jurors, juror)
	if err := s.write(ctx, map[string]any{models.KeyJurors: st.Jurors}); err != nil {
		return models.Juror{}, false, err
	}

	slog.Info("juror registered", "juror_id", juror.ID, "name", juror.FullName())
	return juror, true, nil
}

// DeleteJuror removes the juror and every evaluation they submitted.
func (s *Service) DeleteJuror(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	idx := findJuror(st.Jurors, id)
	if idx < 0 {
		return 0, notFound("juror", id)
	}

	st.Jurors = append(st.Jurors[:idx:idx], st.Jurors[idx+1:]...)
	dropped := dropEvaluations(&st, func(ev models.Evaluation) bool { return ev.JurorID == id })

	if err := s.writeState(ctx, st); err != nil {
		return 0, err
	}

	s.metrics.EvaluationsDropped(dropped)
	slog.Info("juror deleted", "juror_id", id, "dropped", dropped)
	return dropped, nil
}

// Evaluations

// RecordScore stores a juror's scores for a candidate, replacing any earlier
// evaluation for the same pair. Nothing is written when validation fails.
func (s *Service) RecordScore(ctx context.Context, jurorID, candidateID string, scores map[string]int) (RecordResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return RecordResult{}, err
	}

	res, err := RecordScore(&st, jurorID, candidateID, scores, s.now().UTC(), s.newID)
	if err != nil {
		s.rejected(err)
		return RecordResult{}, err
	}

	if err := s.write(ctx, map[string]any{models.KeyEvaluations: st.Evaluations}); err != nil {
		return RecordResult{}, err
	}

	s.metrics.EvaluationRecorded(res.Created)
	s.metrics.LedgerSize(len(st.Evaluations))
	slog.Info("evaluation recorded",
		"evaluation_id", res.Evaluation.ID,
		"juror_id", jurorID,
		"candidate_id", candidateID,
		"aggregate", res.Evaluation.AggregateScore,
		"is_update", !res.Created,
	)
	return res, nil
}

// GetEvaluation returns the juror's current evaluation of the candidate.
func (s *Service) GetEvaluation(ctx context.Context, jurorID, candidateID string) (models.Evaluation, error) {
	evals, err := store.Load[models.Evaluation](ctx, s.store, models.KeyEvaluations)
	if err != nil {
		return models.Evaluation{}, err
	}
	i := findEvaluation(evals, jurorID, candidateID)
	if i < 0 {
		return models.Evaluation{}, notFound("evaluation", jurorID+"/"+candidateID)
	}
	return evals[i], nil
}

// Results

func (s *Service) RankCandidates(ctx context.Context) ([]models.Ranking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return RankCandidates(st), nil
}

// ComputeStatistics returns ok == false when no evaluations exist.
func (s *Service) ComputeStatistics(ctx context.Context) (models.Statistics, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, err := s.load(ctx)
	if err != nil {
		return models.Statistics{}, false, err
	}
	stats, ok := ComputeStatistics(st)
	return stats, ok, nil
}

func (s *Service) CandidateBreakdown(ctx context.Context, candidateID string) (models.CandidateBreakdown, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, err := s.load(ctx)
	if err != nil {
		return models.CandidateBreakdown{}, err
	}
	return Breakdown(st, candidateID)
}

// PublishSnapshot freezes the current rankings and statistics.
func (s *Service) PublishSnapshot(ctx context.Context) (models.ResultSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return models.ResultSnapshot{}, err
	}
	if len(st.Evaluations) == 0 {
		return models.ResultSnapshot{}, ErrNoData
	}

	snaps, err := store.Load[models.ResultSnapshot](ctx, s.store, models.KeySnapshots)
	if err != nil {
		return models.ResultSnapshot{}, err
	}

	stats, _ := ComputeStatistics(st)
	snap := models.ResultSnapshot{
		ID:         s.newID(),
		ComputedAt: s.now().UTC(),
		Rankings:   RankCandidates(st),
		Statistics: &stats,
		InputsHash: InputsHash(st.Evaluations),
	}
	snaps = append(snaps, snap)
	if err := s.write(ctx, map[string]any{models.KeySnapshots: snaps}); err != nil {
		return models.ResultSnapshot{}, err
	}

	slog.Info("snapshot published", "snapshot_id", snap.ID, "inputs_hash", snap.InputsHash)
	return snap, nil
}

// ListSnapshots returns published snapshots, newest first.
func (s *Service) ListSnapshots(ctx context.Context) ([]models.ResultSnapshot, error) {
	snaps, err := store.Load[models.ResultSnapshot](ctx, s.store, models.KeySnapshots)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(snaps, func(i, j int) bool {
		return snaps[i].ComputedAt.After(snaps[j].ComputedAt)
	})
	return snaps, nil
}

// Bootstrap writes st in a single batch when the store holds no categories,
// candidates or jurors, and reports whether it did. The whole State is
// checked before anything is written.
func (s *Service) Bootstrap(ctx context.Context, st State) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if !cur.empty() {
		return false, nil
	}
	if err := checkBootstrap(st); err != nil {
		return false, err
	}

	st.Evaluations = []models.Evaluation{}
	if err := s.writeState(ctx, st); err != nil {
		return false, err
	}

	slog.Info("store bootstrapped",
		"categories", len(st.Categories),
		"candidates", len(st.Candidates),
		"jurors", len(st.Jurors),
	)
	return true, nil
}

// load reads every collection; absent keys are empty.
func (s *Service) load(ctx context.Context) (State, error) {
	var st State
	var err error
	if st.Categories, err = store.Load[models.Category](ctx, s.store, models.KeyCategories); err != nil {
		return State{}, err
	}
	if st.Candidates, err = store.Load[models.Candidate](ctx, s.store, models.KeyCandidates); err != nil {
		return State{}, err
	}
	if st.Jurors, err = store.Load[models.Juror](ctx, s.store, models.KeyJurors); err != nil {
		return State{}, err
	}
	if st.Evaluations, err = store.Load[models.Evaluation](ctx, s.store, models.KeyEvaluations); err != nil {
		return State{}, err
	}
	return st, nil
}

func (s *Service) writeState(ctx context.Context, st State) error {
	err := s.write(ctx, map[string]any{
		models.KeyCategories:  st.Categories,
		models.KeyCandidates:  st.Candidates,
		models.KeyJurors:      st.Jurors,
		models.KeyEvaluations: st.Evaluations,
	})
	if err == nil {
		s.metrics.LedgerSize(len(st.Evaluations))
	}
	return err
}

// write encodes each collection and stores them in one SetMany call.
func (s *Service) write(ctx context.Context, collections map[string]any) error {
	values := make(map[string][]byte, len(collections))
	for key, records := range collections {
		var raw []byte
		var err error
		switch v := records.(type) {
		case []models.Category:
			raw, err = store.Encode(v)
		case []models.Candidate:
			raw, err = store.Encode(v)
		case []models.Juror:
			raw, err = store.Encode(v)
		case []models.Evaluation:
			raw, err = store.Encode(v)
		case []models.ResultSnapshot:
			raw, err = store.Encode(v)
		default:
			err = fmt.Errorf("unsupported collection type %T", records)
		}
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		values[key] = raw
	}

	if err := s.store.SetMany(ctx, values); err != nil {
		return fmt.Errorf("failed to persist: %w", err)
	}
	return nil
}

func (s *Service) rejected(err error) {
	var verr *ValidationError
	var nerr *NotFoundError
	switch {
	case errors.As(err, &verr):
		s.metrics.SubmissionRejected(verr.Reason)
	case errors.As(err, &nerr):
		s.metrics.SubmissionRejected("not_found")
	}
}

func checkCategoryName(cats []models.Category, selfID, name string) error {
	folded := cases.Fold().String(name)
	for _, c := range cats {
		if c.ID != selfID && cases.Fold().String(c.Name) == folded {
			return &ConflictError{Kind: "category", Value: name}
		}
	}
	return nil
}

func checkBootstrap(st State) error {
	if len(st.Evaluations) > 0 {
		return &ValidationError{Field: "evaluations", Reason: ReasonInvalidField, Message: "evaluations cannot be bootstrapped"}
	}
	ids := make(map[string]bool)
	for i, c := range st.Categories {
		if c.ID == "" || strings.TrimSpace(c.Name) == "" {
			return &ValidationError{Field: "name", Reason: ReasonInvalidField, Message: "category id and name are required"}
		}
		if err := checkCategoryName(st.Categories[:i], "", c.Name); err != nil {
			return err
		}
		ids[c.ID] = true
	}
	for _, c := range st.Candidates {
		if c.ID == "" || strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Surname) == "" {
			return &ValidationError{Field: "name", Reason: ReasonInvalidField, Message: "candidate id, name and surname are required"}
		}
		if ids[c.ID] {
			return &ConflictError{Kind: "record id", Value: c.ID}
		}
		if err := checkCategoryRefs(st.Categories, c.CategoryIDs); err != nil {
			return err
		}
		ids[c.ID] = true
	}
	for _, j := range st.Jurors {
		if j.ID == "" || strings.TrimSpace(j.Name) == "" || strings.TrimSpace(j.Surname) == "" {
			return &ValidationError{Field: "name", Reason: ReasonInvalidField, Message: "juror id, name and surname are required"}
		}
		if ids[j.ID] {
			return &ConflictError{Kind: "record id", Value: j.ID}
		}
		if err := checkCategoryRefs(st.Categories, j.CategoryIDs); err != nil {
			return err
		}
		ids[j.ID] = true
	}
	return nil
}

func checkCategoryRefs(cats []models.Category, ids []string) error {
	for _, id := range ids {
		if findCategory(cats, id) < 0 {
			return &ValidationError{Field: id, Reason: ReasonUnknownCategory, Message: "category does not exist"}
		}
	}
	return nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func lessName(col *collate.Collator, surnameA, nameA, surnameB, nameB string) bool {
	if c := col.CompareString(surnameA, surnameB); c != 0 {
		return c < 0
	}
	return col.CompareString(nameA, nameB) < 0
}
