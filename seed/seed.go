// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/pageant/models"
	"github.com/danielhkuo/pageant/scoring"
)

// File is the YAML layout of a seed file. Candidates and jurors refer to
// categories by name.
type File struct {
	Categories []string    `yaml:"categories" validate:"dive,required"`
	Candidates []Candidate `yaml:"candidates" validate:"dive"`
	Jurors     []Juror     `yaml:"jurors" validate:"dive"`
}

type Candidate struct {
	Name       string   `yaml:"name" validate:"required"`
	Surname    string   `yaml:"surname" validate:"required"`
	Age        int      `yaml:"age" validate:"min=0,max=130"`
	PhotoRef   string   `yaml:"photo_ref"`
	Categories []string `yaml:"categories"`
}

type Juror struct {
	Name       string   `yaml:"name" validate:"required"`
	Surname    string   `yaml:"surname" validate:"required"`
	Email      string   `yaml:"email" validate:"omitempty,email"`
	Categories []string `yaml:"categories"`
}

// Load reads and validates a seed file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes seed YAML. Unknown fields, category names that repeat
// ignoring case and references to undeclared categories are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := models.Validate(f); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	if err := f.checkCategories(); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	return &f, nil
}

func (f *File) checkCategories() error {
	fold := cases.Fold()
	declared := make(map[string]bool, len(f.Categories))
	for _, name := range f.Categories {
		key := fold.String(strings.TrimSpace(name))
		if declared[key] {
			return fmt.Errorf("duplicate category %q", name)
		}
		declared[key] = true
	}

	check := func(owner string, refs []string) error {
		for _, ref := range refs {
			if !declared[fold.String(strings.TrimSpace(ref))] {
				return fmt.Errorf("%s: unknown category %q", owner, ref)
			}
		}
		return nil
	}
	for _, c := range f.Candidates {
		if err := check("candidate "+c.Name+" "+c.Surname, c.Categories); err != nil {
			return err
		}
	}
	for _, j := range f.Jurors {
		if err := check("juror "+j.Name+" "+j.Surname, j.Categories); err != nil {
			return err
		}
	}
	return nil
}

// State converts f into records with fresh IDs, resolving category names.
func (f *File) State(newID func() string) (scoring.State, error) {
	if err := f.checkCategories(); err != nil {
		return scoring.State{}, err
	}

	fold := cases.Fold()
	ids := make(map[string]string, len(f.Categories))
	st := scoring.State{Categories: make([]models.Category, 0, len(f.Categories))}
	for _, name := range f.Categories {
		cat := models.Category{ID: newID(), Name: strings.TrimSpace(name)}
		ids[fold.String(cat.Name)] = cat.ID
		st.Categories = append(st.Categories, cat)
	}

	resolve := func(names []string) []string {
		out := make([]string, 0, len(names))
		seen := make(map[string]bool, len(names))
		for _, n := range names {
			id := ids[fold.String(strings.TrimSpace(n))]
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
		return out
	}

	for _, c := range f.Candidates {
		st.Candidates = append(st.Candidates, models.Candidate{
			ID:          newID(),
			Name:        strings.TrimSpace(c.Name),
			Surname:     strings.TrimSpace(c.Surname),
			Age:         c.Age,
			PhotoRef:    c.PhotoRef,
			CategoryIDs: resolve(c.Categories),
		})
	}
	for _, j := range f.Jurors {
		st.Jurors = append(st.Jurors, models.Juror{
			ID:          newID(),
			Name:        strings.TrimSpace(j.Name),
			Surname:     strings.TrimSpace(j.Surname),
			Email:       strings.TrimSpace(j.Email),
			CategoryIDs: resolve(j.Categories),
		})
	}
	return st, nil
}

// Apply loads f into an empty store in one write and reports whether it did.
// A store that already holds categories, candidates or jurors is left alone.
// On error nothing is written, so a corrected file can be applied later.
func Apply(ctx context.Context, svc *scoring.Service, f *File) (bool, error) {
	st, err := f.State(uuid.NewString)
	if err != nil {
		return false, fmt.Errorf("invalid seed file: %w", err)
	}

	applied, err := svc.Bootstrap(ctx, st)
	if err != nil {
		return false, fmt.Errorf("failed to apply seed: %w", err)
	}
	if !applied {
		slog.Info("store already populated, skipping seed")
	}
	return applied, nil
}
