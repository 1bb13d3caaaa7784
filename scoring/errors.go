// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"errors"
	"fmt"
)

// ErrNoData is returned by callers that need an error form of the empty-ledger state.
var ErrNoData = errors.New("no evaluations recorded")

// Validation failure reasons
const (
	ReasonMissingScore    = "missing_score"
	ReasonOutOfRange      = "out_of_range"
	ReasonUnknownCategory = "unknown_category"
	ReasonNoCategories    = "no_categories"
	ReasonInvalidField    = "invalid_field"
)

// ValidationError rejects a whole submission. Field names the offending
// category ID for score errors, or the input field otherwise.
type ValidationError struct {
	Field   string
	Reason  string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NotFoundError reports a reference to a category, candidate, juror or
// evaluation that is not (or no longer) present.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// ConflictError reports a uniqueness violation, such as a duplicate category name.
type ConflictError struct {
	Kind  string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.Value)
}

func notFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}
