// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store implements the persistent key-value contract used by scoring.

Each key holds a JSON array of records:

	categories, candidates, jurors, evaluations, snapshots

A key that was never written reads as an empty collection:

	cats, err := store.Load[models.Category](ctx, s, models.KeyCategories)

# Implementations

  - SQL: kv_record table on sqlite or postgres; SetMany runs in one transaction
  - Memory: map-backed, used by tests and the memory database type
*/
package store
