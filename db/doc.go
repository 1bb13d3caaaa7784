// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Open selects the driver from the database type, pings, and creates the schema:

	conn, err := db.Open(db.TypeSQLite, "pageant.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

sqlite uses modernc.org/sqlite (pure Go); postgres uses github.com/lib/pq.

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS.

# Tables

  - kv_record: one row per store key (categories, candidates, jurors,
    evaluations, snapshots); payload is a JSON array, updated_at is Unix
    milliseconds
*/
package db
