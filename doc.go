// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pageant scoring server.

Pageant records juror scores for contest candidates across configurable
categories and turns them into rankings and summary statistics.

# Starting the Server

	go run . -p 3318

With no configuration the server uses a sqlite file named pageant.db.
A .env file in the working directory is loaded first when present.

# Terminal Report

	go run . report -d pageant.db

Prints the current ranking table and statistics, then exits.

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or memory (default: sqlite)
  - DATABASE_URL (-d): sqlite path or PostgreSQL connection string
  - SEED_FILE (-seed): YAML file loaded into an empty store
  - LOG_LEVEL (-log-level): debug, info, warn or error

# Architecture

  - scoring: aggregation rules and the store-backed Service
  - store: key-value persistence (sqlite, postgres, memory)
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, recovery, JSON helpers
  - models: Request, response and domain types
  - metrics: Prometheus collectors
  - seed: YAML bootstrap
  - report: terminal rendering
  - auth: placeholder login
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
