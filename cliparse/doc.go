// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: sqlite path or PostgreSQL connection string
  - DatabaseType: sqlite (default), postgres or memory
  - SeedFile: YAML file loaded into an empty store at startup
  - LogLevel: debug, info (default), warn or error
  - CORSOrigins: origins allowed by CORS; empty allows any origin

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	-seed       Seed file
	-log-level  Log level
	-cors       Comma-separated CORS origins

# Environment Variables

The environment is parsed first and supplies the flag defaults:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	SEED_FILE     → -seed
	LOG_LEVEL     → -log-level
	CORS_ORIGINS  → -cors

CLI flags take precedence over environment variables. main loads a .env
file, when present, before calling ParseFlags.

# Validation

  - DATABASE_URL is required for postgres; sqlite defaults to pageant.db
  - DATABASE_TYPE must be sqlite, postgres or memory
  - PORT must be between 1 and 65535
  - each CORS origin must be a URL
*/
package cliparse
