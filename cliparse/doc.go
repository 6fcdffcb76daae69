// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8002)
  - DatabaseType: "sqlite" (default) or "postgres"
  - DatabaseURL: SQLite path (default: sondaj.db) or PostgreSQL connection string
  - AllowedOrigins: CORS allow-list
  - OriginRegex: additional CORS origins, matched against the whole origin

# CLI Flags

	-p                 Server port
	-d                 Database URL
	-t                 Database type
	-cors-origins      Allowed origins, comma separated or JSON array
	-cors-origin-regex Allowed origin regex
	-env-file          Dotenv file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT                      → -p
	DATABASE_URL              → -d
	DATABASE_TYPE             → -t
	BACKEND_CORS_ORIGINS      → -cors-origins
	BACKEND_CORS_ORIGIN_REGEX → -cors-origin-regex

Variables missing from the environment are read from the dotenv file if it
exists. CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - the database type is not sqlite or postgres
  - postgres is selected without a DATABASE_URL
  - PORT or the origin settings cannot be parsed
*/
package cliparse
