// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is shared by the sqlite and postgres dialects.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- User-submitted questions
CREATE TABLE IF NOT EXISTS user_question (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    votes INTEGER NOT NULL DEFAULT 0,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_user_question_active ON user_question(is_active, created_at);

-- One row per voter per user question
CREATE TABLE IF NOT EXISTS user_question_vote (
    question_id TEXT NOT NULL REFERENCES user_question(id) ON DELETE CASCADE,
    voter_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    voted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (question_id, voter_id)
);

-- Live questions, at most one active
CREATE TABLE IF NOT EXISTS live_question (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    answers TEXT NOT NULL,
    total_votes INTEGER NOT NULL DEFAULT 0,
    is_active BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_live_question_one_active ON live_question(is_active) WHERE is_active;
CREATE INDEX IF NOT EXISTS idx_live_question_created_at ON live_question(created_at);

-- Current choice of each voter per live question
CREATE TABLE IF NOT EXISTS live_vote (
    question_id TEXT NOT NULL REFERENCES live_question(id) ON DELETE CASCADE,
    voter_id TEXT NOT NULL,
    answer_index INTEGER NOT NULL CHECK (answer_index >= 0),
    voted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (question_id, voter_id)
);

CREATE INDEX IF NOT EXISTS idx_live_vote_answer ON live_vote(question_id, answer_index);
`
