// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Open picks the driver from the configured database type:

	conn, dialect, err := db.Open(cfg)

SQLite (modernc.org/sqlite, pure Go) is the default. Its pool is limited to
one connection and every transaction starts with BEGIN IMMEDIATE, so writers
are serialized by the database itself. PostgreSQL uses github.com/lib/pq.

# Dialects

The schema and almost every query are shared. The differences live on
Dialect:

	dialect.ForUpdate()         // " FOR UPDATE" on postgres, "" on sqlite
	dialect.LockLiveQuestions() // table lock taken while activating

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - user_question: submitted questions and their vote counter
  - user_question_vote: one row per voter per user question
  - live_question: live questions, current and retired
  - live_vote: current answer of each voter per live question

# Relationships

	user_question 1──* user_question_vote
	live_question 1──* live_vote

Foreign keys use ON DELETE CASCADE.

# Constraints

  - (question_id, voter_id) is the primary key of both vote tables, so a
    voter can hold at most one row per question
  - idx_live_question_one_active is a partial unique index on
    live_question(is_active) WHERE is_active: two active rows cannot exist

IsUniqueViolation recognises violations of these constraints from either
driver.
*/
package db
