package board

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fitss/sondaj-live/db"
	"github.com/fitss/sondaj-live/ident"
	"github.com/fitss/sondaj-live/metrics"
	"github.com/fitss/sondaj-live/models"
)

// Board is the collection of user-submitted questions
type Board struct {
	conn    *sql.DB
	dialect db.Dialect
}

func New(conn *sql.DB, dialect db.Dialect) *Board {
	return &Board{conn: conn, dialect: dialect}
}

const selectQuestions = `
	SELECT q.id, q.title, q.votes, q.is_active, v.voter_id
	FROM user_question q
	LEFT JOIN user_question_vote v ON v.question_id = q.id
`

// ListActive returns every active question, oldest first.
// Voters are listed in the order they voted.
func (b *Board) ListActive(ctx context.Context) ([]models.UserQuestion, error) {
	rows, err := b.conn.QueryContext(ctx, selectQuestions+`
		WHERE q.is_active
		ORDER BY q.created_at, q.id, v.seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// Get returns a single question by id
func (b *Board) Get(ctx context.Context, id string) (models.UserQuestion, error) {
	if !ident.ValidID(id) {
		return models.UserQuestion{}, fmt.Errorf("%w: question %s", models.ErrNotFound, id)
	}

	rows, err := b.conn.QueryContext(ctx, selectQuestions+`
		WHERE q.id = $1
		ORDER BY v.seq
	`, id)
	if err != nil {
		return models.UserQuestion{}, fmt.Errorf("failed to query question: %w", err)
	}
	defer rows.Close()

	questions, err := scanQuestions(rows)
	if err != nil {
		return models.UserQuestion{}, err
	}
	if len(questions) == 0 {
		return models.UserQuestion{}, fmt.Errorf("%w: question %s", models.ErrNotFound, id)
	}
	return questions[0], nil
}

// scanQuestions folds one row per (question, voter) into questions.
// Rows of the same question must be adjacent.
func scanQuestions(rows *sql.Rows) ([]models.UserQuestion, error) {
	questions := []models.UserQuestion{}
	for rows.Next() {
		var q models.UserQuestion
		var voterID sql.NullString
		if err := rows.Scan(&q.ID, &q.Title, &q.Votes, &q.IsActive, &voterID); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}

		if n := len(questions); n == 0 || questions[n-1].ID != q.ID {
			q.UsersVoted = []string{}
			questions = append(questions, q)
		}
		if voterID.Valid {
			last := &questions[len(questions)-1]
			last.UsersVoted = append(last.UsersVoted, voterID.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}
	return questions, nil
}

// Submit stores a new question. The submitter is counted as its first vote.
func (b *Board) Submit(ctx context.Context, req models.SubmitUserQuestionRequest) (models.UserQuestion, error) {
	title, err := ident.Title(req.Title)
	if err != nil {
		return models.UserQuestion{}, err
	}
	voterID, err := ident.VoterID(req.LocalUserID)
	if err != nil {
		return models.UserQuestion{}, err
	}

	q := models.UserQuestion{
		ID:         ident.NewID(),
		Title:      title,
		Votes:      1,
		IsActive:   true,
		UsersVoted: []string{voterID},
	}
	now := time.Now().UTC()

	tx, err := b.conn.BeginTx(ctx, nil)
	if err != nil {
		return models.UserQuestion{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_question (id, title, votes, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, q.ID, q.Title, q.Votes, q.IsActive, now)
	if err != nil {
		return models.UserQuestion{}, fmt.Errorf("failed to insert question: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_question_vote (question_id, voter_id, seq, voted_at)
		VALUES ($1, $2, 1, $3)
	`, q.ID, voterID, now)
	if err != nil {
		return models.UserQuestion{}, fmt.Errorf("failed to insert first vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.UserQuestion{}, fmt.Errorf("failed to commit question: %w", err)
	}

	return q, nil
}

// Vote counts voterID on the question once. A second vote by the same
// voter fails with models.ErrDuplicateVote and changes nothing.
func (b *Board) Vote(ctx context.Context, id, rawVoterID string) error {
	voterID, err := ident.VoterID(rawVoterID)
	if err != nil {
		metrics.Vote(metrics.BoardUser, metrics.OutcomeRejected)
		return err
	}
	if !ident.ValidID(id) {
		metrics.Vote(metrics.BoardUser, metrics.OutcomeRejected)
		return fmt.Errorf("%w: question %s", models.ErrNotFound, id)
	}

	err = b.vote(ctx, id, voterID)
	switch {
	case err == nil:
		metrics.Vote(metrics.BoardUser, metrics.OutcomeAccepted)
	case errors.Is(err, models.ErrDuplicateVote):
		metrics.Vote(metrics.BoardUser, metrics.OutcomeDuplicate)
	case errors.Is(err, models.ErrNotFound):
		metrics.Vote(metrics.BoardUser, metrics.OutcomeRejected)
	}
	return err
}

func (b *Board) vote(ctx context.Context, id, voterID string) error {
	tx, err := b.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the question so concurrent votes on it serialize
	var votes int
	err = tx.QueryRowContext(ctx, `
		SELECT votes FROM user_question WHERE id = $1
	`+b.dialect.ForUpdate(), id).Scan(&votes)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: question %s", models.ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to lock question: %w", err)
	}

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM user_question_vote
			WHERE question_id = $1 AND voter_id = $2
		)
	`, id, voterID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check previous vote: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: question %s", models.ErrDuplicateVote, id)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_question_vote (question_id, voter_id, seq, voted_at)
		VALUES ($1, $2, $3, $4)
	`, id, voterID, votes+1, time.Now().UTC())
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("%w: question %s", models.ErrDuplicateVote, id)
	}
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE user_question SET votes = votes + 1 WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to increment votes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}
	return nil
}

// Delete removes the question and its votes. Deleting a missing id is not an error.
func (b *Board) Delete(ctx context.Context, id string) error {
	if !ident.ValidID(id) {
		return nil
	}

	tx, err := b.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_question_vote WHERE question_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete votes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_question WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}
