package live

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fitss/sondaj-live/db"
	"github.com/fitss/sondaj-live/ident"
	"github.com/fitss/sondaj-live/metrics"
	"github.com/fitss/sondaj-live/models"
)

// Session manages the single active live question and its history
type Session struct {
	conn    *sql.DB
	dialect db.Dialect
}

func New(conn *sql.DB, dialect db.Dialect) *Session {
	return &Session{conn: conn, dialect: dialect}
}

const selectLiveQuestions = `
	SELECT q.id, q.title, q.answers, q.total_votes, q.is_active, v.voter_id, v.answer_index
	FROM live_question q
	LEFT JOIN live_vote v ON v.question_id = q.id
`

// GetActive returns the active question with per-answer counts.
// voterID is required but does not change the result.
func (s *Session) GetActive(ctx context.Context, voterID string) (models.LiveQuestionView, error) {
	if _, err := ident.VoterID(voterID); err != nil {
		return models.LiveQuestionView{}, err
	}

	q, err := s.Snapshot(ctx)
	if err != nil {
		return models.LiveQuestionView{}, err
	}
	return q.View(), nil
}

// Snapshot returns the full active record, voter sets included
func (s *Session) Snapshot(ctx context.Context) (models.LiveQuestion, error) {
	rows, err := s.conn.QueryContext(ctx, selectLiveQuestions+`
		WHERE q.is_active
		ORDER BY v.voted_at, v.voter_id
	`)
	if err != nil {
		return models.LiveQuestion{}, fmt.Errorf("failed to query live question: %w", err)
	}
	defer rows.Close()

	questions, err := scanLiveQuestions(rows)
	if err != nil {
		return models.LiveQuestion{}, err
	}
	if len(questions) == 0 {
		return models.LiveQuestion{}, fmt.Errorf("%w: no live question is active", models.ErrNotFound)
	}
	return questions[0], nil
}

// History returns every live question, newest first, the active one included
func (s *Session) History(ctx context.Context) ([]models.LiveQuestionView, error) {
	rows, err := s.conn.QueryContext(ctx, selectLiveQuestions+`
		ORDER BY q.created_at DESC, q.id, v.voted_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query live questions: %w", err)
	}
	defer rows.Close()

	questions, err := scanLiveQuestions(rows)
	if err != nil {
		return nil, err
	}

	views := make([]models.LiveQuestionView, len(questions))
	for i, q := range questions {
		views[i] = q.View()
	}
	return views, nil
}

// scanLiveQuestions folds one row per (question, voter) into questions.
// Rows of the same question must be adjacent.
func scanLiveQuestions(rows *sql.Rows) ([]models.LiveQuestion, error) {
	questions := []models.LiveQuestion{}
	for rows.Next() {
		var q models.LiveQuestion
		var answers string
		var voterID sql.NullString
		var answerIndex sql.NullInt64
		if err := rows.Scan(&q.ID, &q.Title, &answers, &q.TotalVotes, &q.IsActive, &voterID, &answerIndex); err != nil {
			return nil, fmt.Errorf("failed to scan live question: %w", err)
		}

		if n := len(questions); n == 0 || questions[n-1].ID != q.ID {
			if err := json.Unmarshal([]byte(answers), &q.Answers); err != nil {
				return nil, fmt.Errorf("failed to decode answers of %s: %w", q.ID, err)
			}
			q.AnswersVotes = make([][]string, len(q.Answers))
			for i := range q.AnswersVotes {
				q.AnswersVotes[i] = []string{}
			}
			questions = append(questions, q)
		}

		if voterID.Valid && answerIndex.Valid {
			last := &questions[len(questions)-1]
			idx := int(answerIndex.Int64)
			if idx < len(last.AnswersVotes) {
				last.AnswersVotes[idx] = append(last.AnswersVotes[idx], voterID.String)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read live questions: %w", err)
	}
	return questions, nil
}

// Activate retires the current live question, if any, and makes a new one
// active. Both steps commit together.
func (s *Session) Activate(ctx context.Context, req models.ActivateLiveQuestionRequest) (models.LiveQuestion, error) {
	title, err := ident.Title(req.Title)
	if err != nil {
		return models.LiveQuestion{}, err
	}
	answers, err := ident.Answers(req.Answers)
	if err != nil {
		return models.LiveQuestion{}, err
	}

	encoded, err := json.Marshal(answers)
	if err != nil {
		return models.LiveQuestion{}, fmt.Errorf("failed to encode answers: %w", err)
	}

	q := models.LiveQuestion{
		ID:           ident.NewID(),
		Title:        title,
		Answers:      answers,
		AnswersVotes: make([][]string, len(answers)),
		TotalVotes:   0,
		IsActive:     true,
	}
	for i := range q.AnswersVotes {
		q.AnswersVotes[i] = []string{}
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return models.LiveQuestion{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if lock := s.dialect.LockLiveQuestions(); lock != "" {
		if _, err := tx.ExecContext(ctx, lock); err != nil {
			return models.LiveQuestion{}, fmt.Errorf("failed to lock live questions: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE live_question SET is_active = $1 WHERE is_active
	`, false)
	if err != nil {
		return models.LiveQuestion{}, fmt.Errorf("failed to deactivate live question: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO live_question (id, title, answers, total_votes, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, q.ID, q.Title, string(encoded), q.TotalVotes, q.IsActive, time.Now().UTC())
	if err != nil {
		return models.LiveQuestion{}, fmt.Errorf("failed to insert live question: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.LiveQuestion{}, fmt.Errorf("failed to commit live question: %w", err)
	}

	metrics.LiveActivations.Inc()
	return q, nil
}

// Vote sets the voter's choice on the active question. A previous choice
// of the same voter is replaced and does not count as a new voter.
func (s *Session) Vote(ctx context.Context, answerIndex int, rawVoterID string) error {
	voterID, err := ident.VoterID(rawVoterID)
	if err != nil {
		metrics.Vote(metrics.BoardLive, metrics.OutcomeRejected)
		return err
	}

	changed, err := s.vote(ctx, answerIndex, voterID)
	switch {
	case err != nil:
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrValidation) {
			metrics.Vote(metrics.BoardLive, metrics.OutcomeRejected)
		}
	case changed:
		metrics.Vote(metrics.BoardLive, metrics.OutcomeChanged)
	default:
		metrics.Vote(metrics.BoardLive, metrics.OutcomeAccepted)
	}
	return err
}

func (s *Session) vote(ctx context.Context, answerIndex int, voterID string) (bool, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the active question so concurrent votes on it serialize
	var questionID, encoded string
	err = tx.QueryRowContext(ctx, `
		SELECT id, answers FROM live_question WHERE is_active
	`+s.dialect.ForUpdate()).Scan(&questionID, &encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("%w: no live question is active", models.ErrNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("failed to lock live question: %w", err)
	}

	var answers []string
	if err := json.Unmarshal([]byte(encoded), &answers); err != nil {
		return false, fmt.Errorf("failed to decode answers of %s: %w", questionID, err)
	}
	if answerIndex < 0 || answerIndex >= len(answers) {
		return false, fmt.Errorf("%w: answer index %d out of range [0, %d)", models.ErrValidation, answerIndex, len(answers))
	}

	// A voter has at most one row, so "voted before" is its presence
	var previous int
	err = tx.QueryRowContext(ctx, `
		SELECT answer_index FROM live_vote WHERE question_id = $1 AND voter_id = $2
	`, questionID, voterID).Scan(&previous)
	hadVotedBefore := !errors.Is(err, sql.ErrNoRows)
	if err != nil && hadVotedBefore {
		return false, fmt.Errorf("failed to check previous vote: %w", err)
	}

	now := time.Now().UTC()
	if hadVotedBefore {
		// Retract and recast in one statement
		_, err = tx.ExecContext(ctx, `
			UPDATE live_vote SET answer_index = $1, voted_at = $2
			WHERE question_id = $3 AND voter_id = $4
		`, answerIndex, now, questionID, voterID)
		if err != nil {
			return false, fmt.Errorf("failed to update vote: %w", err)
		}
	} else {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO live_vote (question_id, voter_id, answer_index, voted_at)
			VALUES ($1, $2, $3, $4)
		`, questionID, voterID, answerIndex, now)
		if err != nil {
			return false, fmt.Errorf("failed to insert vote: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE live_question SET total_votes = total_votes + 1 WHERE id = $1
		`, questionID)
		if err != nil {
			return false, fmt.Errorf("failed to increment total votes: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit vote: %w", err)
	}
	return hadVotedBefore, nil
}
