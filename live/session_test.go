package live

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/fitss/sondaj-live/models"
	"github.com/fitss/sondaj-live/testutil"
)

func setupSession(t *testing.T) *Session {
	t.Helper()

	conn, dialect := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	return New(conn, dialect)
}

func activate(t *testing.T, s *Session, title string, answers ...string) models.LiveQuestion {
	t.Helper()

	q, err := s.Activate(context.Background(), models.ActivateLiveQuestionRequest{Title: title, Answers: answers})
	if err != nil {
		t.Fatalf("Failed to activate question: %v", err)
	}
	return q
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGetActive_NoQuestion(t *testing.T) {
	s := setupSession(t)

	_, err := s.GetActive(context.Background(), "alice")
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := s.Vote(context.Background(), 0, "alice"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Voting without an active question should fail with ErrNotFound, got %v", err)
	}
}

func TestGetActive_RequiresVoter(t *testing.T) {
	s := setupSession(t)
	activate(t, s, "Question", "Yes", "No")

	if _, err := s.GetActive(context.Background(), ""); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}

func TestActivate(t *testing.T) {
	s := setupSession(t)
	ctx := context.Background()

	q := activate(t, s, "Best color?", "Red", "Blue")
	if !q.IsActive || q.TotalVotes != 0 || len(q.AnswersVotes) != 2 {
		t.Errorf("Unexpected new question: %+v", q)
	}

	view, err := s.GetActive(ctx, "alice")
	if err != nil {
		t.Fatalf("Failed to get active question: %v", err)
	}
	if view.Title != "Best color?" || len(view.Answers) != 2 {
		t.Errorf("Unexpected view: %+v", view)
	}
	if !equalInts(view.AnswersVotes, []int{0, 0}) || view.TotalVotes != 0 {
		t.Errorf("Expected zero counts, got %v / %d", view.AnswersVotes, view.TotalVotes)
	}
	if view.Colors == nil || len(view.Colors) != 0 {
		t.Errorf("Expected empty colors, got %v", view.Colors)
	}
}

func TestActivate_Validation(t *testing.T) {
	s := setupSession(t)

	tests := []struct {
		name string
		req  models.ActivateLiveQuestionRequest
	}{
		{"empty title", models.ActivateLiveQuestionRequest{Title: "", Answers: []string{"A"}}},
		{"no answers", models.ActivateLiveQuestionRequest{Title: "Q", Answers: nil}},
		{"blank answer", models.ActivateLiveQuestionRequest{Title: "Q", Answers: []string{"A", " "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Activate(context.Background(), tt.req)
			if !errors.Is(err, models.ErrValidation) {
				t.Errorf("Expected ErrValidation, got %v", err)
			}
		})
	}

	if _, err := s.GetActive(context.Background(), "alice"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Rejected activations must not create a question, got %v", err)
	}
}

func TestActivate_ReplacesPrevious(t *testing.T) {
	s := setupSession(t)
	ctx := context.Background()

	first := activate(t, s, "First", "A", "B")
	if err := s.Vote(ctx, 1, "alice"); err != nil {
		t.Fatalf("Failed to vote: %v", err)
	}
	activate(t, s, "Second", "C", "D")
	third := activate(t, s, "Third", "E")

	active := testutil.CountRows(t, s.conn, "live_question", "is_active")
	if active != 1 {
		t.Errorf("Expected exactly one active question, got %d", active)
	}

	current, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Failed to get snapshot: %v", err)
	}
	if current.ID != third.ID {
		t.Errorf("Expected the latest question to be active, got %s", current.Title)
	}

	history, err := s.History(ctx)
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("Expected 3 questions in history, got %d", len(history))
	}
	if history[0].ID != third.ID || !history[0].IsActive {
		t.Errorf("Expected newest active question first, got %+v", history[0])
	}

	// Retired questions keep their votes
	old := history[2]
	if old.ID != first.ID || old.IsActive {
		t.Errorf("Expected first question retired, got %+v", old)
	}
	if !equalInts(old.AnswersVotes, []int{0, 1}) || old.TotalVotes != 1 {
		t.Errorf("Expected retired counts [0 1] / 1, got %v / %d", old.AnswersVotes, old.TotalVotes)
	}
}

func TestVote_Revote(t *testing.T) {
	s := setupSession(t)
	ctx := context.Background()

	activate(t, s, "Best color?", "Red", "Blue")

	steps := []struct {
		index   int
		voterID string
	}{
		{0, "alice"},
		{1, "alice"},
		{0, "bob"},
	}
	for _, step := range steps {
		if err := s.Vote(ctx, step.index, step.voterID); err != nil {
			t.Fatalf("Vote(%d, %s) failed: %v", step.index, step.voterID, err)
		}
	}

	view, err := s.GetActive(ctx, "alice")
	if err != nil {
		t.Fatalf("Failed to get active question: %v", err)
	}
	if !equalInts(view.AnswersVotes, []int{1, 1}) {
		t.Errorf("Expected counts [1 1], got %v", view.AnswersVotes)
	}
	if view.TotalVotes != 2 {
		t.Errorf("Expected 2 total votes, got %d", view.TotalVotes)
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Failed to get snapshot: %v", err)
	}
	if len(snap.AnswersVotes[0]) != 1 || snap.AnswersVotes[0][0] != "bob" {
		t.Errorf("Expected [bob] on answer 0, got %v", snap.AnswersVotes[0])
	}
	if len(snap.AnswersVotes[1]) != 1 || snap.AnswersVotes[1][0] != "alice" {
		t.Errorf("Expected [alice] on answer 1, got %v", snap.AnswersVotes[1])
	}

	if err := s.Vote(ctx, 5, "carol"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation for out-of-range index, got %v", err)
	}
}

func TestVote_SameAnswerAgain(t *testing.T) {
	s := setupSession(t)
	ctx := context.Background()

	activate(t, s, "Question", "Yes", "No")

	for i := 0; i < 3; i++ {
		if err := s.Vote(ctx, 0, "alice"); err != nil {
			t.Fatalf("Vote %d failed: %v", i, err)
		}
	}

	view, _ := s.GetActive(ctx, "alice")
	if !equalInts(view.AnswersVotes, []int{1, 0}) || view.TotalVotes != 1 {
		t.Errorf("Repeated vote should change nothing, got %v / %d", view.AnswersVotes, view.TotalVotes)
	}
}

func TestVote_InvalidIndex(t *testing.T) {
	s := setupSession(t)
	ctx := context.Background()

	activate(t, s, "Question", "Yes", "No")
	if err := s.Vote(ctx, 0, "alice"); err != nil {
		t.Fatalf("Failed to vote: %v", err)
	}

	for _, index := range []int{-1, 2, 100} {
		t.Run(fmt.Sprintf("index %d", index), func(t *testing.T) {
			if err := s.Vote(ctx, index, "alice"); !errors.Is(err, models.ErrValidation) {
				t.Errorf("Expected ErrValidation, got %v", err)
			}
		})
	}

	// The earlier vote is untouched
	view, _ := s.GetActive(ctx, "alice")
	if !equalInts(view.AnswersVotes, []int{1, 0}) || view.TotalVotes != 1 {
		t.Errorf("Rejected votes must not change state, got %v / %d", view.AnswersVotes, view.TotalVotes)
	}
}

func TestVote_EmptyVoter(t *testing.T) {
	s := setupSession(t)
	activate(t, s, "Question", "Yes")

	if err := s.Vote(context.Background(), 0, "  "); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}

// TestConcurrentVotes verifies totalVotes equals distinct voters while
// voters change their answers concurrently
func TestConcurrentVotes(t *testing.T) {
	s := setupSession(t)
	ctx := context.Background()

	activate(t, s, "Question", "A", "B", "C")

	numVoters := 15
	var wg sync.WaitGroup
	for i := 0; i < numVoters; i++ {
		for round := 0; round < 3; round++ {
			wg.Add(1)
			go func(voter, index int) {
				defer wg.Done()
				if err := s.Vote(ctx, index, fmt.Sprintf("voter-%d", voter)); err != nil {
					t.Errorf("Vote failed: %v", err)
				}
			}(i, round)
		}
	}
	wg.Wait()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Failed to get snapshot: %v", err)
	}
	if snap.TotalVotes != numVoters {
		t.Errorf("Expected %d total votes, got %d", numVoters, snap.TotalVotes)
	}

	seen := map[string]bool{}
	for _, voters := range snap.AnswersVotes {
		for _, v := range voters {
			if seen[v] {
				t.Errorf("Voter %s appears in more than one answer", v)
			}
			seen[v] = true
		}
	}
	if len(seen) != numVoters {
		t.Errorf("Expected %d distinct voters, got %d", numVoters, len(seen))
	}
}

func TestConcurrentActivate(t *testing.T) {
	s := setupSession(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := s.Activate(context.Background(), models.ActivateLiveQuestionRequest{
				Title:   fmt.Sprintf("Question %d", n),
				Answers: []string{"Yes", "No"},
			})
			if err != nil {
				t.Errorf("Activate failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if n := testutil.CountRows(t, s.conn, "live_question", ""); n != 10 {
		t.Errorf("Expected 10 questions, got %d", n)
	}
	if n := testutil.CountRows(t, s.conn, "live_question", "is_active"); n != 1 {
		t.Errorf("Expected exactly one active question, got %d", n)
	}
}
