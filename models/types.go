package models

// Response marker returned by every successful mutation
const ResultSuccess = "success"

// Limits inherited from the original column and query definitions
const (
	MaxTitleLength   = 256
	MaxVoterIDLength = 100
)

// Request types

type SubmitUserQuestionRequest struct {
	Title       string `json:"title"`
	LocalUserID string `json:"local_user_id"`
}

type VoteUserQuestionRequest struct {
	LocalUserID string `json:"local_user_id"`
}

type ActivateLiveQuestionRequest struct {
	Title   string   `json:"title"`
	Answers []string `json:"answers"`
}

// Index is a pointer so a missing field can be told apart from 0
type VoteLiveQuestionRequest struct {
	Index       *int   `json:"index"`
	LocalUserID string `json:"local_user_id"`
}

// Response types

type ResultResponse struct {
	Result string `json:"result"`
}

// Domain types

type UserQuestion struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Votes      int      `json:"votes"`
	IsActive   bool     `json:"is_active"`
	UsersVoted []string `json:"users_voted"`
}

// LiveQuestion is the full stored record, voter identifiers included
type LiveQuestion struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Answers      []string   `json:"answers"`
	AnswersVotes [][]string `json:"answers_votes"`
	TotalVotes   int        `json:"total_votes"`
	IsActive     bool       `json:"is_active"`
}

// Counts returns the number of voters currently choosing each answer
func (q LiveQuestion) Counts() []int {
	counts := make([]int, len(q.Answers))
	for i := range counts {
		if i < len(q.AnswersVotes) {
			counts[i] = len(q.AnswersVotes[i])
		}
	}
	return counts
}

// LiveQuestionView is what voters see: counts only, never identifiers
type LiveQuestionView struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Answers      []string `json:"answers"`
	Colors       []string `json:"colors"`
	AnswersVotes []int    `json:"answersVotes"`
	TotalVotes   int      `json:"totalVotes"`
	IsActive     bool     `json:"isActive"`
}

// View hides voter identifiers
func (q LiveQuestion) View() LiveQuestionView {
	return LiveQuestionView{
		ID:           q.ID,
		Title:        q.Title,
		Answers:      q.Answers,
		Colors:       []string{},
		AnswersVotes: q.Counts(),
		TotalVotes:   q.TotalVotes,
		IsActive:     q.IsActive,
	}
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
