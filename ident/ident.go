// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ident

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/fitss/sondaj-live/models"
)

// NewID returns a random UUIDv4 string for a new record
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like a record id.
// Lookups with a malformed id can skip the database.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// VoterID trims and validates a client-supplied voter identifier.
// Identifiers are opaque and unauthenticated; only the length is checked.
func VoterID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("%w: local_user_id is required", models.ErrValidation)
	}
	if utf8.RuneCountInString(id) > models.MaxVoterIDLength {
		return "", fmt.Errorf("%w: local_user_id must be at most %d characters", models.ErrValidation, models.MaxVoterIDLength)
	}
	return id, nil
}

// Title trims and validates a question title
func Title(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", models.ErrValidation)
	}
	if utf8.RuneCountInString(title) > models.MaxTitleLength {
		return "", fmt.Errorf("%w: title must be at most %d characters", models.ErrValidation, models.MaxTitleLength)
	}
	return title, nil
}

// Answers validates the answer choices of a live question.
// Order is preserved; duplicates are allowed as the index identifies a choice.
func Answers(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: answers must not be empty", models.ErrValidation)
	}

	answers := make([]string, len(raw))
	for i, a := range raw {
		answers[i] = strings.TrimSpace(a)
		if answers[i] == "" {
			return nil, fmt.Errorf("%w: answer %d is empty", models.ErrValidation, i)
		}
		if utf8.RuneCountInString(answers[i]) > models.MaxTitleLength {
			return nil, fmt.Errorf("%w: answer %d must be at most %d characters", models.ErrValidation, i, models.MaxTitleLength)
		}
	}
	return answers, nil
}
