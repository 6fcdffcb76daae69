// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SubmitUserQuestionRequest: title, local_user_id
  - VoteUserQuestionRequest: local_user_id
  - ActivateLiveQuestionRequest: title, answers
  - VoteLiveQuestionRequest: index, local_user_id

# Response Types

  - ResultResponse: {"result": "success"}
  - LiveQuestionView: title, answers, colors, answersVotes, totalVotes
  - ErrorResponse: error, message

# Domain Types

  - UserQuestion: a submitted question with its voters in voting order
  - LiveQuestion: a live question with one voter set per answer

# Errors

	ErrValidation    // malformed input
	ErrNotFound      // record missing, or no live question active
	ErrDuplicateVote // voter already counted on a user question
*/
package models
