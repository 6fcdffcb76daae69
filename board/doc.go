// Package board stores the audience-submitted question board.
//
// Questions are upvoted once per voter. The submitter casts the first vote,
// and repeated votes fail with models.ErrDuplicateVote.
package board
