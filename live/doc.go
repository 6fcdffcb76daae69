// Package live runs the presenter-driven live question.
//
// At most one live question is active. Activating a new one retires the
// previous question in the same transaction; retired questions and their
// votes are kept for History. Each voter holds at most one answer on a
// question and may change it, so TotalVotes counts distinct voters.
package live
