// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ident generates record ids and validates client-supplied input.

# Record IDs

Records use random UUIDv4 strings:

	id := ident.NewID()
	ok := ident.ValidID(id)

# Voter Identifiers

A voter identifier (local_user_id) is an opaque string chosen by the client
and used only to deduplicate votes. It is not authenticated.

	voterID, err := ident.VoterID(req.LocalUserID)

Surrounding whitespace is trimmed; the result must be 1-100 characters.

# Titles and Answers

	title, err := ident.Title(req.Title)       // 1-256 characters
	answers, err := ident.Answers(req.Answers) // non-empty list of non-empty strings

All validation failures wrap models.ErrValidation.
*/
package ident
