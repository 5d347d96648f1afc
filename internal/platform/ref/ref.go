// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ref defines the opaque identifiers shared across Nyan domains.

Each identifier is a canonical (lowercase, hyphenated) UUID string. Parsing
through this package is what guarantees two references to the same entity
compare equal, which the vote engine's set membership relies on.
*/
package ref

import (
	"github.com/google/uuid"

	"github.com/taibuivan/nyan/internal/platform/validate"
)

// UserID identifies an account owned by the identity component.
type UserID string

// MangaID identifies a catalog entry.
type MangaID string

// CommentID identifies a comment in a thread.
type CommentID string

func (id UserID) String() string    { return string(id) }
func (id MangaID) String() string   { return string(id) }
func (id CommentID) String() string { return string(id) }

// ParseUserID validates raw and returns its canonical form.
func ParseUserID(raw string) (UserID, error) {
	canonical, err := canonicalize("user_id", raw)
	return UserID(canonical), err
}

// ParseMangaID validates raw and returns its canonical form.
func ParseMangaID(raw string) (MangaID, error) {
	canonical, err := canonicalize("manga_id", raw)
	return MangaID(canonical), err
}

// ParseCommentID validates raw and returns its canonical form.
func ParseCommentID(raw string) (CommentID, error) {
	canonical, err := canonicalize("comment_id", raw)
	return CommentID(canonical), err
}

func canonicalize(field, raw string) (string, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return "", validate.FieldError(field, "Must be a valid UUID")
	}
	return parsed.String(), nil
}
