// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"

	"github.com/taibuivan/nyan/internal/platform/ref"
)

// Repository defines the persistence operations for comments.
type Repository interface {
	// Create inserts c with empty voter sets and fills its timestamps.
	Create(ctx context.Context, c *Comment) error

	FindByID(ctx context.Context, id ref.CommentID) (*Comment, error)

	// ListByManga returns the manga's thread, newest first.
	ListByManga(ctx context.Context, mangaID ref.MangaID) ([]*Comment, error)

	// ListByUser returns everything the user has posted, newest first.
	ListByUser(ctx context.Context, userID ref.UserID) ([]*Comment, error)

	// UpdateBallot locks the comment, passes its ballot to mutate and
	// persists the result before releasing the lock. Returns NOT_FOUND when
	// the comment does not exist.
	UpdateBallot(ctx context.Context, id ref.CommentID, mutate func(ballot *Ballot)) (*Comment, error)
}
