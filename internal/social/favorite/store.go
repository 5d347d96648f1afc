// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"context"

	"github.com/taibuivan/nyan/internal/platform/ref"
)

// Repository persists favorite relations.
//
// Create fails with a unique-violation error when the pair already exists.
// Delete reports whether a row was removed.
type Repository interface {
	Exists(ctx context.Context, mangaID ref.MangaID, userID ref.UserID) (bool, error)
	Create(ctx context.Context, favorite *Favorite) error
	Delete(ctx context.Context, mangaID ref.MangaID, userID ref.UserID) (bool, error)
	ListByUser(ctx context.Context, userID ref.UserID) ([]*Favorite, error)
	CountByManga(ctx context.Context, mangaID ref.MangaID) (int, error)
}
