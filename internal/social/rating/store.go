// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rating

import (
	"context"

	"github.com/taibuivan/nyan/internal/platform/ref"
)

// Repository persists ratings.
//
// Upsert is a single atomic statement keyed on the (manga, user) pair; it
// overwrites ExternalScore only when the new value is non-nil and fills the
// stored values back into r.
type Repository interface {
	Upsert(ctx context.Context, r *Rating) error
	Find(ctx context.Context, mangaID ref.MangaID, userID ref.UserID) (*Rating, error)
	Totals(ctx context.Context, mangaID ref.MangaID) (Totals, error)
	ListByManga(ctx context.Context, mangaID ref.MangaID) ([]*Rating, error)
	ListByUser(ctx context.Context, userID ref.UserID) ([]*Rating, error)
}
