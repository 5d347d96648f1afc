// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"

	"github.com/taibuivan/nyan/internal/platform/ref"
)

// Repository defines persistence operations for manga entries.
type Repository interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Manga, int, error)
	FindByID(ctx context.Context, id ref.MangaID) (*Manga, error)
	FindBySlug(ctx context.Context, slug string) (*Manga, error)
	FindByIDs(ctx context.Context, ids []ref.MangaID) ([]*Manga, error)
	Create(ctx context.Context, manga *Manga) error
	Exists(ctx context.Context, id ref.MangaID) (bool, error)
	SlugTaken(ctx context.Context, slug string) (bool, error)
}
