// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package activity assembles the read-only pages that combine several social
components: a manga's detail page and a user's public profile.

Nothing here writes. Each page is built by fetching its parts concurrently
from the owning services and joining them.
*/
package activity

import (
	"time"

	"github.com/taibuivan/nyan/internal/catalog"
	"github.com/taibuivan/nyan/internal/identity"
	"github.com/taibuivan/nyan/internal/social/comment"
	"github.com/taibuivan/nyan/internal/social/rating"
)

// MangaDetail is a manga with its thread, its ratings and live aggregates.
type MangaDetail struct {
	Manga         *catalog.Manga   `json:"manga"`
	Comments      []*comment.View  `json:"comments"`
	Ratings       []*rating.Rating `json:"ratings"`
	AverageRating float64          `json:"average_rating"`
	RatingCount   int              `json:"rating_count"`
	FavoriteCount int              `json:"favorite_count"`

	// Viewer-specific; omitted for anonymous requests.
	IsFavorited *bool `json:"is_favorited,omitempty"`
}

// UserProfile is a user's public page.
type UserProfile struct {
	User      *identity.PublicProfile `json:"user"`
	Favorites []*FavoriteEntry        `json:"favorites"`
	Ratings   []*RatingEntry          `json:"ratings"`
	Comments  []*comment.View         `json:"comments"`
}

// FavoriteEntry is a favorited manga and when it was favorited.
type FavoriteEntry struct {
	Manga       *catalog.Manga `json:"manga"`
	FavoritedAt time.Time      `json:"favorited_at"`
}

// RatingEntry is a rating together with the manga it scores.
type RatingEntry struct {
	*rating.Rating
	Manga *catalog.Manga `json:"manga"`
}
