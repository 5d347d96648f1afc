// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package favorite toggles the (manga, user) favorite relation.
package favorite

import (
	"time"

	"github.com/taibuivan/nyan/internal/platform/ref"
)

// Favorite records that a user favorited a manga. At most one exists per pair.
type Favorite struct {
	MangaID   ref.MangaID `json:"manga_id"`
	UserID    ref.UserID  `json:"user_id"`
	CreatedAt time.Time   `json:"created_at"`
}

// ToggleResult reports the relation's state after a toggle.
type ToggleResult struct {
	Favorited bool `json:"favorited"`
}
