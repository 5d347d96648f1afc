// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package rating stores one score per (manga, user) and aggregates them.
package rating

import (
	"time"

	"github.com/taibuivan/nyan/internal/platform/ref"
)

// Score bounds, inclusive.
const (
	MinScore = 1
	MaxScore = 10
)

// Rating is a user's score for a manga. Re-rating overwrites it.
//
// ExternalScore is an optional score imported from another site; it is shown
// alongside the user's own score and never enters the average.
type Rating struct {
	MangaID       ref.MangaID `json:"manga_id"`
	UserID        ref.UserID  `json:"user_id"`
	Score         int         `json:"score"`
	ExternalScore *int        `json:"external_score"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Summary is the live aggregate of a manga's scores.
type Summary struct {
	MangaID ref.MangaID `json:"manga_id"`
	Average float64     `json:"average_rating"`
	Count   int         `json:"rating_count"`
}

// Totals is the raw aggregate read from storage.
type Totals struct {
	Sum   int
	Count int
}

// Mean returns Sum/Count rounded half away from zero to one decimal place,
// or 0 when there are no ratings.
//
// The rounding is done on integers so 7.25 always becomes 7.3 and 7.15
// always becomes 7.2, regardless of float representation.
func (t Totals) Mean() float64 {
	if t.Count <= 0 {
		return 0
	}
	// round(sum*10/count) for non-negative sums.
	tenths := (20*t.Sum + t.Count) / (2 * t.Count)
	return float64(tenths) / 10
}

// Field names for validation
const (
	FieldScore         = "score"
	FieldExternalScore = "external_score"
)
