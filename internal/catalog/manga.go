// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package catalog manages the manga entries users favorite, rate and discuss.
package catalog

import (
	"time"

	"github.com/taibuivan/nyan/internal/platform/ref"
)

// Status is the publication state of a manga.
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusHiatus    Status = "hiatus"
)

// Manga is a catalog entry.
type Manga struct {
	ID          ref.MangaID `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	ImageURL    *string     `json:"image_url"`
	Category    string      `json:"category"`
	Author      string      `json:"author"`
	Status      Status      `json:"status"`
	Volumes     int         `json:"volumes"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Filter holds the parameters for a paginated catalog search.
type Filter struct {
	Query    string // Case-insensitive substring of the name
	Category string
}

// Field names for validation
const (
	FieldName        = "name"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldImageURL    = "image_url"
	FieldAuthor      = "author"
	FieldStatus      = "status"
	FieldVolumes     = "volumes"
)
