// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/nyan/internal/platform/apperr"
	"github.com/taibuivan/nyan/internal/platform/dberr"
	"github.com/taibuivan/nyan/internal/platform/ref"
	"github.com/taibuivan/nyan/internal/platform/validate"
	"github.com/taibuivan/nyan/pkg/slug"
	"github.com/taibuivan/nyan/pkg/uuid"
)

// maxSlugAttempts bounds the numeric suffixes tried before falling back to a random one.
const maxSlugAttempts = 5

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateInput is the payload for a new catalog entry.
type CreateInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url"`
	Category    string  `json:"category"`
	Author      string  `json:"author"`
	Status      Status  `json:"status"`
	Volumes     int     `json:"volumes"`
}

func (service *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*Manga, int, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	filter.Category = strings.TrimSpace(filter.Category)
	return service.repo.List(ctx, filter, limit, offset)
}

// Get resolves idOrSlug as a UUID first and as a slug otherwise.
func (service *Service) Get(ctx context.Context, idOrSlug string) (*Manga, error) {
	if id, err := ref.ParseMangaID(idOrSlug); err == nil {
		return service.repo.FindByID(ctx, id)
	}
	return service.repo.FindBySlug(ctx, strings.ToLower(idOrSlug))
}

// MangaExists reports whether a catalog entry with id exists.
func (service *Service) MangaExists(ctx context.Context, id ref.MangaID) (bool, error) {
	return service.repo.Exists(ctx, id)
}

// MangasByID loads the given entries keyed by id; unknown ids are absent from the map.
func (service *Service) MangasByID(ctx context.Context, ids []ref.MangaID) (map[ref.MangaID]*Manga, error) {
	mangas, err := service.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[ref.MangaID]*Manga, len(mangas))
	for _, manga := range mangas {
		byID[manga.ID] = manga
	}
	return byID, nil
}

func (service *Service) Create(ctx context.Context, input CreateInput) (*Manga, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	input.Author = strings.TrimSpace(input.Author)
	if input.Status == "" {
		input.Status = StatusOngoing
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 300).
		Required(FieldCategory, input.Category).MaxLen(FieldCategory, input.Category, 100).
		MaxLen(FieldAuthor, input.Author, 200).
		MaxLen(FieldDescription, input.Description, 5000).
		OneOf(FieldStatus, string(input.Status), string(StatusOngoing), string(StatusCompleted), string(StatusHiatus)).
		Custom(FieldVolumes, input.Volumes < 0, "Must not be negative")
	if input.ImageURL != nil {
		validator.URL(FieldImageURL, *input.ImageURL)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	mangaSlug, err := service.availableSlug(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	manga := &Manga{
		ID:          ref.MangaID(uuid.New()),
		Name:        input.Name,
		Slug:        mangaSlug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Author:      input.Author,
		Status:      input.Status,
		Volumes:     input.Volumes,
	}

	if err := service.repo.Create(ctx, manga); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("A manga with this slug was created concurrently")
		}
		return nil, fmt.Errorf("catalog_service_create_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "manga_created",
		slog.String("manga_id", manga.ID.String()),
		slog.String("slug", manga.Slug),
	)
	return manga, nil
}

// availableSlug derives a slug from name and suffixes it until unused.
// Names with no Latin letters or digits get an id-based slug.
func (service *Service) availableSlug(ctx context.Context, name string) (string, error) {
	base := slug.From(name)
	if base == "" {
		base = "manga"
	}

	candidate := base
	for attempt := 2; attempt <= maxSlugAttempts+1; attempt++ {
		taken, err := service.repo.SlugTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}

	suffix := uuid.New()
	return base + "-" + suffix[len(suffix)-12:], nil
}
