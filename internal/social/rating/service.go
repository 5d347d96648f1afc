// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rating

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/nyan/internal/platform/apperr"
	"github.com/taibuivan/nyan/internal/platform/metrics"
	"github.com/taibuivan/nyan/internal/platform/ref"
	"github.com/taibuivan/nyan/internal/platform/validate"
	"github.com/taibuivan/nyan/internal/social"
)

type Service struct {
	repo    Repository
	mangas  social.MangaDirectory
	users   social.UserDirectory
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewService(repo Repository, mangas social.MangaDirectory, users social.UserDirectory, recorder *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		mangas:  mangas,
		users:   users,
		metrics: recorder,
		logger:  logger,
	}
}

// RateInput is a score submission. ExternalScore is optional.
type RateInput struct {
	Score         int  `json:"score"`
	ExternalScore *int `json:"external_score"`
}

// Rate creates or overwrites the user's rating for manga.
//
// The write is one upsert statement, so concurrent submissions for the same
// pair leave exactly one rating holding one of the submitted scores.
func (service *Service) Rate(ctx context.Context, mangaID ref.MangaID, userID ref.UserID, input RateInput) (*Rating, error) {
	validator := &validate.Validator{}
	validator.Range(FieldScore, input.Score, MinScore, MaxScore)
	if input.ExternalScore != nil {
		validator.Range(FieldExternalScore, *input.ExternalScore, MinScore, MaxScore)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := social.RequireParticipants(ctx, service.mangas, service.users, mangaID, userID); err != nil {
		return nil, err
	}

	r := &Rating{
		MangaID:       mangaID,
		UserID:        userID,
		Score:         input.Score,
		ExternalScore: input.ExternalScore,
	}
	if err := service.repo.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("rating_service_upsert_failed: %w", err)
	}

	service.metrics.RatingSubmitted()
	service.logger.InfoContext(ctx, "manga_rated",
		slog.String("manga_id", mangaID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("score", r.Score),
	)
	return r, nil
}

// Summary computes the manga's average score and rating count from the live
// set of ratings. Nothing is cached.
func (service *Service) Summary(ctx context.Context, mangaID ref.MangaID) (*Summary, error) {
	exists, err := service.mangas.MangaExists(ctx, mangaID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Manga")
	}

	totals, err := service.repo.Totals(ctx, mangaID)
	if err != nil {
		return nil, fmt.Errorf("rating_service_totals_failed: %w", err)
	}

	return &Summary{
		MangaID: mangaID,
		Average: totals.Mean(),
		Count:   totals.Count,
	}, nil
}

// GetRating returns the user's rating for manga, or NOT_FOUND.
func (service *Service) GetRating(ctx context.Context, mangaID ref.MangaID, userID ref.UserID) (*Rating, error) {
	return service.repo.Find(ctx, mangaID, userID)
}

// ListByManga returns every rating of manga, most recently updated first.
func (service *Service) ListByManga(ctx context.Context, mangaID ref.MangaID) ([]*Rating, error) {
	return service.repo.ListByManga(ctx, mangaID)
}

// ListByUser returns every rating the user has given, most recently updated first.
func (service *Service) ListByUser(ctx context.Context, userID ref.UserID) ([]*Rating, error) {
	return service.repo.ListByUser(ctx, userID)
}
