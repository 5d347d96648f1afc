// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/nyan/internal/platform/dberr"
	"github.com/taibuivan/nyan/internal/platform/metrics"
	"github.com/taibuivan/nyan/internal/platform/ref"
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

// Toggle flips the favorite relation between manga and user.
//
// # Flow
//  1. Both participants must exist (NOT_FOUND otherwise).
//  2. Present: delete it and report favorited=false.
//  3. Absent: create it and report favorited=true.
//
// A create that loses a race against a concurrent create of the same pair
// finds the relation already in place and still reports favorited=true. A
// delete that finds nothing left reports favorited=false.
func (service *Service) Toggle(ctx context.Context, mangaID ref.MangaID, userID ref.UserID) (*ToggleResult, error) {
	if err := social.RequireParticipants(ctx, service.mangas, service.users, mangaID, userID); err != nil {
		return nil, err
	}

	exists, err := service.repo.Exists(ctx, mangaID, userID)
	if err != nil {
		return nil, fmt.Errorf("favorite_service_lookup_failed: %w", err)
	}

	result := &ToggleResult{}
	if exists {
		if _, err := service.repo.Delete(ctx, mangaID, userID); err != nil {
			return nil, fmt.Errorf("favorite_service_delete_failed: %w", err)
		}
		result.Favorited = false
	} else {
		err := service.repo.Create(ctx, &Favorite{MangaID: mangaID, UserID: userID})
		switch {
		case err == nil:
		case dberr.IsUniqueViolation(err):
			service.logger.DebugContext(ctx, "favorite_create_race_recovered",
				slog.String("manga_id", mangaID.String()),
				slog.String("user_id", userID.String()),
			)
		default:
			return nil, fmt.Errorf("favorite_service_create_failed: %w", err)
		}
		result.Favorited = true
	}

	service.metrics.FavoriteToggled(result.Favorited)
	service.logger.InfoContext(ctx, "favorite_toggled",
		slog.String("manga_id", mangaID.String()),
		slog.String("user_id", userID.String()),
		slog.Bool("favorited", result.Favorited),
	)
	return result, nil
}

// IsFavorited reports whether user currently favorites manga.
func (service *Service) IsFavorited(ctx context.Context, mangaID ref.MangaID, userID ref.UserID) (bool, error) {
	return service.repo.Exists(ctx, mangaID, userID)
}

// ListByUser returns the user's favorites, most recent first.
func (service *Service) ListByUser(ctx context.Context, userID ref.UserID) ([]*Favorite, error) {
	return service.repo.ListByUser(ctx, userID)
}

// CountByManga returns how many users favorite manga.
func (service *Service) CountByManga(ctx context.Context, mangaID ref.MangaID) (int, error) {
	return service.repo.CountByManga(ctx, mangaID)
}
