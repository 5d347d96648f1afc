// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/nyan/internal/catalog"
	"github.com/taibuivan/nyan/internal/identity"
	"github.com/taibuivan/nyan/internal/platform/ref"
	"github.com/taibuivan/nyan/internal/social/comment"
	"github.com/taibuivan/nyan/internal/social/favorite"
	"github.com/taibuivan/nyan/internal/social/rating"
	"github.com/taibuivan/nyan/pkg/slice"
)

// # Sources

type Catalog interface {
	Get(ctx context.Context, idOrSlug string) (*catalog.Manga, error)
	MangasByID(ctx context.Context, ids []ref.MangaID) (map[ref.MangaID]*catalog.Manga, error)
}

type Users interface {
	FindByUsername(ctx context.Context, login string) (*identity.User, error)
}

type Favorites interface {
	IsFavorited(ctx context.Context, mangaID ref.MangaID, userID ref.UserID) (bool, error)
	ListByUser(ctx context.Context, userID ref.UserID) ([]*favorite.Favorite, error)
	CountByManga(ctx context.Context, mangaID ref.MangaID) (int, error)
}

type Ratings interface {
	Summary(ctx context.Context, mangaID ref.MangaID) (*rating.Summary, error)
	ListByManga(ctx context.Context, mangaID ref.MangaID) ([]*rating.Rating, error)
	ListByUser(ctx context.Context, userID ref.UserID) ([]*rating.Rating, error)
}

type Comments interface {
	ListByManga(ctx context.Context, mangaID ref.MangaID, viewer ref.UserID) ([]*comment.View, error)
	ListByUser(ctx context.Context, userID ref.UserID, viewer ref.UserID) ([]*comment.View, error)
}

// Sources groups the services a page is assembled from.
type Sources struct {
	Catalog   Catalog
	Users     Users
	Favorites Favorites
	Ratings   Ratings
	Comments  Comments
}

type Service struct {
	sources Sources
	logger  *slog.Logger
}

func NewService(sources Sources, logger *slog.Logger) *Service {
	return &Service{sources: sources, logger: logger}
}

// # Manga Detail

// MangaDetail builds the detail page of the manga identified by id or slug.
// viewer may be empty.
func (service *Service) MangaDetail(ctx context.Context, idOrSlug string, viewer ref.UserID) (*MangaDetail, error) {
	manga, err := service.sources.Catalog.Get(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	detail := &MangaDetail{Manga: manga}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		comments, err := service.sources.Comments.ListByManga(groupCtx, manga.ID, viewer)
		detail.Comments = comments
		return err
	})
	group.Go(func() error {
		ratings, err := service.sources.Ratings.ListByManga(groupCtx, manga.ID)
		detail.Ratings = ratings
		return err
	})
	group.Go(func() error {
		summary, err := service.sources.Ratings.Summary(groupCtx, manga.ID)
		if err != nil {
			return err
		}
		detail.AverageRating, detail.RatingCount = summary.Average, summary.Count
		return nil
	})
	group.Go(func() error {
		count, err := service.sources.Favorites.CountByManga(groupCtx, manga.ID)
		detail.FavoriteCount = count
		return err
	})
	if viewer != "" {
		group.Go(func() error {
			favorited, err := service.sources.Favorites.IsFavorited(groupCtx, manga.ID, viewer)
			detail.IsFavorited = &favorited
			return err
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("activity_service_manga_detail_failed: %w", err)
	}

	if detail.Comments == nil {
		detail.Comments = []*comment.View{}
	}
	if detail.Ratings == nil {
		detail.Ratings = []*rating.Rating{}
	}
	return detail, nil
}

// # User Profile

// UserProfile builds the public page of the user whose username is login.
// Entries whose manga has since been removed from the catalog are dropped.
func (service *Service) UserProfile(ctx context.Context, login string, viewer ref.UserID) (*UserProfile, error) {
	user, err := service.sources.Users.FindByUsername(ctx, login)
	if err != nil {
		return nil, err
	}

	var (
		favorites []*favorite.Favorite
		ratings   []*rating.Rating
		profile   = &UserProfile{User: user.Profile()}
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		favorites, err = service.sources.Favorites.ListByUser(groupCtx, user.ID)
		return err
	})
	group.Go(func() (err error) {
		ratings, err = service.sources.Ratings.ListByUser(groupCtx, user.ID)
		return err
	})
	group.Go(func() (err error) {
		profile.Comments, err = service.sources.Comments.ListByUser(groupCtx, user.ID, viewer)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("activity_service_user_profile_failed: %w", err)
	}
	if profile.Comments == nil {
		profile.Comments = []*comment.View{}
	}

	ids := append(
		slice.Map(favorites, func(f *favorite.Favorite) ref.MangaID { return f.MangaID }),
		slice.Map(ratings, func(r *rating.Rating) ref.MangaID { return r.MangaID })...,
	)
	mangas := map[ref.MangaID]*catalog.Manga{}
	if ids = slice.Unique(ids); len(ids) > 0 {
		mangas, err = service.sources.Catalog.MangasByID(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("activity_service_user_profile_failed: %w", err)
		}
	}

	profile.Favorites = make([]*FavoriteEntry, 0, len(favorites))
	for _, f := range favorites {
		if manga, ok := mangas[f.MangaID]; ok {
			profile.Favorites = append(profile.Favorites, &FavoriteEntry{Manga: manga, FavoritedAt: f.CreatedAt})
		}
	}

	profile.Ratings = make([]*RatingEntry, 0, len(ratings))
	for _, r := range ratings {
		if manga, ok := mangas[r.MangaID]; ok {
			profile.Ratings = append(profile.Ratings, &RatingEntry{Rating: r, Manga: manga})
		}
	}

	service.logger.DebugContext(ctx, "user_profile_built",
		slog.String("user_id", user.ID.String()),
		slog.Int("favorites", len(profile.Favorites)),
		slog.Int("ratings", len(profile.Ratings)),
		slog.Int("comments", len(profile.Comments)),
	)
	return profile, nil
}
