// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"log/slog"

	"github.com/taibuivan/nyan/internal/catalog"
	"github.com/taibuivan/nyan/internal/identity"
	"github.com/taibuivan/nyan/internal/platform/metrics"
	"github.com/taibuivan/nyan/internal/social/activity"
	"github.com/taibuivan/nyan/internal/social/comment"
	"github.com/taibuivan/nyan/internal/social/favorite"
	"github.com/taibuivan/nyan/internal/social/rating"
)

// Stores groups the persistence implementations the domain services run on.
type Stores struct {
	Users        identity.Repository
	ProfileCache identity.ProfileCache // optional
	Mangas       catalog.Repository
	Favorites    favorite.Repository
	Ratings      rating.Repository
	Comments     comment.Repository
}

// DomainDependencies is everything [NewDomainHandlers] needs besides storage.
type DomainDependencies struct {
	Stores   Stores
	Tokens   identity.TokenProvider
	Identity identity.Options
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// NewDomainHandlers builds every domain service and its handler. The
// health handlers are left for the caller to fill in.
func NewDomainHandlers(deps DomainDependencies) Handlers {
	stores := deps.Stores

	identityService := identity.NewService(stores.Users, stores.ProfileCache, deps.Tokens, deps.Identity, deps.Logger)
	catalogService := catalog.NewService(stores.Mangas, deps.Logger)

	favoriteService := favorite.NewService(stores.Favorites, catalogService, identityService, deps.Metrics, deps.Logger)
	ratingService := rating.NewService(stores.Ratings, catalogService, identityService, deps.Metrics, deps.Logger)
	commentService := comment.NewService(stores.Comments, catalogService, identityService, deps.Metrics, deps.Logger)

	activityService := activity.NewService(activity.Sources{
		Catalog:   catalogService,
		Users:     identityService,
		Favorites: favoriteService,
		Ratings:   ratingService,
		Comments:  commentService,
	}, deps.Logger)

	return Handlers{
		Identity: identity.NewHandler(identityService),
		Catalog:  catalog.NewHandler(catalogService),
		Favorite: favorite.NewHandler(favoriteService),
		Rating:   rating.NewHandler(ratingService),
		Comment:  comment.NewHandler(commentService),
		Activity: activity.NewHandler(activityService),
	}
}
