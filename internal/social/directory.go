// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package social holds what the favorite, rating and comment services share:
the collaborator interfaces they use to confirm that the referenced user and
manga exist before writing a relation between them.
*/
package social

import (
	"context"

	"github.com/taibuivan/nyan/internal/platform/apperr"
	"github.com/taibuivan/nyan/internal/platform/ref"
)

// UserDirectory answers whether an account exists. Implemented by identity.
type UserDirectory interface {
	UserExists(ctx context.Context, id ref.UserID) (bool, error)
}

// MangaDirectory answers whether a catalog entry exists. Implemented by catalog.
type MangaDirectory interface {
	MangaExists(ctx context.Context, id ref.MangaID) (bool, error)
}

// RequireParticipants fails with NOT_FOUND naming whichever of manga or user is missing.
func RequireParticipants(ctx context.Context, mangas MangaDirectory, users UserDirectory, mangaID ref.MangaID, userID ref.UserID) error {
	exists, err := mangas.MangaExists(ctx, mangaID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Manga")
	}

	exists, err = users.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("User")
	}

	return nil
}
