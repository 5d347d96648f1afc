// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"

	"github.com/taibuivan/nyan/internal/platform/ref"
)

// Repository defines persistence operations for accounts.
//
// Lookups return an [apperr.CodeNotFound] error when no row matches.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id ref.UserID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Exists(ctx context.Context, id ref.UserID) (bool, error)
}

// ProfileCache stores [PublicProfile] snapshots with a TTL.
//
// A miss is reported as (nil, nil). Errors are advisory: callers fall back
// to the [Repository].
type ProfileCache interface {
	Get(ctx context.Context, id ref.UserID) (*PublicProfile, error)
	Set(ctx context.Context, profile *PublicProfile) error
}
