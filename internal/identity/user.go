// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package identity owns Nyan accounts: registration, login, and the public
profile every other domain shows next to a user's activity.

Other packages never read users.account directly. They depend on the small
directory interfaces they declare ([Service.UserExists], [Service.PublicProfile]).
*/
package identity

import (
	"time"

	"github.com/taibuivan/nyan/internal/platform/ref"
	"github.com/taibuivan/nyan/internal/platform/sec"
)

// User is a registered account.
type User struct {
	ID           ref.UserID   `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         sec.UserRole `json:"role"`
	DisplayName  string       `json:"display_name"`
	AvatarURL    *string      `json:"avatar_url"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// PublicProfile is the subset of a [User] safe to show to anyone.
type PublicProfile struct {
	ID          ref.UserID `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	AvatarURL   string     `json:"avatar_url,omitempty"`
}

// Profile projects the account onto its public fields.
func (u *User) Profile() *PublicProfile {
	profile := &PublicProfile{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
	}
	if u.AvatarURL != nil {
		profile.AvatarURL = *u.AvatarURL
	}
	return profile
}

// Field names for validation
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldLogin       = "login"
)
