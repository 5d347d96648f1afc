// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/taibuivan/nyan/internal/platform/apperr"
	"github.com/taibuivan/nyan/internal/platform/dberr"
	"github.com/taibuivan/nyan/internal/platform/ref"
	"github.com/taibuivan/nyan/internal/platform/sec"
	"github.com/taibuivan/nyan/internal/platform/validate"
	"github.com/taibuivan/nyan/pkg/uuid"
)

// usernamePattern allows letters, digits, underscores and dots.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Options tunes account policy.
type Options struct {
	// AccessTokenTTL is the lifetime of issued JWTs.
	AccessTokenTTL time.Duration

	// IsAdminEmail promotes matching registrations to [sec.RoleAdmin].
	IsAdminEmail func(email string) bool
}

// Service implements account use cases.
type Service struct {
	repo    Repository
	cache   ProfileCache
	tokens  TokenProvider
	options Options
	logger  *slog.Logger
}

// NewService constructs a new identity [Service].
func NewService(repo Repository, cache ProfileCache, tokens TokenProvider, options Options, logger *slog.Logger) *Service {
	if options.IsAdminEmail == nil {
		options.IsAdminEmail = func(string) bool { return false }
	}
	return &Service{
		repo:    repo,
		cache:   cache,
		tokens:  tokens,
		options: options,
		logger:  logger,
	}
}

// # Registration

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// Register validates, hashes, and persists a new account.
//
// # Business Rules
//   - Usernames and emails are unique, case-insensitively.
//   - The role is member unless the email is on the admin list.
//   - The display name defaults to the username.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.DisplayName = strings.TrimSpace(input.DisplayName)

	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		MaxLen(FieldUsername, input.Username, 30).
		Custom(FieldUsername, input.Username != "" && !usernamePattern.MatchString(input.Username), "Only letters, digits, '_' and '.' are allowed").
		Email(FieldEmail, input.Email).
		MinLen(FieldPassword, input.Password, 8).
		Custom(FieldPassword, len(input.Password) > sec.MaxPasswordBytes, "Password is too long").
		MaxLen(FieldDisplayName, input.DisplayName, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 1. Uniqueness ─────────────────────────────────────────────────────
	if err := service.ensureAvailable(ctx, input.Email, input.Username); err != nil {
		return nil, err
	}

	// ── 2. Credentials ────────────────────────────────────────────────────
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("identity_service_hash_failed: %w", err)
	}

	if input.DisplayName == "" {
		input.DisplayName = input.Username
	}

	role := sec.RoleMember
	if service.options.IsAdminEmail(input.Email) {
		role = sec.RoleAdmin
	}

	user := &User{
		ID:           ref.UserID(uuid.New()),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         role,
		DisplayName:  input.DisplayName,
	}

	// ── 3. Persistence ────────────────────────────────────────────────────
	if err := service.repo.Create(ctx, user); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Username or email is already taken")
		}
		return nil, fmt.Errorf("identity_service_register_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "user_registered",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

func (service *Service) ensureAvailable(ctx context.Context, email, username string) error {
	if _, err := service.repo.FindByEmail(ctx, email); err == nil {
		return apperr.Conflict("Email is already registered")
	} else if !apperr.HasCode(err, apperr.CodeNotFound) {
		return err
	}

	if _, err := service.repo.FindByUsername(ctx, username); err == nil {
		return apperr.Conflict("Username is already taken")
	} else if !apperr.HasCode(err, apperr.CodeNotFound) {
		return err
	}

	return nil
}

// # Login

// LoginInput carries credentials; Login may be a username or an email.
type LoginInput struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginSession is the result of a successful login.
type LoginSession struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        *User  `json:"user"`
}

// Login verifies credentials and issues an access token.
//
// Unknown logins and wrong passwords fail with the same message.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	login := strings.TrimSpace(input.Login)

	validator := &validate.Validator{}
	if err := validator.Required(FieldLogin, login).Required(FieldPassword, input.Password).Err(); err != nil {
		return nil, err
	}

	var user *User
	var err error
	if strings.Contains(login, "@") {
		user, err = service.repo.FindByEmail(ctx, login)
	} else {
		user, err = service.repo.FindByUsername(ctx, login)
	}

	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	accessToken, err := service.tokens.GenerateAccessToken(user.ID.String(), user.Username, string(user.Role), service.options.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("identity_service_token_generation_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "user_logged_in", slog.String("user_id", user.ID.String()))

	return &LoginSession{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(service.options.AccessTokenTTL.Seconds()),
		User:        user,
	}, nil
}

// # Lookups

// GetUser returns the full account for id.
func (service *Service) GetUser(ctx context.Context, id ref.UserID) (*User, error) {
	return service.repo.FindByID(ctx, id)
}

// FindByUsername returns the account whose username matches login, case-insensitively.
func (service *Service) FindByUsername(ctx context.Context, login string) (*User, error) {
	return service.repo.FindByUsername(ctx, strings.TrimSpace(login))
}

// UserExists reports whether an account with id exists.
func (service *Service) UserExists(ctx context.Context, id ref.UserID) (bool, error) {
	return service.repo.Exists(ctx, id)
}

// PublicProfile returns the public view of an account, served from the
// profile cache when possible. Cache failures fall through to the database.
func (service *Service) PublicProfile(ctx context.Context, id ref.UserID) (*PublicProfile, error) {
	if service.cache != nil {
		profile, err := service.cache.Get(ctx, id)
		if err != nil {
			service.logger.WarnContext(ctx, "profile_cache_read_failed",
				slog.String("user_id", id.String()),
				slog.Any("error", err),
			)
		} else if profile != nil {
			return profile, nil
		}
	}

	user, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := user.Profile()
	if service.cache != nil {
		if err := service.cache.Set(ctx, profile); err != nil {
			service.logger.WarnContext(ctx, "profile_cache_write_failed",
				slog.String("user_id", id.String()),
				slog.Any("error", err),
			)
		}
	}

	return profile, nil
}
