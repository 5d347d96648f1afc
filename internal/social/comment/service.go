// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/nyan/internal/identity"
	"github.com/taibuivan/nyan/internal/platform/apperr"
	"github.com/taibuivan/nyan/internal/platform/metrics"
	"github.com/taibuivan/nyan/internal/platform/ref"
	"github.com/taibuivan/nyan/internal/platform/validate"
	"github.com/taibuivan/nyan/internal/social"
	"github.com/taibuivan/nyan/pkg/uuid"
)

// ProfileDirectory resolves comment authors. Implemented by identity.
type ProfileDirectory interface {
	social.UserDirectory
	PublicProfile(ctx context.Context, id ref.UserID) (*identity.PublicProfile, error)
}

type Service struct {
	repo    Repository
	mangas  social.MangaDirectory
	users   ProfileDirectory
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewService(repo Repository, mangas social.MangaDirectory, users ProfileDirectory, recorder *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		mangas:  mangas,
		users:   users,
		metrics: recorder,
		logger:  logger,
	}
}

// PostInput is the body of a new comment.
type PostInput struct {
	Content string `json:"content"`
}

// VoteInput carries the vote direction, "up" or "down".
type VoteInput struct {
	Direction string `json:"direction"`
}

// # Threads

// Post adds a comment to manga's thread. Content is stored trimmed.
func (service *Service) Post(ctx context.Context, mangaID ref.MangaID, userID ref.UserID, input PostInput) (*View, error) {
	content := strings.TrimSpace(input.Content)

	validator := &validate.Validator{}
	validator.Required(FieldContent, content)
	validator.MaxLen(FieldContent, content, MaxContentLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := social.RequireParticipants(ctx, service.mangas, service.users, mangaID, userID); err != nil {
		return nil, err
	}

	c := &Comment{
		ID:       ref.CommentID(uuid.New()),
		MangaID:  mangaID,
		AuthorID: userID,
		Content:  content,
		Ballot:   NewBallot(),
	}
	if err := service.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("comment_service_create_failed: %w", err)
	}

	service.metrics.CommentPosted()
	service.logger.InfoContext(ctx, "comment_posted",
		slog.String("comment_id", c.ID.String()),
		slog.String("manga_id", mangaID.String()),
		slog.String("user_id", userID.String()),
	)

	views, err := service.present(ctx, []*Comment{c}, userID)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// ListByManga returns the manga's thread, newest first. viewer may be empty.
func (service *Service) ListByManga(ctx context.Context, mangaID ref.MangaID, viewer ref.UserID) ([]*View, error) {
	exists, err := service.mangas.MangaExists(ctx, mangaID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Manga")
	}

	comments, err := service.repo.ListByManga(ctx, mangaID)
	if err != nil {
		return nil, fmt.Errorf("comment_service_list_failed: %w", err)
	}
	return service.present(ctx, comments, viewer)
}

// ListByUser returns every comment the user has posted, newest first.
func (service *Service) ListByUser(ctx context.Context, userID ref.UserID, viewer ref.UserID) ([]*View, error) {
	comments, err := service.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("comment_service_list_by_user_failed: %w", err)
	}
	return service.present(ctx, comments, viewer)
}

// Get returns a single comment.
func (service *Service) Get(ctx context.Context, id ref.CommentID, viewer ref.UserID) (*View, error) {
	c, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := service.present(ctx, []*Comment{c}, viewer)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// # Voting

// Vote applies the user's vote to the comment and returns the comment as the
// voter now sees it.
//
// Voting "up" twice retracts the upvote; voting the other way switches
// sides. The whole change happens under the comment's row lock.
func (service *Service) Vote(ctx context.Context, commentID ref.CommentID, userID ref.UserID, input VoteInput) (*View, error) {
	direction, err := ParseDirection(input.Direction)
	if err != nil {
		return nil, err
	}

	exists, err := service.users.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("User")
	}

	var state VoteState
	c, err := service.repo.UpdateBallot(ctx, commentID, func(ballot *Ballot) {
		state = ballot.Apply(userID, direction)
	})
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("comment_service_vote_failed: %w", err)
	}

	service.metrics.VoteApplied(string(direction), string(state))
	service.logger.InfoContext(ctx, "comment_voted",
		slog.String("comment_id", commentID.String()),
		slog.String("user_id", userID.String()),
		slog.String("direction", string(direction)),
		slog.String("state", string(state)),
	)

	views, err := service.present(ctx, []*Comment{c}, userID)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// # Presentation

// present attaches author profiles, looking each distinct author up once.
// Authors whose account no longer exists are left without a profile.
func (service *Service) present(ctx context.Context, comments []*Comment, viewer ref.UserID) ([]*View, error) {
	authors := make(map[ref.UserID]*identity.PublicProfile)
	for _, c := range comments {
		if _, seen := authors[c.AuthorID]; seen {
			continue
		}

		profile, err := service.users.PublicProfile(ctx, c.AuthorID)
		if err != nil && !apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, fmt.Errorf("comment_service_author_lookup_failed: %w", err)
		}
		authors[c.AuthorID] = profile
	}

	views := make([]*View, len(comments))
	for i, c := range comments {
		views[i] = NewView(c, authors[c.AuthorID], viewer)
	}
	return views, nil
}
