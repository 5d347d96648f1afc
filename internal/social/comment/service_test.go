// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nyan/internal/identity"
	"github.com/taibuivan/nyan/internal/platform/apperr"
	"github.com/taibuivan/nyan/internal/platform/dberr"
	"github.com/taibuivan/nyan/internal/platform/metrics"
	"github.com/taibuivan/nyan/internal/platform/ref"
	"github.com/taibuivan/nyan/internal/social/comment"
)

const (
	mangaA = ref.MangaID("0190a6e2-0000-7000-8000-00000000000a")
	userA  = ref.UserID("0190a6e2-0000-7000-8000-0000000000a1")
	userB  = ref.UserID("0190a6e2-0000-7000-8000-0000000000b1")
	ghost  = "0190a6e2-0000-7000-8000-ffffffffffff"
)

func makeUsers(n int) []ref.UserID {
	users := make([]ref.UserID, n)
	for i := range users {
		users[i] = ref.UserID(fmt.Sprintf("0190a6e2-0000-7000-8000-%012d", i+1))
	}
	return users
}

// # Test Doubles

// memoryRepository is an in-memory [comment.Repository]. UpdateBallot runs
// under the same mutex as reads, like a row lock.
type memoryRepository struct {
	mu       sync.Mutex
	comments map[ref.CommentID]*comment.Comment
	clock    time.Time
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		comments: make(map[ref.CommentID]*comment.Comment),
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func cloneComment(c *comment.Comment) *comment.Comment {
	out := *c
	out.Ballot = comment.Ballot{
		Upvoters:   comment.NewVoterSet(c.Ballot.Upvoters.Members()...),
		Downvoters: comment.NewVoterSet(c.Ballot.Downvoters.Members()...),
	}
	return &out
}

func (r *memoryRepository) Create(_ context.Context, c *comment.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = r.clock.Add(time.Second)
	c.CreatedAt, c.UpdatedAt = r.clock, r.clock
	r.comments[c.ID] = cloneComment(c)
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id ref.CommentID) (*comment.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return cloneComment(c), nil
}

func (r *memoryRepository) ListByManga(_ context.Context, mangaID ref.MangaID) ([]*comment.Comment, error) {
	return r.filter(func(c *comment.Comment) bool { return c.MangaID == mangaID }), nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID ref.UserID) ([]*comment.Comment, error) {
	return r.filter(func(c *comment.Comment) bool { return c.AuthorID == userID }), nil
}

func (r *memoryRepository) filter(keep func(*comment.Comment) bool) []*comment.Comment {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := []*comment.Comment{}
	for _, c := range r.comments {
		if keep(c) {
			list = append(list, cloneComment(c))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list
}

func (r *memoryRepository) UpdateBallot(_ context.Context, id ref.CommentID, mutate func(*comment.Ballot)) (*comment.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	mutate(&c.Ballot)
	return cloneComment(c), nil
}

// failingRepository answers every call with err.
type failingRepository struct {
	memoryRepository
	err error
}

func (r *failingRepository) UpdateBallot(context.Context, ref.CommentID, func(*comment.Ballot)) (*comment.Comment, error) {
	return nil, r.err
}

// directory knows a fixed set of users and mangas and serves their profiles.
type directory struct {
	mu      sync.Mutex
	mangas  map[ref.MangaID]bool
	users   map[ref.UserID]bool
	lookups int
}

func newDirectory(users ...ref.UserID) *directory {
	d := &directory{
		mangas: map[ref.MangaID]bool{mangaA: true},
		users:  make(map[ref.UserID]bool),
	}
	for _, u := range users {
		d.users[u] = true
	}
	return d
}

func (d *directory) MangaExists(_ context.Context, id ref.MangaID) (bool, error) {
	return d.mangas[id], nil
}

func (d *directory) UserExists(_ context.Context, id ref.UserID) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.users[id], nil
}

func (d *directory) PublicProfile(_ context.Context, id ref.UserID) (*identity.PublicProfile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lookups++
	if !d.users[id] {
		return nil, apperr.NotFound("User")
	}
	return &identity.PublicProfile{ID: id, Username: "user-" + id.String()[30:], DisplayName: "User"}, nil
}

func (d *directory) remove(id ref.UserID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.users, id)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(repo comment.Repository, users *directory) *comment.Service {
	return comment.NewService(repo, users, users, metrics.New(), discardLogger())
}

// # Posting

func TestPost_Succeeds(t *testing.T) {
	service := newService(newMemoryRepository(), newDirectory(userA))

	view, err := service.Post(context.Background(), mangaA, userA, comment.PostInput{Content: "  hi  "})
	require.NoError(t, err)

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "hi", view.Content)
	assert.Zero(t, view.Upvotes)
	assert.Zero(t, view.Downvotes)
	assert.Equal(t, comment.StateNeutral, view.MyVote)
	require.NotNil(t, view.Author)
	assert.Equal(t, userA, view.Author.ID)
}

func TestPost_Validation(t *testing.T) {
	service := newService(newMemoryRepository(), newDirectory(userA))

	for _, content := range []string{"", "   ", "\n\t", strings.Repeat("x", comment.MaxContentLength+1)} {
		_, err := service.Post(context.Background(), mangaA, userA, comment.PostInput{Content: content})
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "content of length %d", len(content))
	}

	_, err := service.Post(context.Background(), mangaA, userA,
		comment.PostInput{Content: strings.Repeat("ñ", comment.MaxContentLength)})
	assert.NoError(t, err)
}

func TestPost_NotFound(t *testing.T) {
	service := newService(newMemoryRepository(), newDirectory(userA))
	ctx := context.Background()

	_, err := service.Post(ctx, ref.MangaID(ghost), userA, comment.PostInput{Content: "hi"})
	assert.Equal(t, "Manga not found", err.Error())

	_, err = service.Post(ctx, mangaA, ref.UserID(ghost), comment.PostInput{Content: "hi"})
	assert.Equal(t, "User not found", err.Error())
}

// # Listing

func TestListByManga_NewestFirstWithViewerState(t *testing.T) {
	users := newDirectory(userA, userB)
	service := newService(newMemoryRepository(), users)
	ctx := context.Background()

	first, err := service.Post(ctx, mangaA, userA, comment.PostInput{Content: "first"})
	require.NoError(t, err)
	_, err = service.Post(ctx, mangaA, userA, comment.PostInput{Content: "second"})
	require.NoError(t, err)
	_, err = service.Vote(ctx, first.ID, userB, comment.VoteInput{Direction: "down"})
	require.NoError(t, err)

	lookupsBefore := users.lookups
	views, err := service.ListByManga(ctx, mangaA, userB)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "second", views[0].Content)
	assert.Equal(t, "first", views[1].Content)
	assert.Equal(t, comment.StateNeutral, views[0].MyVote)
	assert.Equal(t, comment.StateDownvoted, views[1].MyVote)
	assert.Equal(t, 1, views[1].Downvotes)
	assert.Equal(t, 1, users.lookups-lookupsBefore, "one profile lookup per distinct author")

	anonymous, err := service.ListByManga(ctx, mangaA, "")
	require.NoError(t, err)
	assert.Empty(t, anonymous[0].MyVote)
}

func TestListByManga_UnknownManga(t *testing.T) {
	service := newService(newMemoryRepository(), newDirectory(userA))

	_, err := service.ListByManga(context.Background(), ref.MangaID(ghost), "")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestListByManga_DeletedAuthorHasNoProfile(t *testing.T) {
	users := newDirectory(userA)
	service := newService(newMemoryRepository(), users)
	ctx := context.Background()

	_, err := service.Post(ctx, mangaA, userA, comment.PostInput{Content: "hi"})
	require.NoError(t, err)
	users.remove(userA)

	views, err := service.ListByManga(ctx, mangaA, "")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].Author)
	assert.Equal(t, userA, views[0].AuthorID)
}

func TestListByUser(t *testing.T) {
	service := newService(newMemoryRepository(), newDirectory(userA, userB))
	ctx := context.Background()

	_, err := service.Post(ctx, mangaA, userA, comment.PostInput{Content: "mine"})
	require.NoError(t, err)
	_, err = service.Post(ctx, mangaA, userB, comment.PostInput{Content: "theirs"})
	require.NoError(t, err)

	views, err := service.ListByUser(ctx, userA, "")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "mine", views[0].Content)
}

// # Voting

func TestVote_ToggleAndSwitch(t *testing.T) {
	service := newService(newMemoryRepository(), newDirectory(userA))
	ctx := context.Background()

	posted, err := service.Post(ctx, mangaA, userA, comment.PostInput{Content: "hi"})
	require.NoError(t, err)

	view, err := service.Vote(ctx, posted.ID, userA, comment.VoteInput{Direction: "up"})
	require.NoError(t, err)
	assert.Equal(t, 1, view.Upvotes)
	assert.Equal(t, comment.StateUpvoted, view.MyVote)

	view, err = service.Vote(ctx, posted.ID, userA, comment.VoteInput{Direction: "up"})
	require.NoError(t, err)
	assert.Zero(t, view.Upvotes)
	assert.Equal(t, comment.StateNeutral, view.MyVote)

	_, err = service.Vote(ctx, posted.ID, userA, comment.VoteInput{Direction: "up"})
	require.NoError(t, err)
	view, err = service.Vote(ctx, posted.ID, userA, comment.VoteInput{Direction: "down"})
	require.NoError(t, err)
	assert.Zero(t, view.Upvotes)
	assert.Equal(t, 1, view.Downvotes)
	assert.Equal(t, []string{string(userA)}, view.Downvoters.Strings())
}

func TestVote_TwoVoterScenario(t *testing.T) {
	service := newService(newMemoryRepository(), newDirectory(userA, userB))
	ctx := context.Background()

	posted, err := service.Post(ctx, mangaA, userA, comment.PostInput{Content: "hi"})
	require.NoError(t, err)

	steps := []struct {
		user      ref.UserID
		direction string
	}{
		{userA, "up"}, {userB, "up"}, {userA, "down"}, {userB, "up"},
	}
	for _, step := range steps {
		_, err := service.Vote(ctx, posted.ID, step.user, comment.VoteInput{Direction: step.direction})
		require.NoError(t, err)
	}

	final, err := service.Get(ctx, posted.ID, "")
	require.NoError(t, err)
	assert.Zero(t, final.Upvotes)
	assert.Equal(t, []string{string(userA)}, final.Downvoters.Strings())
}

func TestVote_Errors(t *testing.T) {
	service := newService(newMemoryRepository(), newDirectory(userA))
	ctx := context.Background()

	posted, err := service.Post(ctx, mangaA, userA, comment.PostInput{Content: "hi"})
	require.NoError(t, err)

	_, err = service.Vote(ctx, posted.ID, userA, comment.VoteInput{Direction: "upvote"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.Vote(ctx, ref.CommentID(ghost), userA, comment.VoteInput{Direction: "up"})
	require.Error(t, err)
	assert.Equal(t, "Comment not found", err.Error())

	_, err = service.Vote(ctx, posted.ID, ref.UserID(ghost), comment.VoteInput{Direction: "up"})
	assert.Equal(t, "User not found", err.Error())
}

func TestVote_StorageUnavailable(t *testing.T) {
	repo := &failingRepository{err: dberr.ErrUnavailable}
	service := newService(repo, newDirectory(userA))

	_, err := service.Vote(context.Background(), ref.CommentID(ghost), userA, comment.VoteInput{Direction: "up"})
	assert.True(t, apperr.HasCode(err, apperr.CodeServiceUnavailable))
	assert.True(t, errors.Is(err, dberr.ErrUnavailable))
}

/*
TestVote_ConcurrentVotersAreNotLost has many users vote on one comment at
once. Every vote must land.
*/
func TestVote_ConcurrentVotersAreNotLost(t *testing.T) {
	users := makeUsers(64)
	service := newService(newMemoryRepository(), newDirectory(append(users, userA)...))
	ctx := context.Background()

	posted, err := service.Post(ctx, mangaA, userA, comment.PostInput{Content: "hi"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i, u := range users {
		direction := "up"
		if i%4 == 0 {
			direction = "down"
		}
		wg.Add(1)
		go func(u ref.UserID, direction string) {
			defer wg.Done()
			_, err := service.Vote(ctx, posted.ID, u, comment.VoteInput{Direction: direction})
			assert.NoError(t, err)
		}(u, direction)
	}
	wg.Wait()

	final, err := service.Get(ctx, posted.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 48, final.Upvotes)
	assert.Equal(t, 16, final.Downvotes)
}
