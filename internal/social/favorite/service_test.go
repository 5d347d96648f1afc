// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nyan/internal/platform/apperr"
	"github.com/taibuivan/nyan/internal/platform/dberr"
	"github.com/taibuivan/nyan/internal/platform/metrics"
	"github.com/taibuivan/nyan/internal/platform/ref"
	"github.com/taibuivan/nyan/internal/social/favorite"
)

const (
	mangaA = ref.MangaID("0190a6e2-0000-7000-8000-00000000000a")
	mangaB = ref.MangaID("0190a6e2-0000-7000-8000-00000000000b")
	userA  = ref.UserID("0190a6e2-0000-7000-8000-0000000000a1")
	userB  = ref.UserID("0190a6e2-0000-7000-8000-0000000000b1")
	ghost  = "0190a6e2-0000-7000-8000-ffffffffffff"
)

// # Test Doubles

type pair struct {
	manga ref.MangaID
	user  ref.UserID
}

// memoryRepository is an in-memory [favorite.Repository] enforcing pair uniqueness.
type memoryRepository struct {
	mu        sync.Mutex
	favorites map[pair]*favorite.Favorite
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{favorites: make(map[pair]*favorite.Favorite)}
}

func (r *memoryRepository) Exists(_ context.Context, m ref.MangaID, u ref.UserID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.favorites[pair{m, u}]
	return ok, nil
}

func (r *memoryRepository) Create(_ context.Context, f *favorite.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pair{f.MangaID, f.UserID}
	if _, ok := r.favorites[key]; ok {
		return dberr.ErrUniqueViolation
	}
	f.CreatedAt = time.Now()
	r.favorites[key] = f
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, m ref.MangaID, u ref.UserID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pair{m, u}
	_, ok := r.favorites[key]
	delete(r.favorites, key)
	return ok, nil
}

func (r *memoryRepository) ListByUser(_ context.Context, u ref.UserID) ([]*favorite.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := []*favorite.Favorite{}
	for key, f := range r.favorites {
		if key.user == u {
			list = append(list, f)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *memoryRepository) CountByManga(_ context.Context, m ref.MangaID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for key := range r.favorites {
		if key.manga == m {
			count++
		}
	}
	return count, nil
}

func (r *memoryRepository) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.favorites)
}

// directory knows a fixed set of users and mangas.
type directory struct {
	mangas map[ref.MangaID]bool
	users  map[ref.UserID]bool
}

func (d directory) MangaExists(_ context.Context, id ref.MangaID) (bool, error) { return d.mangas[id], nil }
func (d directory) UserExists(_ context.Context, id ref.UserID) (bool, error)   { return d.users[id], nil }

var knownDirectory = directory{
	mangas: map[ref.MangaID]bool{mangaA: true, mangaB: true},
	users:  map[ref.UserID]bool{userA: true, userB: true},
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(repo favorite.Repository) *favorite.Service {
	return favorite.NewService(repo, knownDirectory, knownDirectory, metrics.New(), discardLogger())
}

// # Toggle

/*
TestToggle_Alternates verifies toggle on then off, with exactly one relation
created then destroyed.
*/
func TestToggle_Alternates(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)
	ctx := context.Background()

	result, err := service.Toggle(ctx, mangaA, userA)
	require.NoError(t, err)
	assert.True(t, result.Favorited)
	assert.Equal(t, 1, repo.size())

	result, err = service.Toggle(ctx, mangaA, userA)
	require.NoError(t, err)
	assert.False(t, result.Favorited)
	assert.Equal(t, 0, repo.size())
}

/*
TestToggle_EvenCountRestoresState checks an even number of toggles leaves the
relation as it started, and pairs never interfere with each other.
*/
func TestToggle_EvenCountRestoresState(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)
	ctx := context.Background()

	_, err := service.Toggle(ctx, mangaB, userB)
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		_, err := service.Toggle(ctx, mangaA, userA)
		require.NoError(t, err)
	}

	favorited, err := service.IsFavorited(ctx, mangaA, userA)
	require.NoError(t, err)
	assert.False(t, favorited)

	favorited, err = service.IsFavorited(ctx, mangaB, userB)
	require.NoError(t, err)
	assert.True(t, favorited)
}

func TestToggle_NotFound(t *testing.T) {
	service := newService(newMemoryRepository())
	ctx := context.Background()

	_, err := service.Toggle(ctx, ref.MangaID(ghost), userA)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.Equal(t, "Manga not found", err.Error())

	_, err = service.Toggle(ctx, mangaA, ref.UserID(ghost))
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.Equal(t, "User not found", err.Error())
}

// mockRepository scripts individual repository answers.
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Exists(ctx context.Context, mangaID ref.MangaID, userID ref.UserID) (bool, error) {
	args := m.Called(ctx, mangaID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, f *favorite.Favorite) error {
	return m.Called(ctx, f).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, mangaID ref.MangaID, userID ref.UserID) (bool, error) {
	args := m.Called(ctx, mangaID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) ListByUser(ctx context.Context, userID ref.UserID) ([]*favorite.Favorite, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*favorite.Favorite), args.Error(1)
}

func (m *mockRepository) CountByManga(ctx context.Context, mangaID ref.MangaID) (int, error) {
	args := m.Called(ctx, mangaID)
	return args.Int(0), args.Error(1)
}

/*
TestToggle_RaceRecovered simulates losing an insert race: the pair looked
absent but a concurrent toggle inserted it first.
*/
func TestToggle_RaceRecovered(t *testing.T) {
	repo := new(mockRepository)
	ctx := context.Background()
	repo.On("Exists", ctx, mangaA, userA).Return(false, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*favorite.Favorite")).Return(dberr.ErrUniqueViolation)

	result, err := newService(repo).Toggle(ctx, mangaA, userA)
	require.NoError(t, err)
	assert.True(t, result.Favorited)
	repo.AssertExpectations(t)
}

func TestToggle_DeleteAlreadyGone(t *testing.T) {
	repo := new(mockRepository)
	ctx := context.Background()
	repo.On("Exists", ctx, mangaA, userA).Return(true, nil)
	repo.On("Delete", ctx, mangaA, userA).Return(false, nil)

	result, err := newService(repo).Toggle(ctx, mangaA, userA)
	require.NoError(t, err)
	assert.False(t, result.Favorited)
}

func TestToggle_StorageUnavailable(t *testing.T) {
	repo := new(mockRepository)
	ctx := context.Background()
	repo.On("Exists", ctx, mangaA, userA).Return(false, nil)
	repo.On("Create", ctx, mock.Anything).Return(dberr.ErrUnavailable)

	_, err := newService(repo).Toggle(ctx, mangaA, userA)
	assert.True(t, apperr.HasCode(err, apperr.CodeServiceUnavailable))
}

/*
TestToggle_ConcurrentDistinctPairs runs many users toggling the same manga in
parallel; each ends up favorited exactly once.
*/
func TestToggle_ConcurrentDistinctPairs(t *testing.T) {
	repo := newMemoryRepository()
	users := map[ref.UserID]bool{}
	ids := make([]ref.UserID, 0, 20)
	for i := 0; i < 20; i++ {
		id := ref.UserID(string(userA) + "-" + string(rune('a'+i)))
		users[id] = true
		ids = append(ids, id)
	}
	dir := directory{mangas: map[ref.MangaID]bool{mangaA: true}, users: users}
	service := favorite.NewService(repo, dir, dir, nil, discardLogger())

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id ref.UserID) {
			defer wg.Done()
			result, err := service.Toggle(context.Background(), mangaA, id)
			if assert.NoError(t, err) {
				assert.True(t, result.Favorited)
			}
		}(id)
	}
	wg.Wait()

	count, err := service.CountByManga(context.Background(), mangaA)
	require.NoError(t, err)
	assert.Equal(t, 20, count)
}

func TestListByUser(t *testing.T) {
	service := newService(newMemoryRepository())
	ctx := context.Background()

	_, err := service.Toggle(ctx, mangaA, userA)
	require.NoError(t, err)
	_, err = service.Toggle(ctx, mangaB, userA)
	require.NoError(t, err)
	_, err = service.Toggle(ctx, mangaB, userB)
	require.NoError(t, err)

	favorites, err := service.ListByUser(ctx, userA)
	require.NoError(t, err)
	assert.Len(t, favorites, 2)
}
