// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/nyan/internal/catalog"
	"github.com/taibuivan/nyan/internal/identity"
	"github.com/taibuivan/nyan/internal/platform/dberr"
	"github.com/taibuivan/nyan/internal/platform/ref"
	"github.com/taibuivan/nyan/internal/social/comment"
	"github.com/taibuivan/nyan/internal/social/favorite"
	"github.com/taibuivan/nyan/internal/social/rating"
)

// In-memory stores standing in for Postgres. One mutex guards everything,
// which gives every method the atomicity of a single statement.

type memory struct {
	mu        sync.Mutex
	clock     time.Time
	users     map[ref.UserID]*identity.User
	mangas    map[ref.MangaID]*catalog.Manga
	favorites map[string]*favorite.Favorite
	ratings   map[string]*rating.Rating
	comments  map[ref.CommentID]*comment.Comment
}

func newMemory() *memory {
	return &memory{
		clock:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		users:     make(map[ref.UserID]*identity.User),
		mangas:    make(map[ref.MangaID]*catalog.Manga),
		favorites: make(map[string]*favorite.Favorite),
		ratings:   make(map[string]*rating.Rating),
		comments:  make(map[ref.CommentID]*comment.Comment),
	}
}

func (m *memory) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func pairKey(mangaID ref.MangaID, userID ref.UserID) string {
	return string(mangaID) + "/" + string(userID)
}

// # Users

type userStore struct{ *memory }

func (s userStore) Create(_ context.Context, user *identity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.CreatedAt, user.UpdatedAt = s.tick(), s.clock
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s userStore) find(match func(*identity.User) bool) (*identity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if match(user) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (s userStore) FindByID(_ context.Context, id ref.UserID) (*identity.User, error) {
	return s.find(func(u *identity.User) bool { return u.ID == id })
}

func (s userStore) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	return s.find(func(u *identity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s userStore) FindByUsername(_ context.Context, username string) (*identity.User, error) {
	return s.find(func(u *identity.User) bool { return strings.EqualFold(u.Username, username) })
}

func (s userStore) Exists(_ context.Context, id ref.UserID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[id]
	return ok, nil
}

// # Catalog

type mangaStore struct{ *memory }

func (s mangaStore) List(_ context.Context, _ catalog.Filter, limit, offset int) ([]*catalog.Manga, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]*catalog.Manga, 0, len(s.mangas))
	for _, manga := range s.mangas {
		all = append(all, manga)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := len(all)
	if offset > total {
		offset = total
	}
	end := min(offset+limit, total)
	return all[offset:end], total, nil
}

func (s mangaStore) FindByID(_ context.Context, id ref.MangaID) (*catalog.Manga, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if manga, ok := s.mangas[id]; ok {
		return manga, nil
	}
	return nil, dberr.ErrNotFound
}

func (s mangaStore) FindBySlug(_ context.Context, slug string) (*catalog.Manga, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, manga := range s.mangas {
		if manga.Slug == slug {
			return manga, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (s mangaStore) FindByIDs(_ context.Context, ids []ref.MangaID) ([]*catalog.Manga, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*catalog.Manga
	for _, id := range ids {
		if manga, ok := s.mangas[id]; ok {
			out = append(out, manga)
		}
	}
	return out, nil
}

func (s mangaStore) Create(_ context.Context, manga *catalog.Manga) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	manga.CreatedAt, manga.UpdatedAt = s.tick(), s.clock
	s.mangas[manga.ID] = manga
	return nil
}

func (s mangaStore) Exists(_ context.Context, id ref.MangaID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.mangas[id]
	return ok, nil
}

func (s mangaStore) SlugTaken(ctx context.Context, slug string) (bool, error) {
	_, err := s.FindBySlug(ctx, slug)
	return err == nil, nil
}

// # Favorites

type favoriteStore struct{ *memory }

func (s favoriteStore) Exists(_ context.Context, mangaID ref.MangaID, userID ref.UserID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.favorites[pairKey(mangaID, userID)]
	return ok, nil
}

func (s favoriteStore) Create(_ context.Context, f *favorite.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(f.MangaID, f.UserID)
	if _, ok := s.favorites[key]; ok {
		return dberr.ErrUniqueViolation
	}
	f.CreatedAt = s.tick()
	s.favorites[key] = f
	return nil
}

func (s favoriteStore) Delete(_ context.Context, mangaID ref.MangaID, userID ref.UserID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(mangaID, userID)
	_, ok := s.favorites[key]
	delete(s.favorites, key)
	return ok, nil
}

func (s favoriteStore) ListByUser(_ context.Context, userID ref.UserID) ([]*favorite.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*favorite.Favorite{}
	for _, f := range s.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s favoriteStore) CountByManga(_ context.Context, mangaID ref.MangaID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, f := range s.favorites {
		if f.MangaID == mangaID {
			count++
		}
	}
	return count, nil
}

// # Ratings

type ratingStore struct{ *memory }

func (s ratingStore) Upsert(_ context.Context, r *rating.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(r.MangaID, r.UserID)
	now := s.tick()
	if existing, ok := s.ratings[key]; ok {
		r.CreatedAt = existing.CreatedAt
		if r.ExternalScore == nil {
			r.ExternalScore = existing.ExternalScore
		}
	} else {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	copied := *r
	s.ratings[key] = &copied
	return nil
}

func (s ratingStore) Find(_ context.Context, mangaID ref.MangaID, userID ref.UserID) (*rating.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.ratings[pairKey(mangaID, userID)]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, dberr.ErrNotFound
}

func (s ratingStore) Totals(_ context.Context, mangaID ref.MangaID) (rating.Totals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var totals rating.Totals
	for _, r := range s.ratings {
		if r.MangaID == mangaID {
			totals.Sum += r.Score
			totals.Count++
		}
	}
	return totals, nil
}

func (s ratingStore) list(keep func(*rating.Rating) bool) []*rating.Rating {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*rating.Rating{}
	for _, r := range s.ratings {
		if keep(r) {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out
}

func (s ratingStore) ListByManga(_ context.Context, mangaID ref.MangaID) ([]*rating.Rating, error) {
	return s.list(func(r *rating.Rating) bool { return r.MangaID == mangaID }), nil
}

func (s ratingStore) ListByUser(_ context.Context, userID ref.UserID) ([]*rating.Rating, error) {
	return s.list(func(r *rating.Rating) bool { return r.UserID == userID }), nil
}

// # Comments

type commentStore struct{ *memory }

func cloneComment(c *comment.Comment) *comment.Comment {
	out := *c
	out.Ballot = comment.Ballot{
		Upvoters:   comment.NewVoterSet(c.Ballot.Upvoters.Members()...),
		Downvoters: comment.NewVoterSet(c.Ballot.Downvoters.Members()...),
	}
	return &out
}

func (s commentStore) Create(_ context.Context, c *comment.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.CreatedAt = s.tick()
	c.UpdatedAt = c.CreatedAt
	s.comments[c.ID] = cloneComment(c)
	return nil
}

func (s commentStore) FindByID(_ context.Context, id ref.CommentID) (*comment.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.comments[id]; ok {
		return cloneComment(c), nil
	}
	return nil, dberr.ErrNotFound
}

func (s commentStore) list(keep func(*comment.Comment) bool) []*comment.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*comment.Comment{}
	for _, c := range s.comments {
		if keep(c) {
			out = append(out, cloneComment(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s commentStore) ListByManga(_ context.Context, mangaID ref.MangaID) ([]*comment.Comment, error) {
	return s.list(func(c *comment.Comment) bool { return c.MangaID == mangaID }), nil
}

func (s commentStore) ListByUser(_ context.Context, userID ref.UserID) ([]*comment.Comment, error) {
	return s.list(func(c *comment.Comment) bool { return c.AuthorID == userID }), nil
}

func (s commentStore) UpdateBallot(_ context.Context, id ref.CommentID, mutate func(*comment.Ballot)) (*comment.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	mutate(&c.Ballot)
	c.UpdatedAt = s.tick()
	return cloneComment(c), nil
}
