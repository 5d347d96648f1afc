// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment implements manga discussion threads and comment voting.

Each comment carries two voter sets. Voting goes through [Ballot.Apply],
which keeps the sets disjoint, and every vote is applied to storage as one
locked read-modify-write so concurrent voters never overwrite each other.
*/
package comment

import (
	"time"

	"github.com/taibuivan/nyan/internal/identity"
	"github.com/taibuivan/nyan/internal/platform/ref"
)

// MaxContentLength is the longest accepted comment body, in characters.
const MaxContentLength = 2000

// Comment is a single post in a manga's thread.
type Comment struct {
	ID        ref.CommentID `json:"id"`
	MangaID   ref.MangaID   `json:"manga_id"`
	AuthorID  ref.UserID    `json:"author_id"`
	Content   string        `json:"content"`
	Ballot    Ballot        `json:"-"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// View is the client representation of a comment: the author's public
// profile, both voter sets with their sizes, and the viewer's own vote.
type View struct {
	ID         ref.CommentID           `json:"id"`
	MangaID    ref.MangaID             `json:"manga_id"`
	AuthorID   ref.UserID              `json:"author_id"`
	Author     *identity.PublicProfile `json:"author,omitempty"`
	Content    string                  `json:"content"`
	Upvotes    int                     `json:"upvotes"`
	Downvotes  int                     `json:"downvotes"`
	Upvoters   VoterSet                `json:"upvoters"`
	Downvoters VoterSet                `json:"downvoters"`
	MyVote     VoteState               `json:"my_vote,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// NewView projects c for viewer. An empty viewer leaves MyVote unset.
func NewView(c *Comment, author *identity.PublicProfile, viewer ref.UserID) *View {
	view := &View{
		ID:         c.ID,
		MangaID:    c.MangaID,
		AuthorID:   c.AuthorID,
		Author:     author,
		Content:    c.Content,
		Upvotes:    c.Ballot.Upvoters.Len(),
		Downvotes:  c.Ballot.Downvoters.Len(),
		Upvoters:   c.Ballot.Upvoters,
		Downvoters: c.Ballot.Downvoters,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if view.Upvoters == nil {
		view.Upvoters = NewVoterSet()
	}
	if view.Downvoters == nil {
		view.Downvoters = NewVoterSet()
	}
	if viewer != "" {
		view.MyVote = c.Ballot.StateOf(viewer)
	}
	return view
}

// Field names for validation
const (
	FieldContent   = "content"
	FieldDirection = "direction"
)
