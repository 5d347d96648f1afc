// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"encoding/json"
	"slices"

	"github.com/taibuivan/nyan/internal/platform/ref"
	"github.com/taibuivan/nyan/internal/platform/validate"
)

// # Direction

// Direction is the side a vote is cast on.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// ParseDirection accepts exactly "up" or "down".
func ParseDirection(raw string) (Direction, error) {
	switch Direction(raw) {
	case DirectionUp, DirectionDown:
		return Direction(raw), nil
	}
	return "", validate.FieldError(FieldDirection, "Must be one of: up, down")
}

// # Vote State

// VoteState is where a single user stands on a single comment.
type VoteState string

const (
	StateNeutral   VoteState = "neutral"
	StateUpvoted   VoteState = "upvoted"
	StateDownvoted VoteState = "downvoted"
)

// # Voter Set

// VoterSet is an unordered set of users. The zero value is an empty set
// that is safe to read but must be created with [NewVoterSet] before Add.
type VoterSet map[ref.UserID]struct{}

// NewVoterSet builds a set from ids, collapsing duplicates.
func NewVoterSet(ids ...ref.UserID) VoterSet {
	set := make(VoterSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s VoterSet) Has(id ref.UserID) bool {
	_, ok := s[id]
	return ok
}

func (s VoterSet) Add(id ref.UserID) { s[id] = struct{}{} }

func (s VoterSet) Remove(id ref.UserID) { delete(s, id) }

func (s VoterSet) Len() int { return len(s) }

// Members returns the set sorted, so output is stable.
func (s VoterSet) Members() []ref.UserID {
	members := make([]ref.UserID, 0, len(s))
	for id := range s {
		members = append(members, id)
	}
	slices.Sort(members)
	return members
}

// Strings returns Members as plain strings for storage.
func (s VoterSet) Strings() []string {
	members := s.Members()
	out := make([]string, len(members))
	for i, id := range members {
		out[i] = id.String()
	}
	return out
}

// MarshalJSON writes the set as a sorted array.
func (s VoterSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Members())
}

// # Ballot

// Ballot holds the two voter sets of a comment. A user is never a member of
// both.
type Ballot struct {
	Upvoters   VoterSet
	Downvoters VoterSet
}

// NewBallot returns a ballot with empty, writable sets.
func NewBallot() Ballot {
	return Ballot{Upvoters: NewVoterSet(), Downvoters: NewVoterSet()}
}

// Apply records a vote by user and returns where the user now stands.
//
// The opposite set always loses the user. The target set then toggles: a
// repeated vote in the same direction retracts it.
func (b *Ballot) Apply(user ref.UserID, direction Direction) VoteState {
	if b.Upvoters == nil {
		b.Upvoters = NewVoterSet()
	}
	if b.Downvoters == nil {
		b.Downvoters = NewVoterSet()
	}

	target, opposite := b.Upvoters, b.Downvoters
	if direction == DirectionDown {
		target, opposite = b.Downvoters, b.Upvoters
	}

	opposite.Remove(user)
	if target.Has(user) {
		target.Remove(user)
	} else {
		target.Add(user)
	}

	return b.StateOf(user)
}

// StateOf reports the user's current vote.
func (b Ballot) StateOf(user ref.UserID) VoteState {
	switch {
	case b.Upvoters.Has(user):
		return StateUpvoted
	case b.Downvoters.Has(user):
		return StateDownvoted
	default:
		return StateNeutral
	}
}
