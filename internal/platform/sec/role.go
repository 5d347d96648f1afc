// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// UserRole is the authorization level carried in the "rol" claim.
type UserRole string

const (
	// RoleMember rates, favorites and comments.
	RoleMember UserRole = "member"
	// RoleAdmin additionally curates the catalog.
	RoleAdmin UserRole = "admin"
)

// roleRank orders roles; unknown roles rank zero and satisfy nothing.
var roleRank = map[UserRole]int{
	RoleMember: 1,
	RoleAdmin:  2,
}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants everything required grants.
func (r UserRole) AtLeast(required UserRole) bool {
	rank := roleRank[r]
	return rank > 0 && rank >= roleRank[required]
}
