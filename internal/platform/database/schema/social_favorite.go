package schema

// SocialFavoriteTable holds the column names of social.favorite: one row per (manga, user) pair.
type SocialFavoriteTable struct {
	Table     string
	MangaID   string
	UserID    string
	CreatedAt string
}

var SocialFavorite = SocialFavoriteTable{
	Table:     "social.favorite",
	MangaID:   "mangaid",
	UserID:    "userid",
	CreatedAt: "createdat",
}
