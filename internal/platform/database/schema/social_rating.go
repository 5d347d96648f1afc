package schema

// SocialRatingTable holds the column names of social.rating: one row per (manga, user) pair, overwritten on re-rate.
type SocialRatingTable struct {
	Table         string
	MangaID       string
	UserID        string
	Score         string
	ExternalScore string
	CreatedAt     string
	UpdatedAt     string
}

var SocialRating = SocialRatingTable{
	Table:         "social.rating",
	MangaID:       "mangaid",
	UserID:        "userid",
	Score:         "score",
	ExternalScore: "externalscore",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}
