package schema

// SocialCommentTable holds the column names of social.comment: one row per comment; voter sets are uuid[] columns.
type SocialCommentTable struct {
	Table      string
	ID         string
	MangaID    string
	UserID     string
	Body       string
	Upvoters   string
	Downvoters string
	CreatedAt  string
	UpdatedAt  string
}

var SocialComment = SocialCommentTable{
	Table:      "social.comment",
	ID:         "id",
	MangaID:    "mangaid",
	UserID:     "userid",
	Body:       "body",
	Upvoters:   "upvoters",
	Downvoters: "downvoters",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}
