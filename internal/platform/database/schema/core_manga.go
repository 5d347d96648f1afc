package schema

// CoreMangaTable holds the column names of core.manga: one row per catalog entry.
type CoreMangaTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Description string
	ImageURL    string
	Category    string
	Author      string
	Status      string
	Volumes     string
	CreatedAt   string
	UpdatedAt   string
}

var CoreManga = CoreMangaTable{
	Table:       "core.manga",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	ImageURL:    "imageurl",
	Category:    "category",
	Author:      "author",
	Status:      "status",
	Volumes:     "volumes",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Select is the full column list in the order the repository scans it.
func (t CoreMangaTable) Select() string {
	return List(
		t.ID, t.Name, t.Slug, t.Description, t.ImageURL, t.Category,
		t.Author, t.Status, t.Volumes, t.CreatedAt, t.UpdatedAt,
	)
}
