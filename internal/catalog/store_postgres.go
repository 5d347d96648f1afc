// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/nyan/internal/platform/database/schema"
	"github.com/taibuivan/nyan/internal/platform/dberr"
	"github.com/taibuivan/nyan/internal/platform/ref"
)

// PostgresRepository implements [Repository] on core.manga.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var mangaColumns = schema.CoreManga.Select()

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Manga, int, error) {
	where := []string{"TRUE"}
	args := []any{}

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where = append(where, fmt.Sprintf("%s ILIKE $%d", schema.CoreManga.Name, len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("LOWER(%s) = LOWER($%d)", schema.CoreManga.Category, len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.CoreManga.Table, whereClause)
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_mangas")
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s DESC, %s DESC
		LIMIT $%s OFFSET $%s
	`,
		mangaColumns, schema.CoreManga.Table, whereClause,
		schema.CoreManga.CreatedAt, schema.CoreManga.ID,
		strconv.Itoa(len(args)+1), strconv.Itoa(len(args)+2),
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_mangas")
	}

	mangas, err := collectMangas(rows)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "scan_manga")
	}
	return mangas, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id ref.MangaID) (*Manga, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, mangaColumns, schema.CoreManga.Table, schema.CoreManga.ID)
	return repository.findOne(ctx, "get_manga", query, id)
}

func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Manga, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, mangaColumns, schema.CoreManga.Table, schema.CoreManga.Slug)
	return repository.findOne(ctx, "get_manga_by_slug", query, slug)
}

func (repository *PostgresRepository) FindByIDs(ctx context.Context, ids []ref.MangaID) ([]*Manga, error) {
	if len(ids) == 0 {
		return []*Manga{}, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1::text[]::uuid[])`,
		mangaColumns, schema.CoreManga.Table, schema.CoreManga.ID)

	rows, err := repository.db.Query(ctx, query, raw)
	if err != nil {
		return nil, dberr.Wrap(err, "list_mangas_by_id")
	}

	mangas, err := collectMangas(rows)
	return mangas, dberr.Wrap(err, "scan_manga")
}

func (repository *PostgresRepository) Create(ctx context.Context, manga *Manga) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s, %s
	`,
		schema.CoreManga.Table,
		schema.CoreManga.ID, schema.CoreManga.Name, schema.CoreManga.Slug, schema.CoreManga.Description,
		schema.CoreManga.ImageURL, schema.CoreManga.Category, schema.CoreManga.Author,
		schema.CoreManga.Status, schema.CoreManga.Volumes,
		schema.CoreManga.CreatedAt, schema.CoreManga.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		manga.ID, manga.Name, manga.Slug, manga.Description, manga.ImageURL,
		manga.Category, manga.Author, manga.Status, manga.Volumes,
	).Scan(&manga.CreatedAt, &manga.UpdatedAt)

	return dberr.Wrap(err, "create_manga")
}

func (repository *PostgresRepository) Exists(ctx context.Context, id ref.MangaID) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.CoreManga.Table, schema.CoreManga.ID)

	var exists bool
	if err := repository.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "manga_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) SlugTaken(ctx context.Context, slug string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.CoreManga.Table, schema.CoreManga.Slug)

	var taken bool
	if err := repository.db.QueryRow(ctx, query, slug).Scan(&taken); err != nil {
		return false, dberr.Wrap(err, "manga_slug_taken")
	}
	return taken, nil
}

func (repository *PostgresRepository) findOne(ctx context.Context, action, query string, arg any) (*Manga, error) {
	rows, err := repository.db.Query(ctx, query, arg)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	manga, err := pgx.CollectExactlyOneRow(rows, scanManga)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return manga, nil
}

func collectMangas(rows pgx.Rows) ([]*Manga, error) {
	mangas, err := pgx.CollectRows(rows, scanManga)
	if err != nil {
		return nil, err
	}
	if mangas == nil {
		mangas = []*Manga{}
	}
	return mangas, nil
}

func scanManga(row pgx.CollectableRow) (*Manga, error) {
	manga := &Manga{}
	err := row.Scan(
		&manga.ID, &manga.Name, &manga.Slug, &manga.Description, &manga.ImageURL,
		&manga.Category, &manga.Author, &manga.Status, &manga.Volumes,
		&manga.CreatedAt, &manga.UpdatedAt,
	)
	return manga, err
}
