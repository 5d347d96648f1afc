// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rating

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/nyan/internal/platform/database/schema"
	"github.com/taibuivan/nyan/internal/platform/dberr"
	"github.com/taibuivan/nyan/internal/platform/ref"
)

// PostgresRepository implements [Repository] on social.rating.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var ratingColumns = schema.List(
	schema.SocialRating.MangaID, schema.SocialRating.UserID, schema.SocialRating.Score,
	schema.SocialRating.ExternalScore, schema.SocialRating.CreatedAt, schema.SocialRating.UpdatedAt,
)

func (repository *PostgresRepository) Upsert(ctx context.Context, r *Rating) error {
	table := schema.SocialRating
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%[2]s, %[3]s) DO UPDATE
		SET %[4]s = EXCLUDED.%[4]s,
		    %[5]s = COALESCE(EXCLUDED.%[5]s, %[1]s.%[5]s),
		    %[6]s = NOW()
		RETURNING %[5]s, %[7]s, %[6]s
	`,
		table.Table, table.MangaID, table.UserID, table.Score, table.ExternalScore,
		table.UpdatedAt, table.CreatedAt,
	)

	err := repository.db.QueryRow(ctx, query, r.MangaID, r.UserID, r.Score, r.ExternalScore).
		Scan(&r.ExternalScore, &r.CreatedAt, &r.UpdatedAt)
	return dberr.Wrap(err, "upsert_rating")
}

func (repository *PostgresRepository) Find(ctx context.Context, mangaID ref.MangaID, userID ref.UserID) (*Rating, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		ratingColumns, schema.SocialRating.Table, schema.SocialRating.MangaID, schema.SocialRating.UserID)

	rows, err := repository.db.Query(ctx, query, mangaID, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "find_rating")
	}

	found, err := pgx.CollectExactlyOneRow(rows, scanRating)
	if err != nil {
		return nil, dberr.Wrap(err, "find_rating")
	}
	return found, nil
}

func (repository *PostgresRepository) Totals(ctx context.Context, mangaID ref.MangaID) (Totals, error) {
	query := fmt.Sprintf(`SELECT COALESCE(SUM(%s), 0), COUNT(*) FROM %s WHERE %s = $1`,
		schema.SocialRating.Score, schema.SocialRating.Table, schema.SocialRating.MangaID)

	var totals Totals
	if err := repository.db.QueryRow(ctx, query, mangaID).Scan(&totals.Sum, &totals.Count); err != nil {
		return Totals{}, dberr.Wrap(err, "rating_totals")
	}
	return totals, nil
}

func (repository *PostgresRepository) ListByManga(ctx context.Context, mangaID ref.MangaID) ([]*Rating, error) {
	return repository.list(ctx, "list_ratings_by_manga", schema.SocialRating.MangaID, mangaID)
}

func (repository *PostgresRepository) ListByUser(ctx context.Context, userID ref.UserID) ([]*Rating, error) {
	return repository.list(ctx, "list_ratings_by_user", schema.SocialRating.UserID, userID)
}

func (repository *PostgresRepository) list(ctx context.Context, action, column string, arg any) ([]*Rating, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		ratingColumns, schema.SocialRating.Table, column, schema.SocialRating.UpdatedAt)

	rows, err := repository.db.Query(ctx, query, arg)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	ratings, err := pgx.CollectRows(rows, scanRating)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return ratings, nil
}

func scanRating(row pgx.CollectableRow) (*Rating, error) {
	r := &Rating{}
	err := row.Scan(&r.MangaID, &r.UserID, &r.Score, &r.ExternalScore, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}
