// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/nyan/internal/platform/database/schema"
	"github.com/taibuivan/nyan/internal/platform/dberr"
	"github.com/taibuivan/nyan/internal/platform/ref"
)

// PostgresRepository implements [Repository] on social.favorite.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Exists(ctx context.Context, mangaID ref.MangaID, userID ref.UserID) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.SocialFavorite.Table, schema.SocialFavorite.MangaID, schema.SocialFavorite.UserID)

	var exists bool
	if err := repository.db.QueryRow(ctx, query, mangaID, userID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "favorite_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, favorite *Favorite) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		RETURNING %s
	`,
		schema.SocialFavorite.Table, schema.SocialFavorite.MangaID, schema.SocialFavorite.UserID,
		schema.SocialFavorite.CreatedAt,
	)

	err := repository.db.QueryRow(ctx, query, favorite.MangaID, favorite.UserID).Scan(&favorite.CreatedAt)
	return dberr.Wrap(err, "create_favorite")
}

func (repository *PostgresRepository) Delete(ctx context.Context, mangaID ref.MangaID, userID ref.UserID) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialFavorite.Table, schema.SocialFavorite.MangaID, schema.SocialFavorite.UserID)

	cmd, err := repository.db.Exec(ctx, query, mangaID, userID)
	if err != nil {
		return false, dberr.Wrap(err, "delete_favorite")
	}
	return cmd.RowsAffected() > 0, nil
}

func (repository *PostgresRepository) ListByUser(ctx context.Context, userID ref.UserID) ([]*Favorite, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
	`,
		schema.SocialFavorite.MangaID, schema.SocialFavorite.UserID, schema.SocialFavorite.CreatedAt,
		schema.SocialFavorite.Table, schema.SocialFavorite.UserID, schema.SocialFavorite.CreatedAt,
	)

	rows, err := repository.db.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_favorites_by_user")
	}

	favorites, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Favorite, error) {
		favorite := &Favorite{}
		err := row.Scan(&favorite.MangaID, &favorite.UserID, &favorite.CreatedAt)
		return favorite, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_favorite")
	}
	return favorites, nil
}

func (repository *PostgresRepository) CountByManga(ctx context.Context, mangaID ref.MangaID) (int, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.SocialFavorite.Table, schema.SocialFavorite.MangaID)

	var count int
	if err := repository.db.QueryRow(ctx, query, mangaID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_favorites")
	}
	return count, nil
}
