// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/nyan/internal/platform/database/schema"
	"github.com/taibuivan/nyan/internal/platform/dberr"
	"github.com/taibuivan/nyan/internal/platform/postgres"
	"github.com/taibuivan/nyan/internal/platform/ref"
)

// PostgresRepository implements [Repository] on social.comment.
//
// Voter sets live in two uuid[] columns on the comment row; they are read
// as text[] and written back from text[] so they map onto [VoterSet].
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var commentColumns = fmt.Sprintf("%s, %s, %s, %s, %s::text[], %s::text[], %s, %s",
	schema.SocialComment.ID, schema.SocialComment.MangaID, schema.SocialComment.UserID,
	schema.SocialComment.Body, schema.SocialComment.Upvoters, schema.SocialComment.Downvoters,
	schema.SocialComment.CreatedAt, schema.SocialComment.UpdatedAt,
)

func (repository *PostgresRepository) Create(ctx context.Context, c *Comment) error {
	table := schema.SocialComment
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`, table.Table, table.ID, table.MangaID, table.UserID, table.Body, table.CreatedAt, table.UpdatedAt)

	err := repository.db.QueryRow(ctx, query, c.ID, c.MangaID, c.AuthorID, c.Content).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "insert_comment")
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id ref.CommentID) (*Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		commentColumns, schema.SocialComment.Table, schema.SocialComment.ID)

	rows, err := repository.db.Query(ctx, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "find_comment")
	}

	found, err := pgx.CollectExactlyOneRow(rows, scanComment)
	if err != nil {
		return nil, dberr.Wrap(err, "find_comment")
	}
	return found, nil
}

func (repository *PostgresRepository) ListByManga(ctx context.Context, mangaID ref.MangaID) ([]*Comment, error) {
	return repository.list(ctx, "list_comments_by_manga", schema.SocialComment.MangaID, mangaID)
}

func (repository *PostgresRepository) ListByUser(ctx context.Context, userID ref.UserID) ([]*Comment, error) {
	return repository.list(ctx, "list_comments_by_user", schema.SocialComment.UserID, userID)
}

func (repository *PostgresRepository) list(ctx context.Context, action, column string, arg any) ([]*Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC, %s DESC`,
		commentColumns, schema.SocialComment.Table, column,
		schema.SocialComment.CreatedAt, schema.SocialComment.ID)

	rows, err := repository.db.Query(ctx, query, arg)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	comments, err := pgx.CollectRows(rows, scanComment)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return comments, nil
}

// UpdateBallot holds a row lock from the read to the write, so votes on the
// same comment are applied one after another.
func (repository *PostgresRepository) UpdateBallot(ctx context.Context, id ref.CommentID, mutate func(ballot *Ballot)) (*Comment, error) {
	table := schema.SocialComment
	selectQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
		commentColumns, table.Table, table.ID)
	updateQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2::text[]::uuid[], %s = $3::text[]::uuid[], %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`, table.Table, table.Upvoters, table.Downvoters, table.UpdatedAt, table.ID, table.UpdatedAt)

	var updated *Comment
	err := postgres.WithTx(ctx, repository.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, id)
		if err != nil {
			return err
		}

		current, err := pgx.CollectExactlyOneRow(rows, scanComment)
		if err != nil {
			return err
		}

		mutate(&current.Ballot)

		err = tx.QueryRow(ctx, updateQuery, id,
			current.Ballot.Upvoters.Strings(), current.Ballot.Downvoters.Strings(),
		).Scan(&current.UpdatedAt)
		if err != nil {
			return err
		}

		updated = current
		return nil
	})
	if err != nil {
		return nil, dberr.Wrap(err, "update_comment_votes")
	}
	return updated, nil
}

func scanComment(row pgx.CollectableRow) (*Comment, error) {
	var (
		c          = &Comment{}
		upvoters   []string
		downvoters []string
	)
	err := row.Scan(&c.ID, &c.MangaID, &c.AuthorID, &c.Content, &upvoters, &downvoters, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	c.Ballot = Ballot{Upvoters: toVoterSet(upvoters), Downvoters: toVoterSet(downvoters)}
	return c, nil
}

func toVoterSet(raw []string) VoterSet {
	set := make(VoterSet, len(raw))
	for _, id := range raw {
		set.Add(ref.UserID(id))
	}
	return set
}
