package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notebook/internal/common"
	"github.com/dmitrijs2005/notebook/internal/dbx"
	"github.com/dmitrijs2005/notebook/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	query :=
		`INSERT INTO notes (id, user_id, title, description, tag, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `

	_, err := r.db.ExecContext(ctx, query,
		note.ID, note.UserID, note.Title, note.Description, note.Tag, note.CreatedAt, note.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	query :=
		`SELECT id, user_id, title, description, tag, created_at, updated_at FROM notes
		 WHERE id = $1
		 `

	return scanNote(r.db.QueryRowContext(ctx, query, id))
}

// ListByUser returns the user's notes oldest first. The result is never nil.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Note, error) {
	query :=
		`SELECT id, user_id, title, description, tag, created_at, updated_at FROM notes
		 WHERE user_id = $1
		 ORDER BY created_at, seq
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Note, 0)

	for rows.Next() {
		n := &models.Note{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Description, &n.Tag, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, note *models.Note) (*models.Note, error) {
	query :=
		`UPDATE notes SET title = $3, description = $4, tag = $5, updated_at = $6
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, description, tag, created_at, updated_at
		 `

	return scanNote(r.db.QueryRowContext(ctx, query,
		note.ID, note.UserID, note.Title, note.Description, note.Tag, note.UpdatedAt))
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) (*models.Note, error) {
	query :=
		`DELETE FROM notes
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, description, tag, created_at, updated_at
		 `

	return scanNote(r.db.QueryRowContext(ctx, query, id, userID))
}

func scanNote(row *sql.Row) (*models.Note, error) {
	n := &models.Note{}
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Description, &n.Tag, &n.CreatedAt, &n.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
