package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bluecup/internal/dbx"
	"github.com/dmitrijs2005/bluecup/internal/server/models"
)

// SQLiteRepository implements Repository for the local file-backed store.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, session *models.Session) error {
	session.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (id, user_id, expires_at, created_at)
		VALUES (?, ?, ?, ?)
	`, session.ID, session.UserID, session.Expires.UTC(), session.CreatedAt)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	return scanSession(r.db.QueryRowContext(ctx, `
		SELECT id, user_id, expires_at, created_at
		FROM session
		WHERE id = ?
	`, id))
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE id = ?`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
