package users

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bluecup/internal/common"
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

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now().UTC()
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO "user" (email, password_hash, county, home_club, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`, user.Email, user.PasswordHash, dbx.NullString(user.County), dbx.NullString(user.HomeClub), user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, county, home_club, created_at
		FROM "user"
		WHERE email = ?
	`, email))
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, county, home_club, created_at
		FROM "user"
		WHERE id = ?
	`, id))
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "user"`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
