package activities

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

func (r *SQLiteRepository) Create(ctx context.Context, activity *models.Activity) (*models.Activity, error) {
	activity.DateCreated = time.Now().UTC()
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO activity (activity_type, hours, description, user_id, date_created)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`, activity.ActivityType, activity.Hours, activity.Description, activity.UserID, activity.DateCreated,
	).Scan(&activity.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return activity, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID int64) ([]models.Activity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, activity_type, hours, description, date_created
		FROM activity
		WHERE user_id = ?
		ORDER BY date_created DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanActivities(rows)
}

func (r *SQLiteRepository) TotalHours(ctx context.Context, userID int64) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(hours), 0.0) FROM activity WHERE user_id = ?`, userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}

func (r *SQLiteRepository) Totals(ctx context.Context) ([]models.LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx, totalsQuery)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanTotals(rows)
}
