package activities

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/bluecup/internal/dbx"
	"github.com/dmitrijs2005/bluecup/internal/server/models"
)

const (
	totalsQuery = `
		SELECT u.id, u.email, COALESCE(SUM(a.hours), 0)
		FROM "user" u
		LEFT JOIN activity a ON a.user_id = u.id
		GROUP BY u.id, u.email
		ORDER BY u.id
	`
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, activity *models.Activity) (*models.Activity, error) {
	query := `
		INSERT INTO activity (activity_type, hours, description, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, date_created
	`
	err := r.db.QueryRowContext(ctx, query,
		activity.ActivityType, activity.Hours, activity.Description, activity.UserID,
	).Scan(&activity.ID, &activity.DateCreated)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	activity.DateCreated = activity.DateCreated.UTC()
	return activity, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.Activity, error) {
	query := `
		SELECT id, user_id, activity_type, hours, description, date_created
		FROM activity
		WHERE user_id = $1
		ORDER BY date_created DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanActivities(rows)
}

func (r *PostgresRepository) TotalHours(ctx context.Context, userID int64) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(hours), 0) FROM activity WHERE user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}

func (r *PostgresRepository) Totals(ctx context.Context) ([]models.LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx, totalsQuery)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanTotals(rows)
}

func scanActivities(rows *sql.Rows) ([]models.Activity, error) {
	defer rows.Close()

	result := []models.Activity{}
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.ActivityType, &a.Hours, &a.Description, &a.DateCreated); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		a.DateCreated = a.DateCreated.UTC()
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func scanTotals(rows *sql.Rows) ([]models.LeaderboardEntry, error) {
	defer rows.Close()

	result := []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Email, &e.TotalHours); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
