// Package activities stores the append-only activity ledger and answers the
// aggregate queries built on it.
package activities

import (
	"context"

	"github.com/dmitrijs2005/bluecup/internal/server/models"
)

// Repository has no update or delete operations; the ledger is append-only.
type Repository interface {
	// Create inserts activity and fills in its ID and DateCreated.
	Create(ctx context.Context, activity *models.Activity) (*models.Activity, error)

	// ListByUser returns the user's activities, newest first.
	ListByUser(ctx context.Context, userID int64) ([]models.Activity, error)

	// TotalHours returns the sum of the user's hours, 0 when there are none.
	TotalHours(ctx context.Context, userID int64) (float64, error)

	// Totals returns one row per user, including users without activities,
	// ordered by ascending user id.
	Totals(ctx context.Context) ([]models.LeaderboardEntry, error)
}
