package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bluecup/internal/common"
	"github.com/dmitrijs2005/bluecup/internal/logging"
	"github.com/dmitrijs2005/bluecup/internal/server/metrics"
	"github.com/dmitrijs2005/bluecup/internal/server/models"
	"github.com/dmitrijs2005/bluecup/internal/server/repositories/repomanager"
)

// LogActivityInput is the raw form input for a new activity. Hours stays a
// string so parsing errors surface as validation errors.
type LogActivityInput struct {
	ActivityType string
	Hours        string
	Description  string
}

// LedgerService appends activities to the ledger and lists them back.
type LedgerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	metrics     *metrics.Metrics
}

func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger, met *metrics.Metrics) *LedgerService {
	return &LedgerService{db: db, repomanager: m, logger: logger.With("module", "ledger"), metrics: met}
}

// Log validates in and records one activity for userID.
func (s *LedgerService) Log(ctx context.Context, userID int64, in LogActivityInput) (*models.Activity, error) {
	activityType := strings.TrimSpace(in.ActivityType)
	if activityType == "" {
		return nil, fmt.Errorf("%w: activity type is required", common.ErrValidation)
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", common.ErrValidation)
	}
	hours, err := ParseHours(in.Hours)
	if err != nil {
		return nil, err
	}

	a, err := s.repomanager.Activities(s.db).Create(ctx, &models.Activity{
		UserID:       userID,
		ActivityType: activityType,
		Hours:        hours,
		Description:  description,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating activity: %w", err)
	}

	s.metrics.ObserveActivity(hours)
	s.logger.Info(ctx, "activity logged", "user_id", userID, "activity_id", a.ID, "hours", hours)
	return a, nil
}

// ListForUser returns the user's activities, newest first.
func (s *LedgerService) ListForUser(ctx context.Context, userID int64) ([]models.Activity, error) {
	list, err := s.repomanager.Activities(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing activities: %w", err)
	}
	return list, nil
}

// ParseHours accepts finite, non-negative decimal numbers.
func ParseHours(raw string) (float64, error) {
	hours, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: hours must be a number", common.ErrValidation)
	}
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, fmt.Errorf("%w: hours must be finite", common.ErrValidation)
	}
	if hours < 0 {
		return 0, fmt.Errorf("%w: hours must not be negative", common.ErrValidation)
	}
	return hours, nil
}
