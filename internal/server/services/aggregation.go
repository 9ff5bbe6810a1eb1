package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/bluecup/internal/server/models"
	"github.com/dmitrijs2005/bluecup/internal/server/repositories/repomanager"
)

// AggregationService derives totals, rankings and reward status from the ledger.
type AggregationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tiers       []models.RewardTier
}

func NewAggregationService(db *sql.DB, m repomanager.RepositoryManager, tiers []models.RewardTier) *AggregationService {
	return &AggregationService{db: db, repomanager: m, tiers: append([]models.RewardTier(nil), tiers...)}
}

// TotalHours returns the user's summed hours, 0 with no activities.
func (s *AggregationService) TotalHours(ctx context.Context, userID int64) (float64, error) {
	total, err := s.repomanager.Activities(s.db).TotalHours(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("error summing hours: %w", err)
	}
	return total, nil
}

// Leaderboard ranks every user by total hours.
func (s *AggregationService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	totals, err := s.repomanager.Activities(s.db).Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading totals: %w", err)
	}
	return RankLeaderboard(totals), nil
}

// RewardStatus reports which tiers the user has reached.
func (s *AggregationService) RewardStatus(ctx context.Context, userID int64) (*models.RewardStatus, error) {
	total, err := s.TotalHours(ctx, userID)
	if err != nil {
		return nil, err
	}
	return EvaluateRewards(total, s.tiers), nil
}

// Tiers returns a copy of the configured reward tiers.
func (s *AggregationService) Tiers() []models.RewardTier {
	return append([]models.RewardTier(nil), s.tiers...)
}

// RankLeaderboard sorts entries by hours descending. Equal totals keep their
// input order, which the store delivers by ascending user id.
func RankLeaderboard(entries []models.LeaderboardEntry) []models.LeaderboardEntry {
	ranked := make([]models.LeaderboardEntry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalHours > ranked[j].TotalHours
	})
	return ranked
}

// EvaluateRewards splits tiers into earned (total >= threshold) and pending,
// both in tier order.
func EvaluateRewards(total float64, tiers []models.RewardTier) *models.RewardStatus {
	status := &models.RewardStatus{
		TotalHours: total,
		Earned:     []models.RewardTier{},
		Pending:    []models.RewardTier{},
	}
	for _, tier := range tiers {
		if total >= tier.Hours {
			status.Earned = append(status.Earned, tier)
		} else {
			status.Pending = append(status.Pending, tier)
		}
	}
	return status
}
