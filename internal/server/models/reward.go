package models

// RewardTier is a named threshold of cumulative hours.
type RewardTier struct {
	Name        string  `json:"name"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
}

// RewardStatus splits the configured tiers by whether TotalHours reaches them.
// Both slices keep the configured tier order.
type RewardStatus struct {
	TotalHours float64      `json:"total_hours"`
	Earned     []RewardTier `json:"earned"`
	Pending    []RewardTier `json:"pending"`
}

type LeaderboardEntry struct {
	UserID     int64   `json:"user_id"`
	Email      string  `json:"email"`
	TotalHours float64 `json:"hours"`
}
