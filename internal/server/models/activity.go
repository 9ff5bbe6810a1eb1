package models

import "time"

// Activity is one append-only ledger entry.
type Activity struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	ActivityType string    `json:"activity_type"`
	Hours        float64   `json:"hours"`
	Description  string    `json:"description"`
	DateCreated  time.Time `json:"date_created"`
}
