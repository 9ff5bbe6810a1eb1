package models

import "time"

type Session struct {
	ID        string
	UserID    int64
	Expires   time.Time
	CreatedAt time.Time
}
