package models

import "time"

// User is a registered account. PasswordHash always holds a bcrypt hash.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	County       string    `json:"county,omitempty"`
	HomeClub     string    `json:"home_club,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
