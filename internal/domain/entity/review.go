package entity

import "time"

// Review of a bootcamp. A user may review a given bootcamp at most once;
// the service layer enforces this before insert.
type Review struct {
	ID         string    `json:"id"`
	BootcampID string    `json:"bootcamp_id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
}
