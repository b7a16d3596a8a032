package entity

import "time"

// Post belongs to exactly one User via UserID, fixed at creation.
// Ownership is checked before update/delete; reads are unrestricted.
type Post struct {
	ID        string
	Title     string
	Content   string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
