package client

import "time"

// Client is the booking profile attached to a user account. Admin accounts
// have no client profile; the reservation engine treats that as a
// first-class failure.
type Client struct {
	ID        string
	UserID    string
	Name      string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
