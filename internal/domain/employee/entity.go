package employee

import "time"

type Employee struct {
	ID        string
	Name      string
	Bio       string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
