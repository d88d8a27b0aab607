package piket

import "time"

// Schedule marks an employee as on duty (piket) for one date. Duty days have
// an earlier lateness deadline than regular days. Several employees may be
// on duty the same date; uniqueness is per (employee, date).
type Schedule struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Notes      *string
	CreatedAt  time.Time

	// Join fields
	EmployeeName *string
}
