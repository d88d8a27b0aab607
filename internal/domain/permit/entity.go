package permit

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Permit is a multi-day leave request with an admin approval workflow. It is
// independent of the same-day permit action on an attendance session.
type Permit struct {
	ID         string
	EmployeeID string
	Type       string // e.g. "Sakit", "Izin", "Cuti"
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     string
	CreatedAt  time.Time

	// Join fields
	EmployeeName *string
}

// IsDecided reports whether the permit has reached a terminal state.
func (p *Permit) IsDecided() bool {
	return p.Status != StatusPending
}
