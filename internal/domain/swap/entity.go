package swap

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Request is a duty-roster swap proposal between two employees. Only the
// target employee or an admin may decide it, and a decision is terminal.
type Request struct {
	ID            string
	RequesterID   string
	TargetUserID  string
	RequesterDate time.Time
	TargetDate    time.Time
	Reason        string
	Status        string
	CreatedAt     time.Time

	// Join fields
	RequesterName *string
	TargetName    *string
}

// IsDecided reports whether the request has reached a terminal state.
func (r *Request) IsDecided() bool {
	return r.Status != StatusPending
}
