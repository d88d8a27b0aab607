package attendance

import (
	"context"
)

// SessionRepository defines data access for attendance sessions.
// dateLocal parameters are civil dates in the business timezone ("2006-01-02").
type SessionRepository interface {
	// Create inserts a new session. The open-session invariant is backed by a
	// partial unique index on (employee_id, date) WHERE check_out IS NULL;
	// violations surface as ErrSessionAlreadyOpen.
	Create(ctx context.Context, session Session) (Session, error)

	// GetByID retrieves a session by ID
	GetByID(ctx context.Context, id string) (Session, error)

	// GetOpenSession returns the employee's open session regardless of date,
	// or ErrNoOpenSession. At most one can exist.
	GetOpenSession(ctx context.Context, employeeID string) (Session, error)

	// ListOpenBefore returns open sessions whose civil date is strictly before
	// dateLocal, across all employees. Used by the overnight close sweeper.
	ListOpenBefore(ctx context.Context, dateLocal string) ([]Session, error)

	// ListByEmployeeAndDate returns all sessions for the employee on the date,
	// ordered by session number ascending.
	ListByEmployeeAndDate(ctx context.Context, employeeID string, dateLocal string) ([]Session, error)

	// LockByEmployeeAndDate is ListByEmployeeAndDate with SELECT ... FOR UPDATE.
	// Must run inside a transaction; serializes concurrent actions (double-tap)
	// for one employee-day.
	LockByEmployeeAndDate(ctx context.Context, employeeID string, dateLocal string) ([]Session, error)

	// Update persists mutable stamp fields of an existing session
	Update(ctx context.Context, session Session) error

	// ListByDateRange returns sessions whose date falls in [startLocal, endLocal],
	// optionally filtered to one employee, newest date first.
	ListByDateRange(ctx context.Context, employeeID *string, startLocal, endLocal string) ([]Session, error)

	// CountByStatusAndDate counts sessions on a date with any of the statuses
	CountByStatusAndDate(ctx context.Context, dateLocal string, statuses []string) (int, error)
}
