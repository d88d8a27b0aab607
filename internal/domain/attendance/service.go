package attendance

import (
	"context"
)

// SessionService owns the state machine for one employee's daily sessions.
// Every operation uses the server clock; client timestamps are never trusted.
type SessionService interface {
	// ClockIn opens a new session for today. Fails with ErrSessionAlreadyOpen
	// if one is still open.
	ClockIn(ctx context.Context, req ClockInRequest) (SessionResponse, error)

	// BreakStart stamps the break start on today's open session
	BreakStart(ctx context.Context, req BreakRequest) (SessionResponse, error)

	// BreakEnd stamps the break end on today's open session
	BreakEnd(ctx context.Context, req BreakRequest) (SessionResponse, error)

	// ClockOut closes today's open session
	ClockOut(ctx context.Context, req ClockOutRequest) (SessionResponse, error)

	// Permit closes today's open session early as sick/permission, or creates
	// a closed-from-birth permit session when no session exists yet.
	Permit(ctx context.Context, req PermitRequest) (SessionResponse, error)

	// Resume opens a new numbered session after a closed one; it never
	// reopens a closed session.
	Resume(ctx context.Context) (SessionResponse, error)

	// GetToday returns today's open session if any, else the latest session,
	// else nil. Lazily auto-closes a stale open session from yesterday.
	GetToday(ctx context.Context) (*SessionResponse, error)

	// History lists sessions in the 26th-to-25th payroll window of the given
	// month (or everything when no month given). Admins may query any
	// employee; employees only themselves.
	History(ctx context.Context, filter HistoryFilter) ([]SessionResponse, error)
}
