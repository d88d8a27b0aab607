package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/attendance"
)

// SessionJobs sweeps attendance sessions that were left open overnight.
// Reads already close such sessions lazily; the sweeper catches employees
// who never come back.
type SessionJobs struct {
	sessions attendance.SessionRepository
	loc      *time.Location
	now      func() time.Time
}

func NewSessionJobs(sessions attendance.SessionRepository, loc *time.Location) *SessionJobs {
	return &SessionJobs{
		sessions: sessions,
		loc:      loc,
		now:      time.Now,
	}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_overnight_sessions", 1*time.Hour, j.AutoCloseOvernightSessions)
}

// AutoCloseOvernightSessions closes every open session whose 06:00 next-day
// cutoff has passed, stamping the checkout at exactly that cutoff.
func (j *SessionJobs) AutoCloseOvernightSessions(ctx context.Context) error {
	nowLocal := j.now().In(j.loc)

	// Sessions dated yesterday are stale only once 06:00 has passed today.
	staleBefore := nowLocal
	if nowLocal.Hour() < attendance.AutoCloseHour {
		staleBefore = staleBefore.AddDate(0, 0, -1)
	}

	stale, err := j.sessions.ListOpenBefore(ctx, staleBefore.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("failed to list stale open sessions: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	closed := 0
	for _, session := range stale {
		d := session.Date
		cutoff := time.Date(d.Year(), d.Month(), d.Day()+1, attendance.AutoCloseHour, 0, 0, 0, j.loc).UTC()

		session.CheckOut = &cutoff
		notes := attendance.AppendAutoCloseNote(session.Notes)
		session.Notes = &notes

		if err := j.sessions.Update(ctx, session); err != nil {
			slog.Error("Cron: failed to auto-close session",
				"session_id", session.ID,
				"employee_id", session.EmployeeID,
				"error", err)
			continue
		}
		closed++
	}

	slog.Info("Cron: auto-closed overnight sessions", "count", closed)
	return nil
}
