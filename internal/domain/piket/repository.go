package piket

import (
	"context"
)

type ScheduleRepository interface {
	// Upsert creates or replaces the assignment for (employeeID, date)
	Upsert(ctx context.Context, schedule Schedule) (Schedule, error)

	// ListByMonth returns assignments whose date falls in the calendar month
	// ("2006-01"); empty month returns everything.
	ListByMonth(ctx context.Context, month string) ([]Schedule, error)

	// GetByEmployeeAndDate returns the assignment for one employee-day, or
	// ErrScheduleNotFound.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, dateLocal string) (Schedule, error)

	// Delete removes an assignment
	Delete(ctx context.Context, id string) error
}
