package piket

import (
	"context"
)

// ScheduleService manages the piket duty roster.
type ScheduleService interface {
	// Upsert assigns an employee to piket duty on a date, replacing any
	// previous assignment for that employee-day.
	Upsert(ctx context.Context, req UpsertScheduleRequest) (ScheduleResponse, error)

	// ListByMonth lists assignments in a "2006-01" calendar month
	ListByMonth(ctx context.Context, month string) ([]ScheduleResponse, error)

	// Delete removes an assignment
	Delete(ctx context.Context, id string) error
}
