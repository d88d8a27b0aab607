package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/piket"
	"github.com/absensi-nh/absensi-backend-go/internal/pkg/database"
)

type piketRepository struct {
	db *database.DB
}

func NewPiketRepository(db *database.DB) piket.ScheduleRepository {
	return &piketRepository{db: db}
}

// Upsert implements piket.ScheduleRepository.
func (r *piketRepository) Upsert(ctx context.Context, schedule piket.Schedule) (piket.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO piket_schedules (id, employee_id, date, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, date)
		DO UPDATE SET notes = EXCLUDED.notes
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		schedule.ID,
		schedule.EmployeeID,
		schedule.Date,
		schedule.Notes,
	).Scan(&schedule.ID, &schedule.CreatedAt)
	if err != nil {
		return piket.Schedule{}, fmt.Errorf("failed to upsert piket schedule: %w", err)
	}

	return schedule, nil
}

// ListByMonth implements piket.ScheduleRepository.
func (r *piketRepository) ListByMonth(ctx context.Context, month string) ([]piket.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.employee_id, p.date, p.notes, p.created_at, u.full_name
		FROM piket_schedules p
		JOIN users u ON u.id = p.employee_id
	`
	var args []any
	if month != "" {
		query += ` WHERE to_char(p.date, 'YYYY-MM') = $1`
		args = append(args, month)
	}
	query += ` ORDER BY p.date ASC, u.full_name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list piket schedules: %w", err)
	}
	defer rows.Close()

	var schedules []piket.Schedule
	for rows.Next() {
		var s piket.Schedule
		if err := rows.Scan(&s.ID, &s.EmployeeID, &s.Date, &s.Notes, &s.CreatedAt, &s.EmployeeName); err != nil {
			return nil, fmt.Errorf("failed to scan piket schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

// GetByEmployeeAndDate implements piket.ScheduleRepository.
func (r *piketRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, dateLocal string) (piket.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, notes, created_at
		FROM piket_schedules
		WHERE employee_id = $1 AND date = $2::date
	`

	var s piket.Schedule
	err := q.QueryRow(ctx, query, employeeID, dateLocal).Scan(
		&s.ID, &s.EmployeeID, &s.Date, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return piket.Schedule{}, piket.ErrScheduleNotFound
		}
		return piket.Schedule{}, fmt.Errorf("failed to get piket schedule: %w", err)
	}
	return s, nil
}

// Delete implements piket.ScheduleRepository.
func (r *piketRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM piket_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete piket schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return piket.ErrScheduleNotFound
	}
	return nil
}
