package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/attendance"
	"github.com/absensi-nh/absensi-backend-go/internal/pkg/database"
)

type sessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) attendance.SessionRepository {
	return &sessionRepository{db: db}
}

const sessionColumns = `
	s.id, s.employee_id, s.date, s.session_number,
	s.check_in, s.check_in_photo, s.check_in_location,
	s.break_start, s.break_start_photo, s.break_start_location,
	s.break_end, s.break_end_photo, s.break_end_location,
	s.check_out, s.check_out_photo, s.check_out_location,
	s.shift_label, s.shift_type, s.status, s.is_overtime, s.notes,
	s.permit_exit_at, s.permit_resume_at,
	s.created_at, s.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner, withEmployee bool) (attendance.Session, error) {
	var s attendance.Session
	dest := []any{
		&s.ID, &s.EmployeeID, &s.Date, &s.SessionNumber,
		&s.CheckIn, &s.CheckInPhoto, &s.CheckInLocation,
		&s.BreakStart, &s.BreakStartPhoto, &s.BreakStartLocation,
		&s.BreakEnd, &s.BreakEndPhoto, &s.BreakEndLocation,
		&s.CheckOut, &s.CheckOutPhoto, &s.CheckOutLocation,
		&s.ShiftLabel, &s.ShiftType, &s.Status, &s.IsOvertime, &s.Notes,
		&s.PermitExitAt, &s.PermitResumeAt,
		&s.CreatedAt, &s.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &s.EmployeeName, &s.EmployeeNIK)
	}
	if err := row.Scan(dest...); err != nil {
		return attendance.Session{}, err
	}
	return s, nil
}

// Create implements attendance.SessionRepository.
func (r *sessionRepository) Create(ctx context.Context, session attendance.Session) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_sessions (
			id, employee_id, date, session_number,
			check_in, check_in_photo, check_in_location,
			shift_label, shift_type, status, is_overtime, notes,
			permit_exit_at, permit_resume_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		session.ID,
		session.EmployeeID,
		session.Date,
		session.SessionNumber,
		session.CheckIn,
		session.CheckInPhoto,
		session.CheckInLocation,
		session.ShiftLabel,
		session.ShiftType,
		session.Status,
		session.IsOvertime,
		session.Notes,
		session.PermitExitAt,
		session.PermitResumeAt,
	).Scan(&session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Session{}, attendance.ErrSessionAlreadyOpen
		}
		return attendance.Session{}, fmt.Errorf("failed to create attendance session: %w", err)
	}

	return session, nil
}

// GetByID implements attendance.SessionRepository.
func (r *sessionRepository) GetByID(ctx context.Context, id string) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + ` FROM attendance_sessions s WHERE s.id = $1`

	session, err := scanSession(q.QueryRow(ctx, query, id), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("failed to get attendance session: %w", err)
	}
	return session, nil
}

// GetOpenSession implements attendance.SessionRepository.
func (r *sessionRepository) GetOpenSession(ctx context.Context, employeeID string) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions s
		WHERE s.employee_id = $1
		  AND s.check_in IS NOT NULL
		  AND s.check_out IS NULL
		ORDER BY s.check_in DESC
		LIMIT 1
	`

	session, err := scanSession(q.QueryRow(ctx, query, employeeID), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrNoOpenSession
		}
		return attendance.Session{}, fmt.Errorf("failed to get open session: %w", err)
	}
	return session, nil
}

// ListOpenBefore implements attendance.SessionRepository.
func (r *sessionRepository) ListOpenBefore(ctx context.Context, dateLocal string) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions s
		WHERE s.date < $1::date
		  AND s.check_in IS NOT NULL
		  AND s.check_out IS NULL
		ORDER BY s.date ASC
	`

	rows, err := q.Query(ctx, query, dateLocal)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale open sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		session, err := scanSession(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (r *sessionRepository) listByEmployeeAndDate(ctx context.Context, employeeID string, dateLocal string, forUpdate bool) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions s
		WHERE s.employee_id = $1 AND s.date = $2::date
		ORDER BY s.session_number ASC
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	rows, err := q.Query(ctx, query, employeeID, dateLocal)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		session, err := scanSession(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// ListByEmployeeAndDate implements attendance.SessionRepository.
func (r *sessionRepository) ListByEmployeeAndDate(ctx context.Context, employeeID string, dateLocal string) ([]attendance.Session, error) {
	return r.listByEmployeeAndDate(ctx, employeeID, dateLocal, false)
}

// LockByEmployeeAndDate implements attendance.SessionRepository.
func (r *sessionRepository) LockByEmployeeAndDate(ctx context.Context, employeeID string, dateLocal string) ([]attendance.Session, error) {
	return r.listByEmployeeAndDate(ctx, employeeID, dateLocal, true)
}

// Update implements attendance.SessionRepository.
func (r *sessionRepository) Update(ctx context.Context, session attendance.Session) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_sessions SET
			check_in = $2, check_in_photo = $3, check_in_location = $4,
			break_start = $5, break_start_photo = $6, break_start_location = $7,
			break_end = $8, break_end_photo = $9, break_end_location = $10,
			check_out = $11, check_out_photo = $12, check_out_location = $13,
			status = $14, is_overtime = $15, notes = $16,
			permit_exit_at = $17, permit_resume_at = $18,
			updated_at = now()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		session.ID,
		session.CheckIn, session.CheckInPhoto, session.CheckInLocation,
		session.BreakStart, session.BreakStartPhoto, session.BreakStartLocation,
		session.BreakEnd, session.BreakEndPhoto, session.BreakEndLocation,
		session.CheckOut, session.CheckOutPhoto, session.CheckOutLocation,
		session.Status, session.IsOvertime, session.Notes,
		session.PermitExitAt, session.PermitResumeAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrSessionNotFound
	}
	return nil
}

// ListByDateRange implements attendance.SessionRepository.
func (r *sessionRepository) ListByDateRange(ctx context.Context, employeeID *string, startLocal, endLocal string) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `, u.full_name, u.nik
		FROM attendance_sessions s
		JOIN users u ON u.id = s.employee_id
		WHERE s.date BETWEEN $1::date AND $2::date
	`
	args := []any{startLocal, endLocal}
	if employeeID != nil {
		query += ` AND s.employee_id = $3`
		args = append(args, *employeeID)
	}
	query += ` ORDER BY s.date DESC, u.full_name ASC, s.session_number ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions by date range: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		session, err := scanSession(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// CountByStatusAndDate implements attendance.SessionRepository. Employees are
// counted once even with several matching sessions.
func (r *sessionRepository) CountByStatusAndDate(ctx context.Context, dateLocal string, statuses []string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(DISTINCT employee_id)
		FROM attendance_sessions
		WHERE date = $1::date AND status = ANY($2)
	`

	var count int
	if err := q.QueryRow(ctx, query, dateLocal, statuses).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}
