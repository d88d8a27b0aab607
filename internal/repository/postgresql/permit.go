package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/permit"
	"github.com/absensi-nh/absensi-backend-go/internal/pkg/database"
)

type permitRepository struct {
	db *database.DB
}

func NewPermitRepository(db *database.DB) permit.PermitRepository {
	return &permitRepository{db: db}
}

const permitColumns = `
	p.id, p.employee_id, p.type, p.start_date, p.end_date,
	p.reason, p.status, p.created_at, u.full_name`

const permitJoins = `
	FROM leave_permits p
	JOIN users u ON u.id = p.employee_id`

func scanPermit(row rowScanner) (permit.Permit, error) {
	var p permit.Permit
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Type, &p.StartDate, &p.EndDate,
		&p.Reason, &p.Status, &p.CreatedAt, &p.EmployeeName,
	)
	return p, err
}

// Create implements permit.PermitRepository.
func (r *permitRepository) Create(ctx context.Context, p permit.Permit) (permit.Permit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_permits (id, employee_id, type, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		p.ID,
		p.EmployeeID,
		p.Type,
		p.StartDate,
		p.EndDate,
		p.Reason,
		p.Status,
	).Scan(&p.CreatedAt)
	if err != nil {
		return permit.Permit{}, fmt.Errorf("failed to create permit: %w", err)
	}

	return p, nil
}

// GetByID implements permit.PermitRepository.
func (r *permitRepository) GetByID(ctx context.Context, id string) (permit.Permit, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + permitColumns + permitJoins + ` WHERE p.id = $1`

	p, err := scanPermit(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return permit.Permit{}, permit.ErrPermitNotFound
		}
		return permit.Permit{}, fmt.Errorf("failed to get permit: %w", err)
	}
	return p, nil
}

// List implements permit.PermitRepository.
func (r *permitRepository) List(ctx context.Context, employeeID *string) ([]permit.Permit, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + permitColumns + permitJoins
	var args []any
	if employeeID != nil {
		query += ` WHERE p.employee_id = $1`
		args = append(args, *employeeID)
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list permits: %w", err)
	}
	defer rows.Close()

	var permits []permit.Permit
	for rows.Next() {
		p, err := scanPermit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan permit: %w", err)
		}
		permits = append(permits, p)
	}
	return permits, rows.Err()
}

// UpdateStatus implements permit.PermitRepository.
func (r *permitRepository) UpdateStatus(ctx context.Context, id string, status string) (permit.Permit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_permits
		SET status = $2
		WHERE id = $1 AND status = 'pending'
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, status).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return permit.Permit{}, getErr
			}
			return permit.Permit{}, permit.ErrAlreadyDecided
		}
		return permit.Permit{}, fmt.Errorf("failed to update permit: %w", err)
	}

	return r.GetByID(ctx, id)
}
