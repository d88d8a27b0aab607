package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/swap"
	"github.com/absensi-nh/absensi-backend-go/internal/pkg/database"
)

type swapRepository struct {
	db *database.DB
}

func NewSwapRepository(db *database.DB) swap.RequestRepository {
	return &swapRepository{db: db}
}

const swapColumns = `
	r.id, r.requester_id, r.target_user_id, r.requester_date, r.target_date,
	r.reason, r.status, r.created_at, req.full_name, tgt.full_name`

const swapJoins = `
	FROM swap_requests r
	JOIN users req ON req.id = r.requester_id
	JOIN users tgt ON tgt.id = r.target_user_id`

func scanSwap(row rowScanner) (swap.Request, error) {
	var s swap.Request
	err := row.Scan(
		&s.ID, &s.RequesterID, &s.TargetUserID, &s.RequesterDate, &s.TargetDate,
		&s.Reason, &s.Status, &s.CreatedAt, &s.RequesterName, &s.TargetName,
	)
	return s, err
}

// Create implements swap.RequestRepository.
func (r *swapRepository) Create(ctx context.Context, request swap.Request) (swap.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO swap_requests (id, requester_id, target_user_id, requester_date, target_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		request.ID,
		request.RequesterID,
		request.TargetUserID,
		request.RequesterDate,
		request.TargetDate,
		request.Reason,
		request.Status,
	).Scan(&request.CreatedAt)
	if err != nil {
		return swap.Request{}, fmt.Errorf("failed to create swap request: %w", err)
	}

	return request, nil
}

// GetByID implements swap.RequestRepository.
func (r *swapRepository) GetByID(ctx context.Context, id string) (swap.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + swapColumns + swapJoins + ` WHERE r.id = $1`

	request, err := scanSwap(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return swap.Request{}, swap.ErrRequestNotFound
		}
		return swap.Request{}, fmt.Errorf("failed to get swap request: %w", err)
	}
	return request, nil
}

// List implements swap.RequestRepository.
func (r *swapRepository) List(ctx context.Context, userID *string) ([]swap.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + swapColumns + swapJoins
	var args []any
	if userID != nil {
		query += ` WHERE r.requester_id = $1 OR r.target_user_id = $1`
		args = append(args, *userID)
	}
	query += ` ORDER BY r.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list swap requests: %w", err)
	}
	defer rows.Close()

	var requests []swap.Request
	for rows.Next() {
		request, err := scanSwap(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan swap request: %w", err)
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

// UpdateStatus implements swap.RequestRepository. The pending guard lives in
// the WHERE clause so two concurrent decisions cannot both win.
func (r *swapRepository) UpdateStatus(ctx context.Context, id string, status string) (swap.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE swap_requests
		SET status = $2
		WHERE id = $1 AND status = 'pending'
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, status).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return swap.Request{}, getErr
			}
			return swap.Request{}, swap.ErrAlreadyDecided
		}
		return swap.Request{}, fmt.Errorf("failed to update swap request: %w", err)
	}

	return r.GetByID(ctx, id)
}
