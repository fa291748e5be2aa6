package repository

import (
	"context"
	"time"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
)

type CreateLeaveInput struct {
	CoachID   int64
	StartDate time.Time
	EndDate   time.Time
	Type      string
}

type LeaveRepository struct {
	db DBTX
}

func NewLeaveRepository(db DBTX) *LeaveRepository {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) Create(ctx context.Context, input CreateLeaveInput) (*models.LeaveRequest, error) {
	query := `
		INSERT INTO leave_requests (coach_id, start_date, end_date, type, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING id, coach_id, start_date, end_date, type, status, reviewer_id, reviewed_at, created_at
	`
	var leave models.LeaveRequest
	err := r.db.QueryRow(ctx, query,
		input.CoachID,
		input.StartDate,
		input.EndDate,
		input.Type,
	).Scan(
		&leave.ID,
		&leave.CoachID,
		&leave.StartDate,
		&leave.EndDate,
		&leave.Type,
		&leave.Status,
		&leave.ReviewerID,
		&leave.ReviewedAt,
		&leave.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *LeaveRepository) GetByID(ctx context.Context, leaveID int64) (*models.LeaveRequest, error) {
	query := `
		SELECT id, coach_id, start_date, end_date, type, status, reviewer_id, reviewed_at, created_at
		FROM leave_requests
		WHERE id = $1
	`
	var leave models.LeaveRequest
	err := r.db.QueryRow(ctx, query, leaveID).Scan(
		&leave.ID,
		&leave.CoachID,
		&leave.StartDate,
		&leave.EndDate,
		&leave.Type,
		&leave.Status,
		&leave.ReviewerID,
		&leave.ReviewedAt,
		&leave.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *LeaveRepository) List(ctx context.Context, coachID int64, status string) ([]models.LeaveRequest, error) {
	query := `
		SELECT id, coach_id, start_date, end_date, type, status, reviewer_id, reviewed_at, created_at
		FROM leave_requests
		WHERE ($1 = 0 OR coach_id = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, coachID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaves := make([]models.LeaveRequest, 0)
	for rows.Next() {
		var leave models.LeaveRequest
		if err := rows.Scan(
			&leave.ID,
			&leave.CoachID,
			&leave.StartDate,
			&leave.EndDate,
			&leave.Type,
			&leave.Status,
			&leave.ReviewerID,
			&leave.ReviewedAt,
			&leave.CreatedAt,
		); err != nil {
			return nil, err
		}
		leaves = append(leaves, leave)
	}
	return leaves, rows.Err()
}

// ReviewIfPending applies the one-shot pending → approved/rejected
// transition; the WHERE clause is the guard.
func (r *LeaveRepository) ReviewIfPending(
	ctx context.Context,
	leaveID int64,
	reviewerID int64,
	nextStatus string,
) (*models.LeaveRequest, error) {
	query := `
		UPDATE leave_requests
		SET status = $3, reviewer_id = $2, reviewed_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING id, coach_id, start_date, end_date, type, status, reviewer_id, reviewed_at, created_at
	`
	var leave models.LeaveRequest
	err := r.db.QueryRow(ctx, query, leaveID, reviewerID, nextStatus).Scan(
		&leave.ID,
		&leave.CoachID,
		&leave.StartDate,
		&leave.EndDate,
		&leave.Type,
		&leave.Status,
		&leave.ReviewerID,
		&leave.ReviewedAt,
		&leave.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &leave, nil
}
