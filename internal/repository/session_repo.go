package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
)

const sessionColumns = `id, coach_id, member_id, client_name, scheduled_at, duration_min,
	session_type, session_rate, commission, coach_verified, member_verified,
	payment_approved, status, notes, created_at, updated_at`

type CreateSessionInput struct {
	CoachID         int64
	MemberID        *int64
	ClientName      *string
	ScheduledAt     time.Time
	DurationMinutes int
	SessionType     string
	SessionRate     float64
	Commission      float64
	Notes           *string
}

type SessionListFilter struct {
	CoachID  int64
	MemberID int64
	Status   string
	From     time.Time
	To       time.Time
}

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func scanSession(row interface{ Scan(dest ...any) error }, session *models.Session) error {
	return row.Scan(
		&session.ID,
		&session.CoachID,
		&session.MemberID,
		&session.ClientName,
		&session.ScheduledAt,
		&session.DurationMinutes,
		&session.SessionType,
		&session.SessionRate,
		&session.Commission,
		&session.CoachVerified,
		&session.MemberVerified,
		&session.PaymentApproved,
		&session.Status,
		&session.Notes,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
}

func (r *SessionRepository) Create(ctx context.Context, input CreateSessionInput) (*models.Session, error) {
	query := fmt.Sprintf(`
		INSERT INTO pt_sessions (coach_id, member_id, client_name, scheduled_at, duration_min,
			session_type, session_rate, commission, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'scheduled', $9)
		RETURNING %s
	`, sessionColumns)

	var session models.Session
	err := scanSession(r.db.QueryRow(ctx, query,
		input.CoachID,
		input.MemberID,
		input.ClientName,
		input.ScheduledAt,
		input.DurationMinutes,
		input.SessionType,
		input.SessionRate,
		input.Commission,
		input.Notes,
	), &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID int64) (*models.Session, error) {
	query := fmt.Sprintf(`SELECT %s FROM pt_sessions WHERE id = $1`, sessionColumns)

	var session models.Session
	if err := scanSession(r.db.QueryRow(ctx, query, sessionID), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) List(ctx context.Context, filter SessionListFilter) ([]models.Session, error) {
	args := []any{}
	whereParts := []string{}

	if filter.CoachID > 0 {
		args = append(args, filter.CoachID)
		whereParts = append(whereParts, fmt.Sprintf("coach_id = $%d", len(args)))
	}
	if filter.MemberID > 0 {
		args = append(args, filter.MemberID)
		whereParts = append(whereParts, fmt.Sprintf("member_id = $%d", len(args)))
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		args = append(args, status)
		whereParts = append(whereParts, fmt.Sprintf("status = $%d", len(args)))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		whereParts = append(whereParts, fmt.Sprintf("scheduled_at >= $%d", len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		whereParts = append(whereParts, fmt.Sprintf("scheduled_at < $%d", len(args)))
	}

	where := ""
	if len(whereParts) > 0 {
		where = "WHERE " + strings.Join(whereParts, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM pt_sessions
		%s
		ORDER BY scheduled_at ASC, id ASC
	`, sessionColumns, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		var session models.Session
		if err := scanSession(rows, &session); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// ListInRange returns every session scheduled inside [from, to) regardless
// of coach. Feeds the payroll aggregator.
func (r *SessionRepository) ListInRange(ctx context.Context, from, to time.Time) ([]models.Session, error) {
	return r.List(ctx, SessionListFilter{From: from, To: to})
}

func (r *SessionRepository) UpdateStatusIfCurrent(
	ctx context.Context,
	sessionID int64,
	currentStatus string,
	nextStatus string,
) (*models.Session, error) {
	query := fmt.Sprintf(`
		UPDATE pt_sessions
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING %s
	`, sessionColumns)

	var session models.Session
	if err := scanSession(r.db.QueryRow(ctx, query, sessionID, currentStatus, nextStatus), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) SetCoachVerified(ctx context.Context, sessionID int64) (*models.Session, error) {
	query := fmt.Sprintf(`
		UPDATE pt_sessions
		SET coach_verified = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, sessionColumns)

	var session models.Session
	if err := scanSession(r.db.QueryRow(ctx, query, sessionID), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) SetMemberVerified(ctx context.Context, sessionID int64) (*models.Session, error) {
	query := fmt.Sprintf(`
		UPDATE pt_sessions
		SET member_verified = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, sessionColumns)

	var session models.Session
	if err := scanSession(r.db.QueryRow(ctx, query, sessionID), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) ApprovePayment(ctx context.Context, sessionID int64) (*models.Session, error) {
	query := fmt.Sprintf(`
		UPDATE pt_sessions
		SET payment_approved = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, sessionColumns)

	var session models.Session
	if err := scanSession(r.db.QueryRow(ctx, query, sessionID), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete hard-deletes a session. Only the master admin path calls this.
func (r *SessionRepository) Delete(ctx context.Context, sessionID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM pt_sessions WHERE id = $1`, sessionID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
