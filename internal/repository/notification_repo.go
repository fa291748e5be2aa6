package repository

import (
	"context"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
)

type CreateNotificationInput struct {
	UserID       int64
	Title        string
	Message      string
	Type         string
	RefSessionID *int64
}

type NotificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, input CreateNotificationInput) (*models.Notification, error) {
	query := `
		INSERT INTO notifications (user_id, title, message, type, ref_session_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, title, message, type, read, ref_session_id, created_at
	`
	var notification models.Notification
	err := r.db.QueryRow(ctx, query,
		input.UserID,
		input.Title,
		input.Message,
		input.Type,
		input.RefSessionID,
	).Scan(
		&notification.ID,
		&notification.UserID,
		&notification.Title,
		&notification.Message,
		&notification.Type,
		&notification.Read,
		&notification.RefSessionID,
		&notification.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepository) CreateMany(ctx context.Context, inputs []CreateNotificationInput) ([]models.Notification, error) {
	notifications := make([]models.Notification, 0, len(inputs))
	for _, input := range inputs {
		notification, err := r.Create(ctx, input)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *notification)
	}
	return notifications, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, read, ref_session_id, created_at
		FROM notifications
		WHERE user_id = $1
	`
	if unreadOnly {
		query += ` AND read = FALSE`
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var notification models.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.Title,
			&notification.Message,
			&notification.Type,
			&notification.Read,
			&notification.RefSessionID,
			&notification.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) CountByUser(ctx context.Context, userID int64, unreadOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND read = FALSE`
	}
	var total int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`,
		notificationID, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
