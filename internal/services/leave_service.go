package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/repository"
)

type LeaveService struct {
	db        *pgxpool.Pool
	leaveRepo *repository.LeaveRepository
	notifier  Notifier
}

func NewLeaveService(db *pgxpool.Pool, leaveRepo *repository.LeaveRepository, notifier Notifier) *LeaveService {
	return &LeaveService{db: db, leaveRepo: leaveRepo, notifier: notifier}
}

type RequestLeaveInput struct {
	StartDate time.Time
	EndDate   time.Time
	Type      string
}

func (s *LeaveService) RequestLeave(
	ctx context.Context,
	actorID int64,
	role string,
	input RequestLeaveInput,
) (*models.LeaveRequest, error) {
	if role != models.RoleCoach {
		return nil, ErrForbidden
	}
	if input.Type != models.LeaveAnnual && input.Type != models.LeaveMedical {
		return nil, ErrInvalidInput
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, ErrInvalidInput
	}

	return s.leaveRepo.Create(ctx, repository.CreateLeaveInput{
		CoachID:   actorID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Type:      input.Type,
	})
}

func (s *LeaveService) ListLeave(
	ctx context.Context,
	actorID int64,
	role string,
	status string,
) ([]models.LeaveRequest, error) {
	switch role {
	case models.RoleAdmin, models.RoleMasterAdmin:
		return s.leaveRepo.List(ctx, 0, status)
	case models.RoleCoach:
		return s.leaveRepo.List(ctx, actorID, status)
	default:
		return nil, ErrForbidden
	}
}

// ReviewLeave applies the one-shot pending → approved|rejected transition
// and notifies the coach in the same transaction.
func (s *LeaveService) ReviewLeave(
	ctx context.Context,
	actorID int64,
	role string,
	leaveID int64,
	decision string,
) (*models.LeaveRequest, error) {
	if !models.IsAdminRole(role) {
		return nil, ErrForbidden
	}
	if decision != models.LeaveApproved && decision != models.LeaveRejected {
		return nil, ErrInvalidStatus
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txLeaveRepo := repository.NewLeaveRepository(tx)
	txNotificationRepo := repository.NewNotificationRepository(tx)

	leave, err := txLeaveRepo.ReviewIfPending(ctx, leaveID, actorID, decision)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the request does not exist or it was already reviewed.
			if _, getErr := s.leaveRepo.GetByID(ctx, leaveID); getErr != nil {
				return nil, getErr
			}
			return nil, ErrInvalidStateTransition
		}
		return nil, err
	}

	notification, err := txNotificationRepo.Create(ctx, repository.CreateNotificationInput{
		UserID: leave.CoachID,
		Title:  fmt.Sprintf("Leave %s", leave.Status),
		Message: fmt.Sprintf("Your %s leave from %s to %s was %s",
			leave.Type,
			leave.StartDate.Format("2006-01-02"),
			leave.EndDate.Format("2006-01-02"),
			leave.Status,
		),
		Type: "leave",
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Publish(*notification)
	}
	return leave, nil
}
