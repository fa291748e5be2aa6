package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/payroll"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/repository"
)

type ClassService struct {
	db        *pgxpool.Pool
	classRepo *repository.ClassRepository
	notifier  Notifier
}

func NewClassService(db *pgxpool.Pool, classRepo *repository.ClassRepository, notifier Notifier) *ClassService {
	return &ClassService{db: db, classRepo: classRepo, notifier: notifier}
}

type CreateClassInput struct {
	Name      string
	DayOfWeek int
	StartTime string
	EndTime   string
	Capacity  int
	CoachIDs  []int64
}

type UpdateClassInput struct {
	Name      *string
	DayOfWeek *int
	StartTime *string
	EndTime   *string
	Capacity  *int
	CoachIDs  []int64
}

func (s *ClassService) CreateClass(
	ctx context.Context,
	role string,
	input CreateClassInput,
) (*models.ClassDetail, error) {
	if !models.IsAdminRole(role) {
		return nil, ErrForbidden
	}
	if err := validateClassInput(input); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txClassRepo := repository.NewClassRepository(tx)
	txNotificationRepo := repository.NewNotificationRepository(tx)

	class, err := txClassRepo.Create(ctx, repository.CreateClassInput{
		Name:      input.Name,
		DayOfWeek: input.DayOfWeek,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Capacity:  input.Capacity,
	})
	if err != nil {
		return nil, err
	}
	if err := txClassRepo.ReplaceCoaches(ctx, class.ID, input.CoachIDs); err != nil {
		return nil, err
	}

	notifications, err := txNotificationRepo.CreateMany(ctx, classNotifications(class, input.CoachIDs, "You were assigned to class"))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.publishAll(notifications)
	return &models.ClassDetail{Class: *class, CoachIDs: input.CoachIDs}, nil
}

func (s *ClassService) ListClasses(ctx context.Context) ([]models.ClassDetail, error) {
	classes, err := s.classRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	classIDs := make([]int64, 0, len(classes))
	for _, class := range classes {
		classIDs = append(classIDs, class.ID)
	}
	assignments, err := s.classRepo.ListCoachIDsByClass(ctx, classIDs)
	if err != nil {
		return nil, err
	}

	details := make([]models.ClassDetail, 0, len(classes))
	for _, class := range classes {
		details = append(details, models.ClassDetail{
			Class:    class,
			CoachIDs: assignments[class.ID],
		})
	}
	return details, nil
}

func (s *ClassService) GetClass(ctx context.Context, classID int64) (*models.ClassDetail, error) {
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	coachIDs, err := s.classRepo.GetCoachIDs(ctx, classID)
	if err != nil {
		return nil, err
	}
	return &models.ClassDetail{Class: *class, CoachIDs: coachIDs}, nil
}

// UpdateClass changes the slot, replaces the coach assignment list, and
// notifies the new coach set, all inside one transaction.
func (s *ClassService) UpdateClass(
	ctx context.Context,
	role string,
	classID int64,
	input UpdateClassInput,
) (*models.ClassDetail, error) {
	if !models.IsAdminRole(role) {
		return nil, ErrForbidden
	}
	if input.StartTime != nil && !payroll.ValidClockTime(*input.StartTime) {
		return nil, ErrInvalidInput
	}
	if input.EndTime != nil && !payroll.ValidClockTime(*input.EndTime) {
		return nil, ErrInvalidInput
	}
	if input.DayOfWeek != nil && (*input.DayOfWeek < 0 || *input.DayOfWeek > 6) {
		return nil, ErrInvalidInput
	}
	if input.Capacity != nil && *input.Capacity <= 0 {
		return nil, ErrInvalidInput
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txClassRepo := repository.NewClassRepository(tx)
	txNotificationRepo := repository.NewNotificationRepository(tx)

	class, err := txClassRepo.Update(ctx, classID, repository.UpdateClassInput{
		Name:      input.Name,
		DayOfWeek: input.DayOfWeek,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Capacity:  input.Capacity,
	})
	if err != nil {
		return nil, err
	}

	coachIDs := input.CoachIDs
	if coachIDs != nil {
		if len(coachIDs) == 0 {
			return nil, ErrInvalidInput
		}
		if err := txClassRepo.ReplaceCoaches(ctx, classID, coachIDs); err != nil {
			return nil, err
		}
	} else {
		coachIDs, err = txClassRepo.GetCoachIDs(ctx, classID)
		if err != nil {
			return nil, err
		}
	}

	notifications, err := txNotificationRepo.CreateMany(ctx, classNotifications(class, coachIDs, "Class schedule updated"))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.publishAll(notifications)
	return &models.ClassDetail{Class: *class, CoachIDs: coachIDs}, nil
}

func (s *ClassService) publishAll(notifications []models.Notification) {
	if s.notifier == nil {
		return
	}
	for _, notification := range notifications {
		s.notifier.Publish(notification)
	}
}

func validateClassInput(input CreateClassInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrInvalidInput
	}
	if input.DayOfWeek < 0 || input.DayOfWeek > 6 {
		return ErrInvalidInput
	}
	if !payroll.ValidClockTime(input.StartTime) || !payroll.ValidClockTime(input.EndTime) {
		return ErrInvalidInput
	}
	if input.Capacity <= 0 {
		return ErrInvalidInput
	}
	if len(input.CoachIDs) == 0 {
		return ErrInvalidInput
	}
	return nil
}

func classNotifications(class *models.Class, coachIDs []int64, title string) []repository.CreateNotificationInput {
	inputs := make([]repository.CreateNotificationInput, 0, len(coachIDs))
	for _, coachID := range coachIDs {
		inputs = append(inputs, repository.CreateNotificationInput{
			UserID:  coachID,
			Title:   title,
			Message: fmt.Sprintf("%s: day %d, %s-%s", class.Name, class.DayOfWeek, class.StartTime, class.EndTime),
			Type:    "class",
		})
	}
	return inputs
}
