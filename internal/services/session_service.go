package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/payroll"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/repository"
)

var (
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrInvalidInput           = errors.New("invalid input")
	ErrCoachNotFound          = errors.New("coach not found")
)

// Notifier pushes a freshly inserted notification row to any connected
// clients of its recipient. Implemented by the websocket hub.
type Notifier interface {
	Publish(notification models.Notification)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type SessionService struct {
	db          *pgxpool.Pool
	sessionRepo *repository.SessionRepository
	rateRepo    *repository.RateRepository
	userRepo    userReader
	notifier    Notifier
}

func NewSessionService(
	db *pgxpool.Pool,
	sessionRepo *repository.SessionRepository,
	rateRepo *repository.RateRepository,
	userRepo userReader,
	notifier Notifier,
) *SessionService {
	return &SessionService{
		db:          db,
		sessionRepo: sessionRepo,
		rateRepo:    rateRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

type CreateSessionsInput struct {
	CoachID         int64
	MemberID        *int64
	ClientName      *string
	Date            string
	Time            string
	DurationMinutes int
	SessionType     string
	Notes           *string
	Repeat          int
}

// CreateSessions books one session, or a weekly recurring batch when Repeat
// is greater than one. The whole batch plus its notifications lands in a
// single transaction so a failed expansion never leaves partial rows.
func (s *SessionService) CreateSessions(
	ctx context.Context,
	actorID int64,
	role string,
	input CreateSessionsInput,
) ([]models.Session, error) {
	switch role {
	case models.RoleAdmin, models.RoleMasterAdmin:
	case models.RoleCoach:
		if input.CoachID != actorID {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	if input.CoachID <= 0 {
		return nil, ErrInvalidInput
	}
	if input.MemberID == nil && (input.ClientName == nil || strings.TrimSpace(*input.ClientName) == "") {
		return nil, ErrInvalidInput
	}
	if err := payroll.ValidateDuration(input.DurationMinutes); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	occurrences, err := payroll.WeeklyOccurrences(input.Date, input.Time, input.Repeat)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	coach, err := s.userRepo.GetByID(ctx, input.CoachID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}
	if coach.Role != models.RoleCoach {
		return nil, ErrCoachNotFound
	}

	rateCfg, err := s.rateRepo.GetByCoachID(ctx, input.CoachID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	quote := payroll.QuoteSession(input.SessionType, payroll.ResolveRates(rateCfg))

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewSessionRepository(tx)
	txNotificationRepo := repository.NewNotificationRepository(tx)

	sessions := make([]models.Session, 0, len(occurrences))
	notifications := make([]models.Notification, 0, 2*len(occurrences))
	for _, scheduledAt := range occurrences {
		session, err := txSessionRepo.Create(ctx, repository.CreateSessionInput{
			CoachID:         input.CoachID,
			MemberID:        input.MemberID,
			ClientName:      input.ClientName,
			ScheduledAt:     scheduledAt,
			DurationMinutes: input.DurationMinutes,
			SessionType:     input.SessionType,
			SessionRate:     quote.Rate,
			Commission:      quote.Commission,
			Notes:           input.Notes,
		})
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)

		created, err := txNotificationRepo.CreateMany(ctx, sessionNotifications(session))
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, created...)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.publish(notifications)
	return sessions, nil
}

func (s *SessionService) ListSessions(
	ctx context.Context,
	actorID int64,
	role string,
	filter repository.SessionListFilter,
) ([]models.Session, error) {
	switch role {
	case models.RoleAdmin, models.RoleMasterAdmin:
	case models.RoleCoach:
		filter.CoachID = actorID
		filter.MemberID = 0
	case models.RoleMember:
		filter.MemberID = actorID
		filter.CoachID = 0
	default:
		return nil, ErrForbidden
	}
	return s.sessionRepo.List(ctx, filter)
}

func (s *SessionService) GetSession(
	ctx context.Context,
	actorID int64,
	role string,
	sessionID int64,
) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !canAccessSession(role, actorID, session) {
		return nil, ErrForbidden
	}
	return session, nil
}

// UpdateStatus applies the one-shot scheduled → completed|cancelled
// transition. The guarded UPDATE is the only transition check, so two
// racing updates cannot both land.
func (s *SessionService) UpdateStatus(
	ctx context.Context,
	actorID int64,
	role string,
	sessionID int64,
	requestedStatus string,
) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	nextStatus, err := normalizeRequestedStatus(requestedStatus)
	if err != nil {
		return nil, err
	}
	if err := authorizeStatusChange(role, actorID, session, nextStatus); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewSessionRepository(tx)
	txNotificationRepo := repository.NewNotificationRepository(tx)

	updated, err := txSessionRepo.UpdateStatusIfCurrent(ctx, sessionID, models.SessionScheduled, nextStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidStateTransition
		}
		return nil, err
	}

	notifications, err := txNotificationRepo.CreateMany(ctx, statusNotifications(updated))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.publish(notifications)
	return updated, nil
}

// VerifySession flips the caller's own verification flag: coaches confirm
// the session was delivered, members confirm it was received.
func (s *SessionService) VerifySession(
	ctx context.Context,
	actorID int64,
	role string,
	sessionID int64,
) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch role {
	case models.RoleCoach:
		if session.CoachID != actorID {
			return nil, ErrForbidden
		}
		return s.sessionRepo.SetCoachVerified(ctx, sessionID)
	case models.RoleMember:
		if session.MemberID == nil || *session.MemberID != actorID {
			return nil, ErrForbidden
		}
		return s.sessionRepo.SetMemberVerified(ctx, sessionID)
	default:
		return nil, ErrForbidden
	}
}

func (s *SessionService) ApprovePayment(
	ctx context.Context,
	actorID int64,
	role string,
	sessionID int64,
) (*models.Session, error) {
	if !models.IsAdminRole(role) {
		return nil, ErrForbidden
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionCompleted {
		return nil, ErrInvalidStateTransition
	}

	session, err = s.sessionRepo.ApprovePayment(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	notification, err := repository.NewNotificationRepository(s.db).Create(ctx, repository.CreateNotificationInput{
		UserID:       session.CoachID,
		Title:        "Payment approved",
		Message:      fmt.Sprintf("Payment for your %s session was approved", session.SessionType),
		Type:         "payment",
		RefSessionID: &session.ID,
	})
	if err != nil {
		return nil, err
	}
	s.publish([]models.Notification{*notification})

	return session, nil
}

// DeleteSession hard-deletes a session row. Master admin only; everything
// else in the system soft-cancels.
func (s *SessionService) DeleteSession(
	ctx context.Context,
	actorID int64,
	role string,
	sessionID int64,
) error {
	if role != models.RoleMasterAdmin {
		return ErrForbidden
	}
	deleted, err := s.sessionRepo.Delete(ctx, sessionID)
	if err != nil {
		return err
	}
	if !deleted {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *SessionService) publish(notifications []models.Notification) {
	if s.notifier == nil {
		return
	}
	for _, notification := range notifications {
		s.notifier.Publish(notification)
	}
}

func sessionNotifications(session *models.Session) []repository.CreateNotificationInput {
	when := session.ScheduledAt.In(payroll.NewClock().Location()).Format("Mon 2 Jan 15:04")
	inputs := []repository.CreateNotificationInput{{
		UserID:       session.CoachID,
		Title:        "New PT session",
		Message:      fmt.Sprintf("A %s session was scheduled for %s", session.SessionType, when),
		Type:         "session",
		RefSessionID: &session.ID,
	}}
	if session.MemberID != nil {
		inputs = append(inputs, repository.CreateNotificationInput{
			UserID:       *session.MemberID,
			Title:        "PT session booked",
			Message:      fmt.Sprintf("Your %s session is booked for %s", session.SessionType, when),
			Type:         "session",
			RefSessionID: &session.ID,
		})
	}
	return inputs
}

func statusNotifications(session *models.Session) []repository.CreateNotificationInput {
	title := "Session completed"
	if session.Status == models.SessionCancelled {
		title = "Session cancelled"
	}
	inputs := []repository.CreateNotificationInput{{
		UserID:       session.CoachID,
		Title:        title,
		Message:      fmt.Sprintf("Session #%d is now %s", session.ID, session.Status),
		Type:         "session",
		RefSessionID: &session.ID,
	}}
	if session.MemberID != nil {
		inputs = append(inputs, repository.CreateNotificationInput{
			UserID:       *session.MemberID,
			Title:        title,
			Message:      fmt.Sprintf("Session #%d is now %s", session.ID, session.Status),
			Type:         "session",
			RefSessionID: &session.ID,
		})
	}
	return inputs
}

func canAccessSession(role string, actorID int64, session *models.Session) bool {
	if models.IsAdminRole(role) {
		return true
	}
	if role == models.RoleCoach {
		return session.CoachID == actorID
	}
	if role == models.RoleMember {
		return session.MemberID != nil && *session.MemberID == actorID
	}
	return false
}

func normalizeRequestedStatus(status string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "complete", "completed":
		return models.SessionCompleted, nil
	case "cancel", "cancelled", "canceled":
		return models.SessionCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

func authorizeStatusChange(role string, actorID int64, session *models.Session, nextStatus string) error {
	switch role {
	case models.RoleAdmin, models.RoleMasterAdmin:
		return nil
	case models.RoleCoach:
		if session.CoachID != actorID {
			return ErrForbidden
		}
		return nil
	case models.RoleMember:
		if session.MemberID == nil || *session.MemberID != actorID {
			return ErrForbidden
		}
		if nextStatus != models.SessionCancelled {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}
