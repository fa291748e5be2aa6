package services

import (
	"context"
	"time"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/payroll"
)

type sessionRangeLister interface {
	ListInRange(ctx context.Context, from, to time.Time) ([]models.Session, error)
}

type EarningsService struct {
	sessions sessionRangeLister
	clock    *payroll.Clock
}

func NewEarningsService(sessions sessionRangeLister, clock *payroll.Clock) *EarningsService {
	return &EarningsService{sessions: sessions, clock: clock}
}

type WeeklyEarnings struct {
	WeekStart time.Time            `json:"week_start"`
	WeekEnd   time.Time            `json:"week_end"`
	Coaches   []payroll.CoachTotal `json:"coaches"`
}

type MonthlyCoachEarnings struct {
	payroll.CoachTotal
	ProjectedYTD float64 `json:"projected_ytd"`
}

type MonthlyEarnings struct {
	MonthStart    time.Time              `json:"month_start"`
	MonthEnd      time.Time              `json:"month_end"`
	MonthsElapsed int                    `json:"months_elapsed"`
	Coaches       []MonthlyCoachEarnings `json:"coaches"`
}

// Weekly aggregates per-coach commission for the SGT week containing ref.
func (s *EarningsService) Weekly(ctx context.Context, ref time.Time) (*WeeklyEarnings, error) {
	start, end := s.clock.WeekBounds(ref)
	sessions, err := s.sessions.ListInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &WeeklyEarnings{
		WeekStart: start,
		WeekEnd:   end,
		Coaches:   payroll.AggregateByCoach(sessions),
	}, nil
}

// Monthly aggregates the SGT calendar month containing ref and attaches the
// linear year-to-date projection for each coach.
func (s *EarningsService) Monthly(ctx context.Context, ref time.Time) (*MonthlyEarnings, error) {
	start, end := s.clock.MonthBounds(ref)
	sessions, err := s.sessions.ListInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	monthsElapsed := s.clock.MonthsElapsed(ref)
	totals := payroll.AggregateByCoach(sessions)
	coaches := make([]MonthlyCoachEarnings, 0, len(totals))
	for _, total := range totals {
		coaches = append(coaches, MonthlyCoachEarnings{
			CoachTotal:   total,
			ProjectedYTD: payroll.ProjectYearToDate(total.Commission, monthsElapsed),
		})
	}

	return &MonthlyEarnings{
		MonthStart:    start,
		MonthEnd:      end,
		MonthsElapsed: monthsElapsed,
		Coaches:       coaches,
	}, nil
}
