package services

import (
	"context"
	"testing"
	"time"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/payroll"
)

type stubSessionLister struct {
	sessions []models.Session
	err      error
	lastFrom time.Time
	lastTo   time.Time
}

func (s *stubSessionLister) ListInRange(_ context.Context, from, to time.Time) ([]models.Session, error) {
	s.lastFrom = from
	s.lastTo = to
	return s.sessions, s.err
}

func TestWeeklyEarningsQueriesSGTWeekWindow(t *testing.T) {
	lister := &stubSessionLister{
		sessions: []models.Session{
			{CoachID: 1, SessionRate: 80, Commission: 40, Status: models.SessionCompleted},
			{CoachID: 1, SessionRate: 80, Commission: 40, Status: models.SessionCompleted},
			{CoachID: 2, SessionRate: 120, Commission: 60, Status: models.SessionCompleted},
		},
	}
	service := NewEarningsService(lister, payroll.NewClock())

	// Wednesday 2024-06-05 10:00 SGT.
	ref := time.Date(2024, 6, 5, 2, 0, 0, 0, time.UTC)
	earnings, err := service.Weekly(context.Background(), ref)
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}

	// Monday 2024-06-03 00:00 SGT = 2024-06-02 16:00 UTC.
	wantStart := time.Date(2024, 6, 2, 16, 0, 0, 0, time.UTC)
	if !lister.lastFrom.Equal(wantStart) {
		t.Fatalf("expected query from %v, got %v", wantStart, lister.lastFrom)
	}
	if !lister.lastTo.Equal(wantStart.AddDate(0, 0, 7)) {
		t.Fatalf("expected 7-day query window, got to %v", lister.lastTo)
	}

	if len(earnings.Coaches) != 2 {
		t.Fatalf("expected 2 coaches, got %d", len(earnings.Coaches))
	}
	if earnings.Coaches[0].CoachID != 1 || earnings.Coaches[0].Commission != 80 {
		t.Fatalf("coach 1: expected 80 commission, got %+v", earnings.Coaches[0])
	}
}

func TestMonthlyEarningsProjectsYearToDate(t *testing.T) {
	lister := &stubSessionLister{
		sessions: []models.Session{
			{CoachID: 5, SessionRate: 80, Commission: 40, Status: models.SessionCompleted},
			{CoachID: 5, SessionRate: 140, Commission: 70, Status: models.SessionCompleted},
		},
	}
	service := NewEarningsService(lister, payroll.NewClock())

	// June 2024, so six months elapsed.
	ref := time.Date(2024, 6, 15, 2, 0, 0, 0, time.UTC)
	earnings, err := service.Monthly(context.Background(), ref)
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}

	if earnings.MonthsElapsed != 6 {
		t.Fatalf("expected 6 months elapsed, got %d", earnings.MonthsElapsed)
	}
	if len(earnings.Coaches) != 1 {
		t.Fatalf("expected 1 coach, got %d", len(earnings.Coaches))
	}
	coach := earnings.Coaches[0]
	if coach.Commission != 110 {
		t.Fatalf("expected month total 110, got %v", coach.Commission)
	}
	if coach.ProjectedYTD != 660 {
		t.Fatalf("expected projected YTD 660, got %v", coach.ProjectedYTD)
	}

	// June 1 00:00 SGT = May 31 16:00 UTC.
	wantStart := time.Date(2024, 5, 31, 16, 0, 0, 0, time.UTC)
	if !lister.lastFrom.Equal(wantStart) {
		t.Fatalf("expected month window from %v, got %v", wantStart, lister.lastFrom)
	}
}

func TestMonthlyEarningsExcludesCancelledSessions(t *testing.T) {
	lister := &stubSessionLister{
		sessions: []models.Session{
			{CoachID: 5, SessionRate: 80, Commission: 40, Status: models.SessionCancelled},
		},
	}
	service := NewEarningsService(lister, payroll.NewClock())

	earnings, err := service.Monthly(context.Background(), time.Date(2024, 6, 15, 2, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}
	if len(earnings.Coaches) != 0 {
		t.Fatalf("expected no payable coaches, got %+v", earnings.Coaches)
	}
}
