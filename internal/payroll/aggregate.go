package payroll

import (
	"sort"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
)

type CoachTotal struct {
	CoachID    int64   `json:"coach_id"`
	Sessions   int     `json:"sessions"`
	Commission float64 `json:"commission"`
	GymRevenue float64 `json:"gym_revenue"`
}

// AggregateByCoach sums commission and session counts per coach. Cancelled
// sessions never count toward payroll; the caller decides the time window
// via the repository query.
func AggregateByCoach(sessions []models.Session) []CoachTotal {
	totals := make(map[int64]*CoachTotal)
	for _, session := range sessions {
		if session.Status == models.SessionCancelled {
			continue
		}
		total, ok := totals[session.CoachID]
		if !ok {
			total = &CoachTotal{CoachID: session.CoachID}
			totals[session.CoachID] = total
		}
		total.Sessions++
		total.Commission += session.Commission
		total.GymRevenue += session.SessionRate - session.Commission
	}

	result := make([]CoachTotal, 0, len(totals))
	for _, total := range totals {
		result = append(result, *total)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CoachID < result[j].CoachID })
	return result
}

// ProjectYearToDate extrapolates a single month's total across the months
// elapsed so far. A linear approximation, not a sum of actual history, so
// callers label it as projected.
func ProjectYearToDate(monthTotal float64, monthsElapsed int) float64 {
	if monthsElapsed < 1 {
		return 0
	}
	return monthTotal * float64(monthsElapsed)
}
