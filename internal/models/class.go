package models

import "time"

type Class struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClassDetail carries the assigned coach ids in assignment order. The first
// entry is the lead coach.
type ClassDetail struct {
	Class
	CoachIDs []int64 `json:"coach_ids"`
}

func (d *ClassDetail) LeadCoachID() *int64 {
	if len(d.CoachIDs) == 0 {
		return nil
	}
	return &d.CoachIDs[0]
}
