package models

import "time"

const (
	SessionScheduled = "scheduled"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

type Session struct {
	ID              int64     `json:"id"`
	CoachID         int64     `json:"coach_id"`
	MemberID        *int64    `json:"member_id"`
	ClientName      *string   `json:"client_name"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	SessionType     string    `json:"session_type"`
	SessionRate     float64   `json:"session_rate"`
	Commission      float64   `json:"commission"`
	CoachVerified   bool      `json:"coach_verified"`
	MemberVerified  bool      `json:"member_verified"`
	PaymentApproved bool      `json:"payment_approved"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
