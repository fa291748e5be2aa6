package models

import "time"

const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"

	LeaveAnnual  = "annual"
	LeaveMedical = "medical"
)

type LeaveRequest struct {
	ID         int64      `json:"id"`
	CoachID    int64      `json:"coach_id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	Type       string     `json:"type"`
	Status     string     `json:"status"`
	ReviewerID *int64     `json:"reviewer_id"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	CreatedAt  time.Time  `json:"created_at"`
}
