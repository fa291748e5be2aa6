package models

import "time"

type Notification struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	Type         string    `json:"type"`
	Read         bool      `json:"read"`
	RefSessionID *int64    `json:"ref_session_id"`
	CreatedAt    time.Time `json:"created_at"`
}
