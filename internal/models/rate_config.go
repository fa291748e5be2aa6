package models

import "time"

// CoachRateConfig is the per-coach rate card read by every payroll
// computation. Missing fields fall back to the defaults in internal/payroll.
type CoachRateConfig struct {
	ID                 int64     `json:"id"`
	CoachID            int64     `json:"coach_id"`
	SoloRate           *float64  `json:"solo_rate"`
	BuddyRate          *float64  `json:"buddy_rate"`
	HouseCallRate      *float64  `json:"house_call_rate"`
	CommissionFraction *float64  `json:"commission_fraction"`
	UpdatedAt          time.Time `json:"updated_at"`
}
