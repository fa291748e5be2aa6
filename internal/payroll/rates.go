package payroll

import "github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"

// Fallback rate card used when a coach has no configuration row or the row
// has unset fields. Values match the gym's standard walk-in pricing.
const (
	DefaultSoloRate           = 80
	DefaultBuddyRate          = 120
	DefaultHouseCallRate      = 140
	DefaultCommissionFraction = 0.5
)

type Rates struct {
	Solo               float64
	Buddy              float64
	HouseCall          float64
	CommissionFraction float64
}

func DefaultRates() Rates {
	return Rates{
		Solo:               DefaultSoloRate,
		Buddy:              DefaultBuddyRate,
		HouseCall:          DefaultHouseCallRate,
		CommissionFraction: DefaultCommissionFraction,
	}
}

// ResolveRates fills a coach's rate card from their configuration row,
// falling back per field to the defaults. A nil cfg yields the full default
// card.
func ResolveRates(cfg *models.CoachRateConfig) Rates {
	rates := DefaultRates()
	if cfg == nil {
		return rates
	}
	if cfg.SoloRate != nil {
		rates.Solo = *cfg.SoloRate
	}
	if cfg.BuddyRate != nil {
		rates.Buddy = *cfg.BuddyRate
	}
	if cfg.HouseCallRate != nil {
		rates.HouseCall = *cfg.HouseCallRate
	}
	if cfg.CommissionFraction != nil {
		rates.CommissionFraction = *cfg.CommissionFraction
	}
	return rates
}
