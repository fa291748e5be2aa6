package payroll

import "math"

const (
	TypeSoloSingle      = "solo_single"
	TypeBuddySingle     = "buddy_single"
	TypeHouseCallSingle = "house_call_single"
)

// Fallback quote for session types missing from the rate table. Unknown
// types price as a standard solo session instead of failing the booking.
const (
	fallbackRate       = 80
	fallbackCommission = 40
)

type Quote struct {
	Rate       float64 `json:"rate"`
	Commission float64 `json:"commission"`
	GymRevenue float64 `json:"gym_revenue"`
}

// QuoteSession prices one session: commission is the coach payout, rounded
// to the nearest dollar, and the gym keeps the remainder.
func QuoteSession(sessionType string, rates Rates) Quote {
	var rate float64
	switch sessionType {
	case TypeSoloSingle:
		rate = rates.Solo
	case TypeBuddySingle:
		rate = rates.Buddy
	case TypeHouseCallSingle:
		rate = rates.HouseCall
	default:
		return Quote{
			Rate:       fallbackRate,
			Commission: fallbackCommission,
			GymRevenue: fallbackRate - fallbackCommission,
		}
	}

	commission := math.Round(rate * rates.CommissionFraction)
	return Quote{
		Rate:       rate,
		Commission: commission,
		GymRevenue: rate - commission,
	}
}
