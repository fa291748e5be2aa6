package payroll

import (
	"math"
	"testing"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestResolveRatesUsesDefaultsWhenConfigMissing(t *testing.T) {
	rates := ResolveRates(nil)
	if rates.Solo != 80 || rates.Buddy != 120 || rates.HouseCall != 140 {
		t.Fatalf("unexpected default rates: %+v", rates)
	}
	if rates.CommissionFraction != 0.5 {
		t.Fatalf("expected default commission fraction 0.5, got %v", rates.CommissionFraction)
	}
}

func TestResolveRatesFallsBackPerField(t *testing.T) {
	cfg := &models.CoachRateConfig{
		CoachID:  7,
		SoloRate: floatPtr(95),
	}
	rates := ResolveRates(cfg)
	if rates.Solo != 95 {
		t.Fatalf("expected configured solo rate 95, got %v", rates.Solo)
	}
	if rates.Buddy != 120 || rates.HouseCall != 140 || rates.CommissionFraction != 0.5 {
		t.Fatalf("expected defaults for unset fields, got %+v", rates)
	}
}

func TestQuoteSessionSplitsEveryKnownType(t *testing.T) {
	rates := Rates{Solo: 80, Buddy: 120, HouseCall: 140, CommissionFraction: 0.5}

	for _, sessionType := range []string{TypeSoloSingle, TypeBuddySingle, TypeHouseCallSingle} {
		quote := QuoteSession(sessionType, rates)
		if quote.Commission != math.Round(quote.Rate*rates.CommissionFraction) {
			t.Fatalf("%s: commission %v is not round(rate × fraction)", sessionType, quote.Commission)
		}
		if quote.GymRevenue != quote.Rate-quote.Commission {
			t.Fatalf("%s: gym revenue %v != rate - commission", sessionType, quote.GymRevenue)
		}
		if quote.GymRevenue < 0 {
			t.Fatalf("%s: negative gym revenue %v with fraction <= 1", sessionType, quote.GymRevenue)
		}
	}
}

func TestQuoteSessionSoloSingleAtDefaultCard(t *testing.T) {
	quote := QuoteSession(TypeSoloSingle, Rates{Solo: 80, CommissionFraction: 0.5})
	if quote.Rate != 80 {
		t.Fatalf("expected session rate 80, got %v", quote.Rate)
	}
	if quote.Commission != 40 {
		t.Fatalf("expected commission 40, got %v", quote.Commission)
	}
	if quote.GymRevenue != 40 {
		t.Fatalf("expected gym revenue 40, got %v", quote.GymRevenue)
	}
}

func TestQuoteSessionUnknownTypeFallsBack(t *testing.T) {
	rates := Rates{Solo: 200, Buddy: 300, HouseCall: 400, CommissionFraction: 0.9}

	for _, sessionType := range []string{"", "solo", "solo_signle", "trial"} {
		quote := QuoteSession(sessionType, rates)
		if quote.Rate != 80 || quote.Commission != 40 {
			t.Fatalf("%q: expected fallback rate 80 / commission 40, got %+v", sessionType, quote)
		}
		if quote.GymRevenue != 40 {
			t.Fatalf("%q: expected fallback gym revenue 40, got %v", sessionType, quote.GymRevenue)
		}
	}
}

func TestQuoteSessionRoundsCommission(t *testing.T) {
	quote := QuoteSession(TypeSoloSingle, Rates{Solo: 85, CommissionFraction: 0.45})
	if quote.Commission != 38 {
		t.Fatalf("expected commission round(85 × 0.45) = 38, got %v", quote.Commission)
	}
	if quote.GymRevenue != 47 {
		t.Fatalf("expected gym revenue 47, got %v", quote.GymRevenue)
	}
}
