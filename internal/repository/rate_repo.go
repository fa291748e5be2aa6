package repository

import (
	"context"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
)

type UpdateRatesInput struct {
	SoloRate           *float64
	BuddyRate          *float64
	HouseCallRate      *float64
	CommissionFraction *float64
}

type RateRepository struct {
	db DBTX
}

func NewRateRepository(db DBTX) *RateRepository {
	return &RateRepository{db: db}
}

func (r *RateRepository) GetByCoachID(ctx context.Context, coachID int64) (*models.CoachRateConfig, error) {
	query := `
		SELECT id, coach_id, solo_rate, buddy_rate, house_call_rate, commission_fraction, updated_at
		FROM coach_rates
		WHERE coach_id = $1
	`
	var cfg models.CoachRateConfig
	err := r.db.QueryRow(ctx, query, coachID).Scan(
		&cfg.ID,
		&cfg.CoachID,
		&cfg.SoloRate,
		&cfg.BuddyRate,
		&cfg.HouseCallRate,
		&cfg.CommissionFraction,
		&cfg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *RateRepository) CreateEmpty(ctx context.Context, coachID int64) error {
	query := `INSERT INTO coach_rates (coach_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, coachID)
	return err
}

func (r *RateRepository) Upsert(ctx context.Context, coachID int64, input UpdateRatesInput) (*models.CoachRateConfig, error) {
	query := `
		INSERT INTO coach_rates (coach_id, solo_rate, buddy_rate, house_call_rate, commission_fraction)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (coach_id) DO UPDATE
		SET solo_rate = COALESCE($2, coach_rates.solo_rate),
			buddy_rate = COALESCE($3, coach_rates.buddy_rate),
			house_call_rate = COALESCE($4, coach_rates.house_call_rate),
			commission_fraction = COALESCE($5, coach_rates.commission_fraction),
			updated_at = NOW()
		RETURNING id, coach_id, solo_rate, buddy_rate, house_call_rate, commission_fraction, updated_at
	`
	var cfg models.CoachRateConfig
	err := r.db.QueryRow(ctx, query,
		coachID,
		input.SoloRate,
		input.BuddyRate,
		input.HouseCallRate,
		input.CommissionFraction,
	).Scan(
		&cfg.ID,
		&cfg.CoachID,
		&cfg.SoloRate,
		&cfg.BuddyRate,
		&cfg.HouseCallRate,
		&cfg.CommissionFraction,
		&cfg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
