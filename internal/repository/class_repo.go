package repository

import (
	"context"

	"github.com/IsaacYap90/JMT-SuperApp-sub000/internal/models"
)

type CreateClassInput struct {
	Name      string
	DayOfWeek int
	StartTime string
	EndTime   string
	Capacity  int
	CoachIDs  []int64
}

type UpdateClassInput struct {
	Name      *string
	DayOfWeek *int
	StartTime *string
	EndTime   *string
	Capacity  *int
}

type ClassRepository struct {
	db DBTX
}

func NewClassRepository(db DBTX) *ClassRepository {
	return &ClassRepository{db: db}
}

func (r *ClassRepository) Create(ctx context.Context, input CreateClassInput) (*models.Class, error) {
	query := `
		INSERT INTO classes (name, day_of_week, start_time, end_time, capacity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, day_of_week, start_time, end_time, capacity, created_at, updated_at
	`
	var class models.Class
	err := r.db.QueryRow(ctx, query,
		input.Name,
		input.DayOfWeek,
		input.StartTime,
		input.EndTime,
		input.Capacity,
	).Scan(
		&class.ID,
		&class.Name,
		&class.DayOfWeek,
		&class.StartTime,
		&class.EndTime,
		&class.Capacity,
		&class.CreatedAt,
		&class.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *ClassRepository) GetByID(ctx context.Context, classID int64) (*models.Class, error) {
	query := `
		SELECT id, name, day_of_week, start_time, end_time, capacity, created_at, updated_at
		FROM classes
		WHERE id = $1
	`
	var class models.Class
	err := r.db.QueryRow(ctx, query, classID).Scan(
		&class.ID,
		&class.Name,
		&class.DayOfWeek,
		&class.StartTime,
		&class.EndTime,
		&class.Capacity,
		&class.CreatedAt,
		&class.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *ClassRepository) List(ctx context.Context) ([]models.Class, error) {
	query := `
		SELECT id, name, day_of_week, start_time, end_time, capacity, created_at, updated_at
		FROM classes
		ORDER BY day_of_week ASC, start_time ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := make([]models.Class, 0)
	for rows.Next() {
		var class models.Class
		if err := rows.Scan(
			&class.ID,
			&class.Name,
			&class.DayOfWeek,
			&class.StartTime,
			&class.EndTime,
			&class.Capacity,
			&class.CreatedAt,
			&class.UpdatedAt,
		); err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

func (r *ClassRepository) Update(ctx context.Context, classID int64, input UpdateClassInput) (*models.Class, error) {
	query := `
		UPDATE classes
		SET name = COALESCE($2, name),
			day_of_week = COALESCE($3, day_of_week),
			start_time = COALESCE($4, start_time),
			end_time = COALESCE($5, end_time),
			capacity = COALESCE($6, capacity),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, day_of_week, start_time, end_time, capacity, created_at, updated_at
	`
	var class models.Class
	err := r.db.QueryRow(ctx, query,
		classID,
		input.Name,
		input.DayOfWeek,
		input.StartTime,
		input.EndTime,
		input.Capacity,
	).Scan(
		&class.ID,
		&class.Name,
		&class.DayOfWeek,
		&class.StartTime,
		&class.EndTime,
		&class.Capacity,
		&class.CreatedAt,
		&class.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// ReplaceCoaches swaps the full coach assignment list. Position 0 is the
// lead coach. Run inside a transaction together with the class update.
func (r *ClassRepository) ReplaceCoaches(ctx context.Context, classID int64, coachIDs []int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM class_coaches WHERE class_id = $1`, classID); err != nil {
		return err
	}
	for position, coachID := range coachIDs {
		_, err := r.db.Exec(ctx,
			`INSERT INTO class_coaches (class_id, coach_id, position) VALUES ($1, $2, $3)`,
			classID, coachID, position,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *ClassRepository) GetCoachIDs(ctx context.Context, classID int64) ([]int64, error) {
	query := `
		SELECT coach_id
		FROM class_coaches
		WHERE class_id = $1
		ORDER BY position ASC
	`
	rows, err := r.db.Query(ctx, query, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coachIDs := make([]int64, 0)
	for rows.Next() {
		var coachID int64
		if err := rows.Scan(&coachID); err != nil {
			return nil, err
		}
		coachIDs = append(coachIDs, coachID)
	}
	return coachIDs, rows.Err()
}

func (r *ClassRepository) ListCoachIDsByClass(ctx context.Context, classIDs []int64) (map[int64][]int64, error) {
	assignments := make(map[int64][]int64, len(classIDs))
	if len(classIDs) == 0 {
		return assignments, nil
	}

	query := `
		SELECT class_id, coach_id
		FROM class_coaches
		WHERE class_id = ANY($1)
		ORDER BY class_id, position ASC
	`
	rows, err := r.db.Query(ctx, query, classIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var classID, coachID int64
		if err := rows.Scan(&classID, &coachID); err != nil {
			return nil, err
		}
		assignments[classID] = append(assignments[classID], coachID)
	}
	return assignments, rows.Err()
}
