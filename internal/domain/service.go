package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Repository captures persistence operations. Every call is scoped to one
// owner identity; implementations must never return another owner's rows.
type Repository interface {
	ListExerciseTypes(ctx context.Context, owner string) ([]ExerciseType, error)
	CreateExerciseType(ctx context.Context, owner, name, color string, defaultDuration *int) (*ExerciseType, error)
	UpdateExerciseType(ctx context.Context, owner string, id int64, patch ExerciseTypePatch) (*ExerciseType, error)
	DeleteExerciseType(ctx context.Context, owner string, id int64) error
	ReorderExerciseTypes(ctx context.Context, owner string, ids []int64) ([]ExerciseType, error)

	ListWorkouts(ctx context.Context, owner, from, to string) ([]EnrichedWorkout, error)
	CreateWorkout(ctx context.Context, owner string, input CreateWorkoutInput) (*Workout, error)
	UpdateWorkout(ctx context.Context, owner string, id int64, patch WorkoutPatch) (*Workout, error)
	DeleteWorkout(ctx context.Context, owner string, id int64) error
}

// CreateWorkoutInput captures the payload for logging a session.
type CreateWorkoutInput struct {
	ExerciseTypeID  int64
	Date            string
	DurationMinutes int
	Notes           *string
}

// Service orchestrates validation and repository calls.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListExerciseTypes returns the caller's types ordered by (sort_order, name).
func (s *Service) ListExerciseTypes(ctx context.Context, owner string) ([]ExerciseType, error) {
	return s.repo.ListExerciseTypes(ctx, owner)
}

// CreateExerciseType validates the name, applies the default color when none
// was supplied and persists the new type.
func (s *Service) CreateExerciseType(ctx context.Context, owner, name, color string, defaultDuration *int) (*ExerciseType, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if color == "" {
		color = DefaultTypeColor
	}
	return s.repo.CreateExerciseType(ctx, owner, name, color, defaultDuration)
}

// UpdateExerciseType applies only the supplied fields. An empty patch and an
// absent row both surface as errors the API maps to 404.
func (s *Service) UpdateExerciseType(ctx context.Context, owner string, id int64, patch ExerciseTypePatch) (*ExerciseType, error) {
	if patch.Empty() {
		return nil, ErrEmptyPatch
	}
	updated, err := s.repo.UpdateExerciseType(ctx, owner, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// DeleteExerciseType removes a type. Deleting an absent id succeeds.
func (s *Service) DeleteExerciseType(ctx context.Context, owner string, id int64) error {
	return s.repo.DeleteExerciseType(ctx, owner, id)
}

// ReorderExerciseTypes persists sort_order = position for each id in one
// transaction and returns the resulting ordered list.
func (s *Service) ReorderExerciseTypes(ctx context.Context, owner string, ids []int64) ([]ExerciseType, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: ids are required", ErrValidation)
	}
	return s.repo.ReorderExerciseTypes(ctx, owner, ids)
}

// ListWorkouts returns enriched workouts with date in [from, to] inclusive.
func (s *Service) ListWorkouts(ctx context.Context, owner, from, to string) ([]EnrichedWorkout, error) {
	if err := validateDate(from); err != nil {
		return nil, err
	}
	if err := validateDate(to); err != nil {
		return nil, err
	}
	return s.repo.ListWorkouts(ctx, owner, from, to)
}

// CreateWorkout validates required fields and persists the session.
func (s *Service) CreateWorkout(ctx context.Context, owner string, input CreateWorkoutInput) (*Workout, error) {
	if input.ExerciseTypeID == 0 || input.Date == "" || input.DurationMinutes == 0 {
		return nil, fmt.Errorf("%w: exercise_type_id, date, and duration_minutes are required", ErrValidation)
	}
	if input.DurationMinutes < 0 {
		return nil, fmt.Errorf("%w: duration_minutes must be positive", ErrValidation)
	}
	if err := validateDate(input.Date); err != nil {
		return nil, err
	}
	return s.repo.CreateWorkout(ctx, owner, input)
}

// UpdateWorkout applies only the supplied fields and stamps updated_at.
func (s *Service) UpdateWorkout(ctx context.Context, owner string, id int64, patch WorkoutPatch) (*Workout, error) {
	if patch.Empty() {
		return nil, ErrEmptyPatch
	}
	if patch.Date.Set && patch.Date.Valid {
		if err := validateDate(patch.Date.Value); err != nil {
			return nil, err
		}
	}
	updated, err := s.repo.UpdateWorkout(ctx, owner, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// DeleteWorkout removes a session. Deleting an absent id succeeds.
func (s *Service) DeleteWorkout(ctx context.Context, owner string, id int64) error {
	return s.repo.DeleteWorkout(ctx, owner, id)
}

func validateDate(value string) error {
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("%w: invalid date %q", ErrValidation, value)
	}
	return nil
}
