// Package domain defines the workout tracker's records and business rules.
package domain

import "time"

// ExerciseType is a user-defined workout category with a display color,
// optional default duration and a sort position.
type ExerciseType struct {
	ID                     int64     `json:"id"`
	Owner                  string    `json:"-"`
	Name                   string    `json:"name"`
	Color                  string    `json:"color"`
	DefaultDurationMinutes *int      `json:"default_duration_minutes"`
	SortOrder              int       `json:"sort_order"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// Workout is a single logged session on a calendar day. Date is an opaque
// YYYY-MM-DD string; there is no time-of-day component.
type Workout struct {
	ID              int64     `json:"id"`
	Owner           string    `json:"-"`
	ExerciseTypeID  int64     `json:"exercise_type_id"`
	Date            string    `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EnrichedWorkout carries the owning type's name and color joined in at
// query time. The extra fields are a display convenience, not stored state.
type EnrichedWorkout struct {
	Workout
	ExerciseTypeName  string `json:"exercise_type_name"`
	ExerciseTypeColor string `json:"exercise_type_color"`
}

// DefaultTypeColor is applied when a type is created without a color.
const DefaultTypeColor = "#4ade80"

// DefaultWorkoutDuration is the sheet fallback when no type default exists.
const DefaultWorkoutDuration = 60
