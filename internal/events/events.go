// Package events defines the payloads published to the workout event topic.
package events

import "time"

// TopicWorkoutEvents is the Kafka topic carrying workout mutations.
const TopicWorkoutEvents = "workout_events"

// WorkoutLogged is emitted when a session is created.
type WorkoutLogged struct {
	WorkoutID       int64     `json:"workout_id"`
	Owner           string    `json:"owner"`
	ExerciseTypeID  int64     `json:"exercise_type_id"`
	Date            string    `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// WorkoutUpdated is emitted when a session is partially updated.
type WorkoutUpdated struct {
	WorkoutID       int64     `json:"workout_id"`
	Owner           string    `json:"owner"`
	ExerciseTypeID  int64     `json:"exercise_type_id"`
	Date            string    `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// WorkoutDeleted is emitted when a session is removed.
type WorkoutDeleted struct {
	WorkoutID  int64     `json:"workout_id"`
	Owner      string    `json:"owner"`
	OccurredAt time.Time `json:"occurred_at"`
}
