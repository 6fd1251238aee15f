package domain

import "encoding/json"

// Field is one slot of a partial-update patch. It distinguishes three
// states a plain pointer cannot: absent from the request, explicit JSON
// null, and a concrete value. Absent fields are left untouched by an
// update; an explicit null clears the column.
type Field[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// NewField returns a set, non-null Field.
func NewField[T any](value T) Field[T] {
	return Field[T]{Set: true, Valid: true, Value: value}
}

// NullField returns a set Field carrying an explicit null.
func NullField[T any]() Field[T] {
	return Field[T]{Set: true}
}

// UnmarshalJSON is only invoked for keys present in the request body, so
// Set is always true here; absent keys keep the zero Field.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Valid = false
		var zero T
		f.Value = zero
		return nil
	}
	f.Valid = true
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON round-trips the tri-state for clients that build patches.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// ExerciseTypePatch is the field set accepted by PUT /exercise-types/:id.
type ExerciseTypePatch struct {
	Name                   Field[string] `json:"name"`
	Color                  Field[string] `json:"color"`
	SortOrder              Field[int]    `json:"sort_order"`
	DefaultDurationMinutes Field[int]    `json:"default_duration_minutes"`
}

// Empty reports whether no field was supplied at all.
func (p ExerciseTypePatch) Empty() bool {
	return !p.Name.Set && !p.Color.Set && !p.SortOrder.Set && !p.DefaultDurationMinutes.Set
}

// WorkoutPatch is the field set accepted by PUT /workouts/:id.
type WorkoutPatch struct {
	ExerciseTypeID  Field[int64]  `json:"exercise_type_id"`
	Date            Field[string] `json:"date"`
	DurationMinutes Field[int]    `json:"duration_minutes"`
	Notes           Field[string] `json:"notes"`
}

// Empty reports whether no field was supplied at all.
func (p WorkoutPatch) Empty() bool {
	return !p.ExerciseTypeID.Set && !p.Date.Set && !p.DurationMinutes.Set && !p.Notes.Set
}
