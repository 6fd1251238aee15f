// Package postgres provides owner-scoped persistence for exercise types and
// workouts, plus the transactional outbox rows for workout mutations.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kilo9alfa/workouttracker/internal/domain"
	"github.com/kilo9alfa/workouttracker/internal/events"
	"github.com/kilo9alfa/workouttracker/internal/observability"
)

const exerciseTypeColumns = "id, owner, name, color, default_duration_minutes, sort_order, created_at, updated_at"

const workoutColumns = "id, owner, exercise_type_id, date::text, duration_minutes, notes, created_at, updated_at"

// Repository is the pgx-backed implementation of domain.Repository.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListExerciseTypes returns the owner's types ordered by (sort_order, name).
func (r *Repository) ListExerciseTypes(ctx context.Context, owner string) ([]domain.ExerciseType, error) {
	query := fmt.Sprintf(`SELECT %s FROM exercise_types WHERE owner = $1 ORDER BY sort_order, name`, exerciseTypeColumns)

	rows, err := r.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]domain.ExerciseType, 0)
	for rows.Next() {
		et, err := scanExerciseType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, et)
	}
	return types, rows.Err()
}

// CreateExerciseType inserts a type at the end of the sort order.
func (r *Repository) CreateExerciseType(ctx context.Context, owner, name, color string, defaultDuration *int) (*domain.ExerciseType, error) {
	query := fmt.Sprintf(`INSERT INTO exercise_types (owner, name, color, default_duration_minutes, sort_order)
        VALUES ($1, $2, $3, $4,
            COALESCE((SELECT MAX(sort_order) + 1 FROM exercise_types WHERE owner = $1), 0))
        RETURNING %s`, exerciseTypeColumns)

	row := r.pool.QueryRow(ctx, query, owner, name, color, defaultDuration)
	et, err := scanExerciseType(row)
	if err != nil {
		return nil, err
	}
	return &et, nil
}

// UpdateExerciseType applies only the supplied patch fields. A nil result
// with nil error means the row does not exist for this owner.
func (r *Repository) UpdateExerciseType(ctx context.Context, owner string, id int64, patch domain.ExerciseTypePatch) (*domain.ExerciseType, error) {
	if patch.Empty() {
		return nil, domain.ErrEmptyPatch
	}

	set := make([]string, 0, 4)
	args := make([]interface{}, 0, 6)
	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name.Set {
		add("name", fieldArg(patch.Name))
	}
	if patch.Color.Set {
		add("color", fieldArg(patch.Color))
	}
	if patch.SortOrder.Set {
		add("sort_order", fieldArg(patch.SortOrder))
	}
	if patch.DefaultDurationMinutes.Set {
		add("default_duration_minutes", fieldArg(patch.DefaultDurationMinutes))
	}

	args = append(args, id, owner)
	query := fmt.Sprintf(`UPDATE exercise_types SET %s, updated_at = now() WHERE id = $%d AND owner = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args)-1, len(args), exerciseTypeColumns)

	row := r.pool.QueryRow(ctx, query, args...)
	et, err := scanExerciseType(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &et, nil
}

// DeleteExerciseType removes a type. Referencing workouts cascade away with
// it; deleting an absent id is a no-op.
func (r *Repository) DeleteExerciseType(ctx context.Context, owner string, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM exercise_types WHERE id = $1 AND owner = $2`, id, owner)
	return err
}

// ReorderExerciseTypes assigns sort_order = position for every id inside a
// single transaction, then returns the resulting ordered list. Ids that do
// not belong to the owner are skipped rather than failing the batch.
func (r *Repository) ReorderExerciseTypes(ctx context.Context, owner string, ids []int64) ([]domain.ExerciseType, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	for position, id := range ids {
		if _, err := tx.Exec(ctx,
			`UPDATE exercise_types SET sort_order = $1, updated_at = now() WHERE id = $2 AND owner = $3`,
			position, id, owner); err != nil {
			return nil, err
		}
	}

	query := fmt.Sprintf(`SELECT %s FROM exercise_types WHERE owner = $1 ORDER BY sort_order, name`, exerciseTypeColumns)
	rows, err := tx.Query(ctx, query, owner)
	if err != nil {
		return nil, err
	}

	types := make([]domain.ExerciseType, 0, len(ids))
	for rows.Next() {
		et, scanErr := scanExerciseType(rows)
		if scanErr != nil {
			rows.Close()
			return nil, scanErr
		}
		types = append(types, et)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return types, nil
}

// ListWorkouts returns the owner's workouts with date in [from, to]
// inclusive, each row enriched with its type's name and color.
func (r *Repository) ListWorkouts(ctx context.Context, owner, from, to string) ([]domain.EnrichedWorkout, error) {
	const query = `SELECT w.id, w.owner, w.exercise_type_id, w.date::text, w.duration_minutes, w.notes,
            w.created_at, w.updated_at, et.name, et.color
        FROM workouts w
        JOIN exercise_types et ON et.id = w.exercise_type_id
        WHERE w.owner = $1 AND w.date >= $2::date AND w.date <= $3::date
        ORDER BY w.date, et.sort_order`

	rows, err := r.pool.Query(ctx, query, owner, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]domain.EnrichedWorkout, 0)
	for rows.Next() {
		var w domain.EnrichedWorkout
		if err := rows.Scan(&w.ID, &w.Owner, &w.ExerciseTypeID, &w.Date, &w.DurationMinutes, &w.Notes,
			&w.CreatedAt, &w.UpdatedAt, &w.ExerciseTypeName, &w.ExerciseTypeColor); err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// CreateWorkout persists the session and its outbox event in one transaction.
func (r *Repository) CreateWorkout(ctx context.Context, owner string, input domain.CreateWorkoutInput) (*domain.Workout, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`INSERT INTO workouts (owner, exercise_type_id, date, duration_minutes, notes)
        VALUES ($1, $2, $3::date, $4, $5)
        RETURNING %s`, workoutColumns)

	row := tx.QueryRow(ctx, query, owner, input.ExerciseTypeID, input.Date, input.DurationMinutes, input.Notes)
	w, err := scanWorkout(row)
	if err != nil {
		return nil, err
	}

	if err := insertOutbox(ctx, tx, owner, w.ID, "workout.logged", events.WorkoutLogged{
		WorkoutID:       w.ID,
		Owner:           owner,
		ExerciseTypeID:  w.ExerciseTypeID,
		Date:            w.Date,
		DurationMinutes: w.DurationMinutes,
		OccurredAt:      w.CreatedAt,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	observability.RecordWorkoutPersisted(w.CreatedAt)
	observability.WorkoutCreated()
	return &w, nil
}

// UpdateWorkout applies only the supplied patch fields and stamps
// updated_at. A nil result with nil error means the row is absent.
func (r *Repository) UpdateWorkout(ctx context.Context, owner string, id int64, patch domain.WorkoutPatch) (*domain.Workout, error) {
	if patch.Empty() {
		return nil, domain.ErrEmptyPatch
	}

	set := make([]string, 0, 4)
	args := make([]interface{}, 0, 6)

	if patch.ExerciseTypeID.Set {
		args = append(args, fieldArg(patch.ExerciseTypeID))
		set = append(set, fmt.Sprintf("exercise_type_id = $%d", len(args)))
	}
	if patch.Date.Set {
		args = append(args, fieldArg(patch.Date))
		set = append(set, fmt.Sprintf("date = $%d::date", len(args)))
	}
	if patch.DurationMinutes.Set {
		args = append(args, fieldArg(patch.DurationMinutes))
		set = append(set, fmt.Sprintf("duration_minutes = $%d", len(args)))
	}
	if patch.Notes.Set {
		args = append(args, fieldArg(patch.Notes))
		set = append(set, fmt.Sprintf("notes = $%d", len(args)))
	}

	args = append(args, id, owner)
	query := fmt.Sprintf(`UPDATE workouts SET %s, updated_at = now() WHERE id = $%d AND owner = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args)-1, len(args), workoutColumns)

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, query, args...)
	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tx.Commit(ctx)
		}
		return nil, err
	}

	if err := insertOutbox(ctx, tx, owner, w.ID, "workout.updated", events.WorkoutUpdated{
		WorkoutID:       w.ID,
		Owner:           owner,
		ExerciseTypeID:  w.ExerciseTypeID,
		Date:            w.Date,
		DurationMinutes: w.DurationMinutes,
		OccurredAt:      w.UpdatedAt,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &w, nil
}

// DeleteWorkout removes a session; deleting an absent id is a no-op. The
// outbox event is only written when a row was actually deleted.
func (r *Repository) DeleteWorkout(ctx context.Context, owner string, id int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM workouts WHERE id = $1 AND owner = $2`, id, owner)
	if err != nil {
		return err
	}

	if tag.RowsAffected() > 0 {
		if err := insertOutbox(ctx, tx, owner, id, "workout.deleted", events.WorkoutDeleted{
			WorkoutID:  id,
			Owner:      owner,
			OccurredAt: time.Now().UTC(),
		}); err != nil {
			return err
		}
		observability.WorkoutDeleted()
	}

	return tx.Commit(ctx)
}

func insertOutbox(ctx context.Context, tx pgx.Tx, owner string, aggregateID int64, eventType string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	const stmt = `INSERT INTO outbox (owner, aggregate_type, aggregate_id, event_type, topic, partition_key, payload)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = tx.Exec(ctx, stmt, owner, "workout", aggregateID, eventType, events.TopicWorkoutEvents, owner, body)
	return err
}

func fieldArg[T any](f domain.Field[T]) interface{} {
	if !f.Valid {
		return nil
	}
	return f.Value
}

func scanExerciseType(row pgx.Row) (domain.ExerciseType, error) {
	var et domain.ExerciseType
	err := row.Scan(&et.ID, &et.Owner, &et.Name, &et.Color, &et.DefaultDurationMinutes, &et.SortOrder,
		&et.CreatedAt, &et.UpdatedAt)
	return et, err
}

func scanWorkout(row pgx.Row) (domain.Workout, error) {
	var w domain.Workout
	err := row.Scan(&w.ID, &w.Owner, &w.ExerciseTypeID, &w.Date, &w.DurationMinutes, &w.Notes,
		&w.CreatedAt, &w.UpdatedAt)
	return w, err
}
