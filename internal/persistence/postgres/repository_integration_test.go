//go:build integration

package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/kilo9alfa/workouttracker/internal/domain"
)

func setupRepository(t *testing.T, ctx context.Context) *Repository {
	t.Helper()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("workout"),
		postgrescontainer.WithUsername("workout"),
		postgrescontainer.WithPassword("workout"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, waitForDatabase(ctx, connStr))
	runMigrations(t, ctx, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	return NewRepository(pool)
}

func TestRepositoryOwnerIsolation(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t, ctx)

	et, err := repo.CreateExerciseType(ctx, "alice@example.com", "Running", "#ff0000", nil)
	require.NoError(t, err)

	visible, err := repo.ListExerciseTypes(ctx, "bob@example.com")
	require.NoError(t, err)
	require.Empty(t, visible, "other owners must not see the row")

	updated, err := repo.UpdateExerciseType(ctx, "bob@example.com", et.ID,
		domain.ExerciseTypePatch{Name: domain.NewField("Stolen")})
	require.NoError(t, err)
	require.Nil(t, updated, "cross-owner update must not match any row")
}

func TestRepositoryWorkoutRangeIsInclusive(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t, ctx)
	const owner = "user@example.com"

	et, err := repo.CreateExerciseType(ctx, owner, "Running", "#ff0000", nil)
	require.NoError(t, err)

	for _, date := range []string{"2024-02-04", "2024-02-05", "2024-02-18", "2024-02-19"} {
		_, err := repo.CreateWorkout(ctx, owner, domain.CreateWorkoutInput{
			ExerciseTypeID:  et.ID,
			Date:            date,
			DurationMinutes: 30,
		})
		require.NoError(t, err)
	}

	workouts, err := repo.ListWorkouts(ctx, owner, "2024-02-05", "2024-02-18")
	require.NoError(t, err)
	require.Len(t, workouts, 2)
	require.Equal(t, "2024-02-05", workouts[0].Date)
	require.Equal(t, "2024-02-18", workouts[1].Date)
	require.Equal(t, "Running", workouts[0].ExerciseTypeName)
	require.Equal(t, "#ff0000", workouts[0].ExerciseTypeColor)
}

func TestRepositoryPartialUpdateSemantics(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t, ctx)
	const owner = "user@example.com"

	dur := 45
	et, err := repo.CreateExerciseType(ctx, owner, "Running", "#ff0000", &dur)
	require.NoError(t, err)

	// Absent fields stay untouched.
	updated, err := repo.UpdateExerciseType(ctx, owner, et.ID,
		domain.ExerciseTypePatch{Name: domain.NewField("Trail running")})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, "Trail running", updated.Name)
	require.Equal(t, "#ff0000", updated.Color)
	require.NotNil(t, updated.DefaultDurationMinutes)
	require.Equal(t, 45, *updated.DefaultDurationMinutes)

	// Explicit null clears a nullable column.
	updated, err = repo.UpdateExerciseType(ctx, owner, et.ID,
		domain.ExerciseTypePatch{DefaultDurationMinutes: domain.NullField[int]()})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Nil(t, updated.DefaultDurationMinutes)

	// Absent row yields nil, nil.
	updated, err = repo.UpdateExerciseType(ctx, owner, 9999,
		domain.ExerciseTypePatch{Name: domain.NewField("Ghost")})
	require.NoError(t, err)
	require.Nil(t, updated)
}

func TestRepositoryDeleteSemantics(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t, ctx)
	const owner = "user@example.com"

	et, err := repo.CreateExerciseType(ctx, owner, "Running", "#ff0000", nil)
	require.NoError(t, err)

	w, err := repo.CreateWorkout(ctx, owner, domain.CreateWorkoutInput{
		ExerciseTypeID:  et.ID,
		Date:            "2024-02-14",
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	// Idempotent workout delete.
	require.NoError(t, repo.DeleteWorkout(ctx, owner, w.ID))
	require.NoError(t, repo.DeleteWorkout(ctx, owner, w.ID))

	// Type deletion cascades to remaining workouts.
	_, err = repo.CreateWorkout(ctx, owner, domain.CreateWorkoutInput{
		ExerciseTypeID:  et.ID,
		Date:            "2024-02-15",
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteExerciseType(ctx, owner, et.ID))

	workouts, err := repo.ListWorkouts(ctx, owner, "2024-02-01", "2024-02-28")
	require.NoError(t, err)
	require.Empty(t, workouts)
}

func TestRepositoryReorderAssignsPositions(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t, ctx)
	const owner = "user@example.com"

	var ids []int64
	for _, name := range []string{"Running", "Swimming", "Cycling"} {
		et, err := repo.CreateExerciseType(ctx, owner, name, "#ff0000", nil)
		require.NoError(t, err)
		ids = append(ids, et.ID)
	}

	reordered, err := repo.ReorderExerciseTypes(ctx, owner, []int64{ids[2], ids[0], ids[1]})
	require.NoError(t, err)
	require.Len(t, reordered, 3)
	require.Equal(t, ids[2], reordered[0].ID)
	require.Equal(t, ids[0], reordered[1].ID)
	require.Equal(t, ids[1], reordered[2].ID)
	for pos, et := range reordered {
		require.Equal(t, pos, et.SortOrder)
	}
}

func TestRepositoryWritesOutboxRows(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t, ctx)
	const owner = "user@example.com"

	et, err := repo.CreateExerciseType(ctx, owner, "Running", "#ff0000", nil)
	require.NoError(t, err)

	w, err := repo.CreateWorkout(ctx, owner, domain.CreateWorkoutInput{
		ExerciseTypeID:  et.ID,
		Date:            "2024-02-14",
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	_, err = repo.UpdateWorkout(ctx, owner, w.ID,
		domain.WorkoutPatch{DurationMinutes: domain.NewField(45)})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteWorkout(ctx, owner, w.ID))

	rows, err := repo.pool.Query(ctx,
		`SELECT event_type FROM outbox WHERE owner = $1 ORDER BY event_id`, owner)
	require.NoError(t, err)
	defer rows.Close()

	var eventTypes []string
	for rows.Next() {
		var et string
		require.NoError(t, rows.Scan(&et))
		eventTypes = append(eventTypes, et)
	}
	require.NoError(t, rows.Err())
	require.Equal(t, []string{"workout.logged", "workout.updated", "workout.deleted"}, eventTypes)
}

func runMigrations(t *testing.T, ctx context.Context, connStr string) {
	files := []string{
		"../../../db/migrations/0001_init.up.sql",
	}

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	for _, rel := range files {
		path := resolvePath(t, rel)
		contents, readErr := os.ReadFile(path)
		require.NoError(t, readErr)

		_, execErr := pool.Exec(ctx, string(contents))
		require.NoError(t, execErr)
	}
}

func resolvePath(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), rel)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Second)
	}
}
