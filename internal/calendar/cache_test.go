package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kilo9alfa/workouttracker/internal/domain"
)

func enriched(id int64, day string, minutes int) domain.EnrichedWorkout {
	return domain.EnrichedWorkout{
		Workout: domain.Workout{
			ID:              id,
			Date:            day,
			DurationMinutes: minutes,
		},
		ExerciseTypeName:  "Run",
		ExerciseTypeColor: "#ff0000",
	}
}

func TestMergeDeduplicatesOverlappingFetches(t *testing.T) {
	cache := NewCache()

	first := []domain.EnrichedWorkout{
		enriched(1, "2024-03-04", 30),
		enriched(2, "2024-03-04", 45),
		enriched(3, "2024-03-05", 20),
	}
	cache.Merge(first)

	// Re-fetching an overlapping range must not duplicate ids.
	overlap := []domain.EnrichedWorkout{
		enriched(2, "2024-03-04", 45),
		enriched(3, "2024-03-05", 20),
		enriched(4, "2024-03-05", 60),
	}
	cache.Merge(overlap)

	require.Len(t, cache.Workouts("2024-03-04"), 2)
	require.Len(t, cache.Workouts("2024-03-05"), 2)
}

func TestMergeDoesNotReconcileCachedRecords(t *testing.T) {
	cache := NewCache()
	cache.Merge([]domain.EnrichedWorkout{enriched(1, "2024-03-04", 30)})

	// The server-side update is invisible to the cache.
	cache.Merge([]domain.EnrichedWorkout{enriched(1, "2024-03-04", 90)})

	got := cache.Workouts("2024-03-04")
	require.Len(t, got, 1)
	require.Equal(t, 30, got[0].DurationMinutes)
}

func TestAddAndRemove(t *testing.T) {
	cache := NewCache()
	cache.Add(enriched(1, "2024-03-04", 30))
	cache.Add(enriched(1, "2024-03-04", 30))
	require.Len(t, cache.Workouts("2024-03-04"), 1)

	cache.Remove("2024-03-04", 1)
	require.Empty(t, cache.Workouts("2024-03-04"))

	// Removing an absent id is a no-op.
	cache.Remove("2024-03-04", 99)
}

func TestTotals(t *testing.T) {
	cache := NewCache()
	cache.Merge([]domain.EnrichedWorkout{
		enriched(1, "2024-03-04", 30),
		enriched(2, "2024-03-04", 15),
		enriched(3, "2024-03-06", 60),
		enriched(4, "2024-03-11", 45), // next week, excluded from the total
	})

	require.Equal(t, 45, cache.DayTotal("2024-03-04"))
	require.Equal(t, 0, cache.DayTotal("2024-03-05"))

	monday := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	require.Equal(t, 105, cache.WeekTotal(monday))
}
