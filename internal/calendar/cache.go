package calendar

import "github.com/kilo9alfa/workouttracker/internal/domain"

// Cache holds fetched workouts keyed by date. It is an explicit state
// container owned by the rendering layer, not shared between goroutines.
type Cache struct {
	byDate map[string][]domain.EnrichedWorkout
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{byDate: make(map[string][]domain.EnrichedWorkout)}
}

// Merge folds fetched records into the cache. A record is appended only if
// its id is not already present under that date key, so re-fetching an
// overlapping range never duplicates entries. Merge does not reconcile
// server-side changes to records already cached.
func (c *Cache) Merge(incoming []domain.EnrichedWorkout) {
	for _, w := range incoming {
		if c.contains(w.Date, w.ID) {
			continue
		}
		c.byDate[w.Date] = append(c.byDate[w.Date], w)
	}
}

// Workouts returns the cached records for one date in insertion order.
func (c *Cache) Workouts(date string) []domain.EnrichedWorkout {
	return c.byDate[date]
}

// Add appends a single record, typically after an optimistic create.
func (c *Cache) Add(w domain.EnrichedWorkout) {
	if c.contains(w.Date, w.ID) {
		return
	}
	c.byDate[w.Date] = append(c.byDate[w.Date], w)
}

// Remove deletes the record with the given id from a date's list.
func (c *Cache) Remove(date string, id int64) {
	list := c.byDate[date]
	for i, w := range list {
		if w.ID == id {
			c.byDate[date] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

func (c *Cache) contains(date string, id int64) bool {
	for _, w := range c.byDate[date] {
		if w.ID == id {
			return true
		}
	}
	return false
}
