//go:build integration

package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
)

func TestDispatcherPublishesPendingEvents(t *testing.T) {
	ctx := context.Background()
	pool, cleanup := setupPostgres(t, ctx)
	defer cleanup()

	require.NotZero(t, seedOutbox(t, ctx, pool, "alice@example.com", 1, "workout.logged"))
	require.NotZero(t, seedOutbox(t, ctx, pool, "alice@example.com", 2, "workout.updated"))

	producer := &stubProducer{}
	dispatcher := NewDispatcher(pool, producer, zap.NewNop(), 10*time.Millisecond, 5)

	beforeDelivered := testutil.ToFloat64(deliveredCounter)

	require.NoError(t, dispatcher.processBatch(ctx))

	require.Len(t, producer.writes, 1)
	require.Len(t, producer.writes[0], 2)
	require.Equal(t, "alice@example.com", string(producer.writes[0][0].Key))

	afterDelivered := testutil.ToFloat64(deliveredCounter)
	require.InDelta(t, beforeDelivered+2, afterDelivered, 0.0001)

	var published int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox WHERE published_at IS NOT NULL`).Scan(&published))
	require.Equal(t, 2, published)
}

func TestDispatcherRetriesAfterDeliveryFailure(t *testing.T) {
	ctx := context.Background()
	pool, cleanup := setupPostgres(t, ctx)
	defer cleanup()

	require.NotZero(t, seedOutbox(t, ctx, pool, "alice@example.com", 1, "workout.logged"))

	producer := &stubProducer{err: errors.New("kafka write failed")}
	dispatcher := NewDispatcher(pool, producer, zap.NewNop(), 10*time.Millisecond, 5)

	beforeFailed := testutil.ToFloat64(deliveryFailedCounter)

	require.Error(t, dispatcher.processBatch(ctx))

	afterFailed := testutil.ToFloat64(deliveryFailedCounter)
	require.InDelta(t, beforeFailed+1, afterFailed, 0.0001)

	var pending int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox WHERE published_at IS NULL`).Scan(&pending))
	require.Equal(t, 1, pending, "failed rows stay pending for the next poll")

	// A healthy producer drains the row on the following batch.
	producer.err = nil
	require.NoError(t, dispatcher.processBatch(ctx))

	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox WHERE published_at IS NULL`).Scan(&pending))
	require.Zero(t, pending)
}

func TestDispatcherEmptyOutboxIsANoOp(t *testing.T) {
	ctx := context.Background()
	pool, cleanup := setupPostgres(t, ctx)
	defer cleanup()

	producer := &stubProducer{}
	dispatcher := NewDispatcher(pool, producer, zap.NewNop(), 10*time.Millisecond, 5)

	require.NoError(t, dispatcher.processBatch(ctx))
	require.Empty(t, producer.writes)
}

type stubProducer struct {
	mu     sync.Mutex
	err    error
	writes [][]kafka.Message
}

func (s *stubProducer) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}

	copied := make([]kafka.Message, len(msgs))
	copy(copied, msgs)
	s.writes = append(s.writes, copied)
	return nil
}

func seedOutbox(t *testing.T, ctx context.Context, pool *pgxpool.Pool, owner string, workoutID int64, eventType string) int64 {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"workout_id": workoutID,
		"owner":      owner,
	})
	require.NoError(t, err)

	row := pool.QueryRow(ctx,
		`INSERT INTO outbox (owner, aggregate_type, aggregate_id, event_type, topic, partition_key, payload)
         VALUES ($1,$2,$3,$4,$5,$6,$7)
         RETURNING event_id`,
		owner, "workout", workoutID, eventType, "workout_events", owner, payload)

	var eventID int64
	require.NoError(t, row.Scan(&eventID))
	return eventID
}

func setupPostgres(t *testing.T, ctx context.Context) (*pgxpool.Pool, func()) {
	t.Helper()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("workout"),
		postgrescontainer.WithUsername("workout"),
		postgrescontainer.WithPassword("workout"),
	)
	require.NoError(t, err)

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, waitForDatabase(ctx, connStr))

	runMigrations(t, ctx, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		_ = pg.Terminate(ctx)
	}
	return pool, cleanup
}

func runMigrations(t *testing.T, ctx context.Context, connStr string) {
	t.Helper()

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	path := resolvePath(t, "../../db/migrations/0001_init.up.sql")
	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, string(contents))
	require.NoError(t, err)
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
