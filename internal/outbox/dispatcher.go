// Package outbox drains persisted workout events and delivers them to Kafka.
package outbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(context.Context, ...kafka.Message) error
}

// Message is one undelivered outbox row.
type Message struct {
	EventID      int64
	Owner        string
	EventType    string
	PartitionKey string
	Payload      []byte
}

// Dispatcher polls the outbox table and publishes pending events. Rows stay
// unpublished on delivery failure and are retried on the next poll.
type Dispatcher struct {
	pool             *pgxpool.Pool
	producer         messageWriter
	logger           *zap.Logger
	pollInterval     time.Duration
	batchSize        int
	shutdownComplete chan struct{}
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(pool *pgxpool.Pool, producer messageWriter, logger *zap.Logger, pollInterval time.Duration, batchSize int) *Dispatcher {
	return &Dispatcher{
		pool:             pool,
		producer:         producer,
		logger:           logger,
		pollInterval:     pollInterval,
		batchSize:        batchSize,
		shutdownComplete: make(chan struct{}),
	}
}

// Start launches the polling loop. It should be called in a goroutine.
func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.pollInterval)
	defer func() {
		ticker.Stop()
		close(d.shutdownComplete)
	}()

	for {
		if err := d.processBatch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			d.logger.Error("outbox dispatch failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Wait blocks until the dispatcher has stopped.
func (d *Dispatcher) Wait() {
	<-d.shutdownComplete
}

func (d *Dispatcher) processBatch(ctx context.Context) error {
	tx, err := d.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `SELECT event_id, owner, event_type, partition_key, payload
        FROM outbox
        WHERE published_at IS NULL
        ORDER BY event_id
        LIMIT $1
        FOR UPDATE SKIP LOCKED`

	rows, err := tx.Query(ctx, query, d.batchSize)
	if err != nil {
		return err
	}

	batch := make([]Message, 0, d.batchSize)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.EventID, &m.Owner, &m.EventType, &m.PartitionKey, &m.Payload); err != nil {
			rows.Close()
			return err
		}
		batch = append(batch, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if len(batch) == 0 {
		return nil
	}

	if err := d.producer.WriteMessages(ctx, ToKafkaMessages(batch)...); err != nil {
		deliveryFailedCounter.Add(float64(len(batch)))
		return fmt.Errorf("delivering %d events: %w", len(batch), err)
	}

	ids := make([]int64, 0, len(batch))
	for _, m := range batch {
		ids = append(ids, m.EventID)
	}
	if _, err := tx.Exec(ctx, `UPDATE outbox SET published_at = now() WHERE event_id = ANY($1)`, ids); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	deliveredCounter.Add(float64(len(batch)))
	d.logger.Debug("outbox batch delivered", zap.Int("events", len(batch)))
	return nil
}

// ToKafkaMessages converts outbox rows to Kafka messages keyed by partition
// key, with the event type carried as a header.
func ToKafkaMessages(batch []Message) []kafka.Message {
	msgs := make([]kafka.Message, 0, len(batch))
	for _, m := range batch {
		msgs = append(msgs, kafka.Message{
			Key:   []byte(m.PartitionKey),
			Value: m.Payload,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(m.EventType)},
			},
		})
	}
	return msgs
}
