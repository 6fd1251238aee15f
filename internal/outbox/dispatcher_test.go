package outbox

import (
	"testing"
)

func TestToKafkaMessages(t *testing.T) {
	batch := []Message{
		{
			EventID:      1,
			Owner:        "alice@example.com",
			EventType:    "workout.logged",
			PartitionKey: "alice@example.com",
			Payload:      []byte(`{"workout_id":1}`),
		},
		{
			EventID:      2,
			Owner:        "bob@example.com",
			EventType:    "workout.deleted",
			PartitionKey: "bob@example.com",
			Payload:      []byte(`{"workout_id":2}`),
		},
	}

	msgs := ToKafkaMessages(batch)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}

	for i, m := range msgs {
		if string(m.Key) != batch[i].PartitionKey {
			t.Errorf("message %d: key %q, want partition key %q", i, m.Key, batch[i].PartitionKey)
		}
		if string(m.Value) != string(batch[i].Payload) {
			t.Errorf("message %d: payload mismatch", i)
		}
		if len(m.Headers) != 1 || m.Headers[0].Key != "event_type" {
			t.Fatalf("message %d: expected single event_type header", i)
		}
		if string(m.Headers[0].Value) != batch[i].EventType {
			t.Errorf("message %d: header %q, want %q", i, m.Headers[0].Value, batch[i].EventType)
		}
	}
}

func TestToKafkaMessagesEmptyBatch(t *testing.T) {
	if msgs := ToKafkaMessages(nil); len(msgs) != 0 {
		t.Fatalf("expected no messages, got %d", len(msgs))
	}
}
