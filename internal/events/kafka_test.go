package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"bikerepair/internal/domain"
	"bikerepair/internal/store"
)

type fakeWriter struct {
	writeFn func(ctx context.Context, msgs ...kafka.Message) error
	closed  bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.writeFn == nil {
		panic("WriteMessages not configured")
	}
	return f.writeFn(ctx, msgs...)
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaPublisher_MessageLayout(t *testing.T) {
	var got []kafka.Message
	w := &fakeWriter{
		writeFn: func(ctx context.Context, msgs ...kafka.Message) error {
			if _, ok := ctx.Deadline(); !ok {
				t.Fatalf("expected a write deadline")
			}
			got = append(got, msgs...)
			return nil
		},
	}
	p := newKafkaPublisher(w, KafkaConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	occurred := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	ev := store.Event{
		Type: store.EventAppointmentCreated,
		Appointment: domain.Appointment{
			ID:     "appt-1",
			Status: domain.StatusPending,
			Date:   occurred.Add(24 * time.Hour),
		},
		OccurredAt: occurred,
	}
	if err := p.Publish(context.Background(), ev); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("messages = %d, want 1", len(got))
	}
	msg := got[0]
	if msg.Topic != DefaultTopic {
		t.Fatalf("topic = %q, want %q", msg.Topic, DefaultTopic)
	}
	if string(msg.Key) != "appt-1" {
		t.Fatalf("key = %q, want %q", msg.Key, "appt-1")
	}
	if header(msg, "event_type") != "appointment.created" {
		t.Fatalf("event_type = %q", header(msg, "event_type"))
	}
	if header(msg, "event_id") == "" {
		t.Fatalf("missing event_id header")
	}

	var decoded store.Event
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("payload decode error: %v", err)
	}
	if decoded.Appointment.ID != "appt-1" || decoded.Type != store.EventAppointmentCreated {
		t.Fatalf("payload = %+v", decoded)
	}
}

func TestKafkaPublisher_WrapsWriteErrors(t *testing.T) {
	brokerErr := errors.New("leader not available")
	p := newKafkaPublisher(&fakeWriter{
		writeFn: func(ctx context.Context, msgs ...kafka.Message) error { return brokerErr },
	}, KafkaConfig{Topic: "custom"}, nil)

	err := p.Publish(context.Background(), store.Event{Type: store.EventAppointmentDeleted})
	if !errors.Is(err, brokerErr) {
		t.Fatalf("error = %v, want %v", err, brokerErr)
	}
}

func TestNewKafkaPublisher_DisabledWithoutBrokers(t *testing.T) {
	if p := NewKafkaPublisher(KafkaConfig{Brokers: " , "}, nil); p != nil {
		t.Fatalf("expected nil publisher without brokers")
	}
}

func TestSplitBrokers(t *testing.T) {
	got := SplitBrokers(" a:9092, ,b:9092 ")
	if len(got) != 2 || got[0] != "a:9092" || got[1] != "b:9092" {
		t.Fatalf("SplitBrokers = %v", got)
	}
}
