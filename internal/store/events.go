package store

import (
	"context"
	"time"

	"bikerepair/internal/domain"
)

type EventType string

const (
	EventAppointmentCreated       EventType = "appointment.created"
	EventAppointmentStatusChanged EventType = "appointment.status_changed"
	EventAppointmentDeleted       EventType = "appointment.deleted"
)

type Event struct {
	Type        EventType          `json:"type"`
	Appointment domain.Appointment `json:"appointment"`
	OccurredAt  time.Time          `json:"occurredAt"`
}

// EventPublisher receives an event after each applied mutation. Publish
// errors are logged by the store and never fail the mutation.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) error { return nil }
