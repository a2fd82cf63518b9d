package domain

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Label is the customer-facing wording shown on appointment cards.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "En attente"
	case StatusConfirmed:
		return "Confirmé"
	case StatusCompleted:
		return "Terminé"
	case StatusCancelled:
		return "Annulé"
	default:
		return string(s)
	}
}

// ParseStatus accepts the wire value case-insensitively.
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

// Appointment is one requested home repair visit. The JSON layout is the
// persisted snapshot format and must stay stable.
type Appointment struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	Date      time.Time `json:"date"`
	TimeSlot  string    `json:"timeSlot"`
	Problem   string    `json:"problem"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Upcoming reports whether the appointment belongs in the upcoming view at now.
// Completed visits move to the history view even when dated in the future.
func (a Appointment) Upcoming(now time.Time) bool {
	if a.Status == StatusCancelled || a.Status == StatusCompleted {
		return false
	}
	return !a.Date.Before(now)
}

// Past reports whether the appointment belongs in the history view at now.
// A cancelled appointment in the future is in neither view.
func (a Appointment) Past(now time.Time) bool {
	return a.Date.Before(now) || a.Status == StatusCompleted
}
