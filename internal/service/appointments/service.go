package appointments

import (
	"context"
	"errors"
	"strings"
	"time"

	"bikerepair/internal/domain"
	"bikerepair/internal/store"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// Store is the subset of *store.AppointmentStore the booking flow depends on.
type Store interface {
	Create(ctx context.Context, in store.CreateInput) (domain.Appointment, bool, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (bool, error)
	Delete(ctx context.Context, id string) bool
	Upcoming() []domain.Appointment
	Past() []domain.Appointment
	Loading() bool
}

type Service struct {
	store  Store
	window domain.ServiceWindow
	now    func() time.Time
}

// NewService wires the booking rules over s. A nil now uses time.Now.
func NewService(s Store, window domain.ServiceWindow, now func() time.Time) *Service {
	if window.Validate() != nil {
		window = domain.DefaultServiceWindow
	}
	if now == nil {
		now = time.Now
	}
	return &Service{store: s, window: window, now: now}
}

type BookInput struct {
	Address       string
	Date          time.Time
	TimeSlot      string
	Problem       string
	CustomProblem string
}

// Book validates a booking request and records it as a pending appointment.
// durable reports whether the collection reached storage.
func (s *Service) Book(ctx context.Context, in BookInput) (appt domain.Appointment, durable bool, err error) {
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return domain.Appointment{}, false, validationError("address is required")
	}
	if in.Date.IsZero() {
		return domain.Appointment{}, false, validationError("date is required")
	}
	if beforeToday(in.Date, s.now()) {
		return domain.Appointment{}, false, validationError("date must not be in the past")
	}

	slot := strings.TrimSpace(in.TimeSlot)
	if slot == "" {
		return domain.Appointment{}, false, validationError("time_slot is required")
	}
	if !domain.HasSlot(in.Date, s.window, slot) {
		return domain.Appointment{}, false, validationError("time_slot is not offered on that date")
	}

	problem := strings.TrimSpace(in.Problem)
	if problem == "" {
		return domain.Appointment{}, false, validationError("problem is required")
	}
	if !domain.IsCatalogProblem(problem) {
		return domain.Appointment{}, false, validationError("problem is not in the catalog")
	}
	if domain.IsOtherProblem(problem) {
		problem = strings.TrimSpace(in.CustomProblem)
		if problem == "" {
			return domain.Appointment{}, false, validationError("custom_problem is required when problem is " + domain.ProblemOther)
		}
	}

	appt, durable, err = s.store.Create(ctx, store.CreateInput{
		Address:  address,
		Date:     in.Date,
		TimeSlot: slot,
		Problem:  problem,
	})
	if err != nil {
		return domain.Appointment{}, false, err
	}
	return appt, durable, nil
}

// beforeToday compares calendar days in the date's own location, so any time
// on the current day is still bookable.
func beforeToday(date, now time.Time) bool {
	y, m, d := now.In(date.Location()).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return date.Before(today)
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (durable bool, err error) {
	if strings.TrimSpace(id) == "" {
		return false, validationError("appointment_id is required")
	}
	st, ok := domain.ParseStatus(status)
	if !ok {
		return false, validationError("invalid status")
	}
	durable, err = s.store.UpdateStatus(ctx, id, st)
	if err != nil {
		if errors.Is(err, store.ErrInvalidStatus) {
			return false, validationError("invalid status")
		}
		return false, err
	}
	return durable, nil
}

func (s *Service) Delete(ctx context.Context, id string) (durable bool, err error) {
	if strings.TrimSpace(id) == "" {
		return false, validationError("appointment_id is required")
	}
	return s.store.Delete(ctx, id), nil
}

func (s *Service) Upcoming() (appts []domain.Appointment, loading bool) {
	return s.store.Upcoming(), s.store.Loading()
}

func (s *Service) Past() (appts []domain.Appointment, loading bool) {
	return s.store.Past(), s.store.Loading()
}

func (s *Service) TimeSlots(date time.Time) ([]domain.TimeSlot, error) {
	if date.IsZero() {
		return nil, validationError("date is required")
	}
	return domain.GenerateTimeSlots(date, s.window), nil
}

func (s *Service) Problems() []string {
	return domain.Problems()
}
