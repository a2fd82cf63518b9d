package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"bikerepair/internal/domain"
)

type CreateInput struct {
	Address  string
	Date     time.Time
	TimeSlot string
	Problem  string
}

type Options struct {
	// Key is the KV key holding the snapshot. Defaults to DefaultKey.
	Key string
	// WriteAttempts bounds how many times a snapshot write is tried before
	// it is abandoned. Defaults to 3.
	WriteAttempts        int
	RetryInitialInterval time.Duration

	Now    func() time.Time
	NewID  func() (string, error)
	Events EventPublisher
	Log    *slog.Logger
}

// AppointmentStore owns the appointment collection. Every mutation rewrites
// the whole collection to the KV under a single lock, so snapshot writes are
// applied in the same order as the mutations that produced them.
//
// Persistence failures never surface as errors: the in-memory collection is
// kept, the failure is logged and counted, and the mutation reports durable=false.
type AppointmentStore struct {
	kv           KV
	key          string
	attempts     int
	retryInitial time.Duration
	now          func() time.Time
	newID        func() (string, error)
	events       EventPublisher
	log          *slog.Logger

	loading atomic.Bool

	mu           sync.Mutex
	appts        []domain.Appointment
	lastWriteErr error
}

func NewAppointmentStore(kv KV, opts Options) *AppointmentStore {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.WriteAttempts <= 0 {
		opts.WriteAttempts = 3
	}
	if opts.RetryInitialInterval <= 0 {
		opts.RetryInitialInterval = 100 * time.Millisecond
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = newAppointmentID
	}
	if opts.Events == nil {
		opts.Events = nopPublisher{}
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}

	s := &AppointmentStore{
		kv:           kv,
		key:          opts.Key,
		attempts:     opts.WriteAttempts,
		retryInitial: opts.RetryInitialInterval,
		now:          opts.Now,
		newID:        opts.NewID,
		events:       opts.Events,
		log:          opts.Log.With(slog.String("component", "store.appointments")),
	}
	s.loading.Store(true)
	return s
}

func newAppointmentID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Loading reports whether the initial Load has not completed yet.
func (s *AppointmentStore) Loading() bool {
	return s.loading.Load()
}

// Load replaces the in-memory collection with the persisted snapshot. A
// missing snapshot yields an empty collection; an unreadable one is logged
// and also yields an empty collection. Records that cannot be decoded are
// skipped individually.
func (s *AppointmentStore) Load(ctx context.Context) {
	defer s.loading.Store(false)

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		loadFailuresTotal.Inc()
		s.log.Error("snapshot read failed; starting empty", slog.String("key", s.key), slog.Any("err", err))
		s.replaceLocked(nil)
		return
	}
	if !ok || strings.TrimSpace(raw) == "" {
		s.log.Info("no snapshot found; starting empty", slog.String("key", s.key))
		s.replaceLocked(nil)
		return
	}

	appts, skipped, err := decodeSnapshot(raw)
	if err != nil {
		loadFailuresTotal.Inc()
		s.log.Error("snapshot malformed; starting empty", slog.String("key", s.key), slog.Any("err", err))
		s.replaceLocked(nil)
		return
	}
	if len(skipped) > 0 {
		loadFailuresTotal.Inc()
		for _, e := range skipped {
			s.log.Warn("snapshot record skipped", slog.Any("err", e))
		}
	}

	s.replaceLocked(appts)
	s.log.Info("snapshot loaded", slog.Int("count", len(appts)), slog.Int("skipped", len(skipped)))
}

func (s *AppointmentStore) replaceLocked(appts []domain.Appointment) {
	s.appts = appts
	appointmentsGauge.Set(float64(len(appts)))
}

// Create appends a pending appointment and persists the collection. Input is
// stored as given; validation belongs to the caller. durable reports whether
// this call's snapshot write succeeded. The only error is a failure to
// allocate an id.
func (s *AppointmentStore) Create(ctx context.Context, in CreateInput) (appt domain.Appointment, durable bool, err error) {
	id, err := s.newID()
	if err != nil {
		return domain.Appointment{}, false, fmt.Errorf("allocate appointment id: %w", err)
	}

	s.mu.Lock()
	if s.indexLocked(id) >= 0 {
		s.mu.Unlock()
		return domain.Appointment{}, false, fmt.Errorf("allocate appointment id: %q already in use", id)
	}
	appt = domain.Appointment{
		ID:        id,
		Address:   in.Address,
		Date:      in.Date,
		TimeSlot:  in.TimeSlot,
		Problem:   in.Problem,
		Status:    domain.StatusPending,
		CreatedAt: s.now(),
	}
	s.appts = append(s.appts, appt)
	durable = s.persistLocked(ctx, "create") == nil
	s.mu.Unlock()

	s.publish(ctx, EventAppointmentCreated, appt)
	return appt, durable, nil
}

// UpdateStatus sets the status of the appointment with the given id. Any
// status may follow any other. An unknown id is a no-op that writes nothing
// and reports durable. durable reports whether this call's snapshot write
// succeeded.
func (s *AppointmentStore) UpdateStatus(ctx context.Context, id string, status domain.Status) (durable bool, err error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		s.log.Debug("status update for unknown appointment", slog.String("appointment_id", id))
		return true, nil
	}
	s.appts[i].Status = status
	appt := s.appts[i]
	durable = s.persistLocked(ctx, "update_status") == nil
	s.mu.Unlock()

	s.publish(ctx, EventAppointmentStatusChanged, appt)
	return durable, nil
}

// Delete removes the appointment with the given id and reports whether this
// call's snapshot write succeeded. An unknown id is a no-op that writes
// nothing and reports durable.
func (s *AppointmentStore) Delete(ctx context.Context, id string) (durable bool) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		s.log.Debug("delete for unknown appointment", slog.String("appointment_id", id))
		return true
	}
	appt := s.appts[i]
	s.appts = slices.Delete(s.appts, i, i+1)
	durable = s.persistLocked(ctx, "delete") == nil
	s.mu.Unlock()

	s.publish(ctx, EventAppointmentDeleted, appt)
	return durable
}

// Upcoming returns appointments dated now or later that are neither
// cancelled nor completed, earliest first.
func (s *AppointmentStore) Upcoming() []domain.Appointment {
	now := s.now()
	out := s.filter(func(a domain.Appointment) bool { return a.Upcoming(now) })
	slices.SortStableFunc(out, func(a, b domain.Appointment) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

// Past returns appointments dated before now plus every completed one,
// latest first.
func (s *AppointmentStore) Past() []domain.Appointment {
	now := s.now()
	out := s.filter(func(a domain.Appointment) bool { return a.Past(now) })
	slices.SortStableFunc(out, func(a, b domain.Appointment) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// All returns the collection in insertion order.
func (s *AppointmentStore) All() []domain.Appointment {
	return s.filter(func(domain.Appointment) bool { return true })
}

func (s *AppointmentStore) Get(id string) (domain.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return domain.Appointment{}, false
	}
	return s.appts[i], true
}

// LastPersistError returns the outcome of the most recent snapshot write,
// whichever call made it.
func (s *AppointmentStore) LastPersistError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastWriteErr
}

func (s *AppointmentStore) filter(keep func(domain.Appointment) bool) []domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Appointment, 0, len(s.appts))
	for _, a := range s.appts {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func (s *AppointmentStore) indexLocked(id string) int {
	return slices.IndexFunc(s.appts, func(a domain.Appointment) bool { return a.ID == id })
}

func (s *AppointmentStore) persistLocked(ctx context.Context, op string) error {
	mutationsTotal.WithLabelValues(op).Inc()
	appointmentsGauge.Set(float64(len(s.appts)))

	payload, err := encodeSnapshot(s.appts)
	if err != nil {
		s.lastWriteErr = err
		persistFailuresTotal.WithLabelValues(op).Inc()
		s.log.Error("snapshot encode failed; in-memory state kept", slog.String("op", op), slog.Any("err", err))
		return err
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = s.retryInitial
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(s.attempts-1)), ctx)

	attempts := 0
	err = backoff.Retry(func() error {
		attempts++
		return s.kv.Set(ctx, s.key, payload)
	}, policy)
	s.lastWriteErr = err
	if err != nil {
		persistFailuresTotal.WithLabelValues(op).Inc()
		s.log.Error(
			"snapshot write failed; in-memory state kept",
			slog.String("op", op),
			slog.Int("attempts", attempts),
			slog.Any("err", err),
		)
		return err
	}
	if attempts > 1 {
		s.log.Warn("snapshot write succeeded after retry", slog.String("op", op), slog.Int("attempts", attempts))
	}
	return nil
}

func (s *AppointmentStore) publish(ctx context.Context, typ EventType, appt domain.Appointment) {
	err := s.events.Publish(ctx, Event{Type: typ, Appointment: appt, OccurredAt: s.now()})
	if err != nil {
		s.log.Warn(
			"appointment event publish failed",
			slog.String("event_type", string(typ)),
			slog.String("appointment_id", appt.ID),
			slog.Any("err", err),
		)
	}
}
