package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	repairv1 "bikerepair/internal/api/repairv1"
	"bikerepair/internal/domain"
	"bikerepair/internal/service/appointments"
	"bikerepair/internal/store"
)

type AppointmentsServer struct {
	repairv1.UnimplementedAppointmentsServiceServer

	svc appointmentsService
	log *slog.Logger
}

type appointmentsService interface {
	Book(ctx context.Context, in appointments.BookInput) (domain.Appointment, bool, error)
	UpdateStatus(ctx context.Context, id, status string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Upcoming() ([]domain.Appointment, bool)
	Past() ([]domain.Appointment, bool)
	TimeSlots(date time.Time) ([]domain.TimeSlot, error)
	Problems() []string
}

func NewAppointmentsServer(svc appointmentsService, log *slog.Logger) *AppointmentsServer {
	if log == nil {
		log = slog.Default()
	}
	return &AppointmentsServer{
		svc: svc,
		log: log.With(slog.String("component", "grpc.appointments")),
	}
}

func (s *AppointmentsServer) CreateAppointment(ctx context.Context, req *repairv1.CreateAppointmentRequest) (*repairv1.CreateAppointmentResponse, error) {
	log := s.log.With(slog.String("rpc", "CreateAppointment"))

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	appt, durable, err := s.svc.Book(ctx, appointments.BookInput{
		Address:       req.Address,
		Date:          req.Date,
		TimeSlot:      req.TimeSlot,
		Problem:       req.Problem,
		CustomProblem: req.CustomProblem,
	})
	if err != nil {
		return nil, s.mapError(log, "appointment create failed", err)
	}

	logDurability(log, "appointment created", durable,
		slog.String("appointment_id", appt.ID),
		slog.Time("date", appt.Date),
		slog.String("time_slot", appt.TimeSlot),
	)

	return &repairv1.CreateAppointmentResponse{
		Appointment: toAPIAppointment(appt),
		Durable:     durable,
	}, nil
}

func (s *AppointmentsServer) UpdateAppointmentStatus(ctx context.Context, req *repairv1.UpdateAppointmentStatusRequest) (*repairv1.UpdateAppointmentStatusResponse, error) {
	log := s.log.With(slog.String("rpc", "UpdateAppointmentStatus"))

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	durable, err := s.svc.UpdateStatus(ctx, req.AppointmentId, req.Status)
	if err != nil {
		return nil, s.mapError(log.With(slog.String("appointment_id", req.AppointmentId)), "appointment status update failed", err)
	}

	logDurability(log, "appointment status updated", durable,
		slog.String("appointment_id", req.AppointmentId),
		slog.String("status", req.Status),
	)
	return &repairv1.UpdateAppointmentStatusResponse{Durable: durable}, nil
}

func (s *AppointmentsServer) DeleteAppointment(ctx context.Context, req *repairv1.DeleteAppointmentRequest) (*repairv1.DeleteAppointmentResponse, error) {
	log := s.log.With(slog.String("rpc", "DeleteAppointment"))

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	durable, err := s.svc.Delete(ctx, req.AppointmentId)
	if err != nil {
		return nil, s.mapError(log.With(slog.String("appointment_id", req.AppointmentId)), "appointment delete failed", err)
	}

	logDurability(log, "appointment deleted", durable, slog.String("appointment_id", req.AppointmentId))
	return &repairv1.DeleteAppointmentResponse{Durable: durable}, nil
}

func (s *AppointmentsServer) ListUpcomingAppointments(ctx context.Context, req *repairv1.ListUpcomingAppointmentsRequest) (*repairv1.ListAppointmentsResponse, error) {
	appts, loading := s.svc.Upcoming()
	s.log.Debug("upcoming appointments listed", slog.Int("count", len(appts)), slog.Bool("loading", loading))
	return toAPIList(appts, loading), nil
}

func (s *AppointmentsServer) ListPastAppointments(ctx context.Context, req *repairv1.ListPastAppointmentsRequest) (*repairv1.ListAppointmentsResponse, error) {
	appts, loading := s.svc.Past()
	s.log.Debug("past appointments listed", slog.Int("count", len(appts)), slog.Bool("loading", loading))
	return toAPIList(appts, loading), nil
}

func (s *AppointmentsServer) ListTimeSlots(ctx context.Context, req *repairv1.ListTimeSlotsRequest) (*repairv1.ListTimeSlotsResponse, error) {
	log := s.log.With(slog.String("rpc", "ListTimeSlots"))

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	slots, err := s.svc.TimeSlots(req.Date)
	if err != nil {
		return nil, s.mapError(log, "time slots failed", err)
	}

	out := make([]*repairv1.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		out = append(out, &repairv1.TimeSlot{Id: slot.ID, Time: slot.Time, Available: slot.Available})
	}
	return &repairv1.ListTimeSlotsResponse{Slots: out}, nil
}

func (s *AppointmentsServer) ListProblems(ctx context.Context, req *repairv1.ListProblemsRequest) (*repairv1.ListProblemsResponse, error) {
	return &repairv1.ListProblemsResponse{
		Problems: s.svc.Problems(),
		Other:    domain.ProblemOther,
	}, nil
}

func (s *AppointmentsServer) mapError(log *slog.Logger, msg string, err error) error {
	var vErr *appointments.ValidationError
	if errors.As(err, &vErr) {
		log.Warn("invalid request", slog.Any("err", err))
		return status.Error(codes.InvalidArgument, vErr.Error())
	}
	if errors.Is(err, store.ErrInvalidStatus) {
		log.Warn("invalid request", slog.Any("err", err))
		return status.Error(codes.InvalidArgument, "invalid status")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		log.Warn(msg, slog.Any("err", err))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}
	log.Error(msg, slog.Any("err", err))
	return status.Error(codes.Internal, "internal error")
}

// logDurability logs a completed mutation; a mutation whose snapshot write
// failed is kept in memory only and logged at warn.
func logDurability(log *slog.Logger, msg string, durable bool, args ...slog.Attr) {
	attrs := make([]any, 0, len(args)+1)
	for _, a := range args {
		attrs = append(attrs, a)
	}
	attrs = append(attrs, slog.Bool("durable", durable))
	if durable {
		log.Info(msg, attrs...)
		return
	}
	log.Warn(msg, attrs...)
}

func toAPIList(appts []domain.Appointment, loading bool) *repairv1.ListAppointmentsResponse {
	out := make([]*repairv1.Appointment, 0, len(appts))
	for _, a := range appts {
		out = append(out, toAPIAppointment(a))
	}
	return &repairv1.ListAppointmentsResponse{Appointments: out, Loading: loading}
}

func toAPIAppointment(a domain.Appointment) *repairv1.Appointment {
	return &repairv1.Appointment{
		Id:          a.ID,
		Address:     a.Address,
		Date:        a.Date.UTC(),
		TimeSlot:    a.TimeSlot,
		Problem:     a.Problem,
		Status:      string(a.Status),
		StatusLabel: a.Status.Label(),
		CreatedAt:   a.CreatedAt.UTC(),
	}
}
