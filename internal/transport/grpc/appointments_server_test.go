package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	repairv1 "bikerepair/internal/api/repairv1"
	"bikerepair/internal/domain"
	"bikerepair/internal/service/appointments"
	"bikerepair/internal/store"
)

type fakeAppointmentsService struct {
	bookFn         func(ctx context.Context, in appointments.BookInput) (domain.Appointment, bool, error)
	updateStatusFn func(ctx context.Context, id, status string) (bool, error)
	deleteFn       func(ctx context.Context, id string) (bool, error)
	upcomingFn     func() ([]domain.Appointment, bool)
	pastFn         func() ([]domain.Appointment, bool)
	timeSlotsFn    func(date time.Time) ([]domain.TimeSlot, error)
}

func (f *fakeAppointmentsService) Book(ctx context.Context, in appointments.BookInput) (domain.Appointment, bool, error) {
	if f.bookFn == nil {
		panic("Book not configured")
	}
	return f.bookFn(ctx, in)
}

func (f *fakeAppointmentsService) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	if f.updateStatusFn == nil {
		panic("UpdateStatus not configured")
	}
	return f.updateStatusFn(ctx, id, status)
}

func (f *fakeAppointmentsService) Delete(ctx context.Context, id string) (bool, error) {
	if f.deleteFn == nil {
		panic("Delete not configured")
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeAppointmentsService) Upcoming() ([]domain.Appointment, bool) {
	if f.upcomingFn == nil {
		panic("Upcoming not configured")
	}
	return f.upcomingFn()
}

func (f *fakeAppointmentsService) Past() ([]domain.Appointment, bool) {
	if f.pastFn == nil {
		panic("Past not configured")
	}
	return f.pastFn()
}

func (f *fakeAppointmentsService) TimeSlots(date time.Time) ([]domain.TimeSlot, error) {
	if f.timeSlotsFn == nil {
		panic("TimeSlots not configured")
	}
	return f.timeSlotsFn(date)
}

func (f *fakeAppointmentsService) Problems() []string {
	return domain.Problems()
}

func TestCreateAppointment_RejectsNilRequest(t *testing.T) {
	srv := NewAppointmentsServer(&fakeAppointmentsService{}, slog.Default())

	_, err := srv.CreateAppointment(context.Background(), nil)
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("code = %s, want %s", status.Code(err), codes.InvalidArgument)
	}
}

func TestCreateAppointment_PassesFieldsAndDurability(t *testing.T) {
	var got appointments.BookInput
	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	srv := NewAppointmentsServer(&fakeAppointmentsService{
		bookFn: func(ctx context.Context, in appointments.BookInput) (domain.Appointment, bool, error) {
			got = in
			return domain.Appointment{ID: "appt-1", Date: in.Date, Status: domain.StatusPending}, false, nil
		},
	}, slog.Default())

	resp, err := srv.CreateAppointment(context.Background(), &repairv1.CreateAppointmentRequest{
		Address:       "12 rue de la Paix",
		Date:          date,
		TimeSlot:      "17:00",
		Problem:       domain.ProblemOther,
		CustomProblem: "Guidon tordu",
	})
	if err != nil {
		t.Fatalf("CreateAppointment error: %v", err)
	}
	if got.CustomProblem != "Guidon tordu" || got.TimeSlot != "17:00" || !got.Date.Equal(date) {
		t.Fatalf("book input = %+v", got)
	}
	if resp.Durable {
		t.Fatalf("durable = true, want false")
	}
	if resp.Appointment.Id != "appt-1" || resp.Appointment.StatusLabel != "En attente" {
		t.Fatalf("appointment = %+v", resp.Appointment)
	}
}

func TestCreateAppointment_MapsErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"validation", &appointments.ValidationError{}, codes.InvalidArgument},
		{"invalid status", fmt.Errorf("wrap: %w", store.ErrInvalidStatus), codes.InvalidArgument},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"other", errors.New("boom"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewAppointmentsServer(&fakeAppointmentsService{
				bookFn: func(ctx context.Context, in appointments.BookInput) (domain.Appointment, bool, error) {
					return domain.Appointment{}, false, tt.err
				},
			}, slog.Default())

			_, err := srv.CreateAppointment(context.Background(), &repairv1.CreateAppointmentRequest{})
			if status.Code(err) != tt.want {
				t.Fatalf("code = %s, want %s", status.Code(err), tt.want)
			}
		})
	}
}

func TestUpdateAppointmentStatus_MapsValidationError(t *testing.T) {
	srv := NewAppointmentsServer(&fakeAppointmentsService{
		updateStatusFn: func(ctx context.Context, id, status string) (bool, error) {
			return false, &appointments.ValidationError{}
		},
	}, slog.Default())

	_, err := srv.UpdateAppointmentStatus(context.Background(), &repairv1.UpdateAppointmentStatusRequest{
		AppointmentId: "appt-1",
		Status:        "archived",
	})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("code = %s, want %s", status.Code(err), codes.InvalidArgument)
	}
}

func TestDeleteAppointment_ReportsDurability(t *testing.T) {
	var gotID string
	srv := NewAppointmentsServer(&fakeAppointmentsService{
		deleteFn: func(ctx context.Context, id string) (bool, error) {
			gotID = id
			return true, nil
		},
	}, slog.Default())

	resp, err := srv.DeleteAppointment(context.Background(), &repairv1.DeleteAppointmentRequest{AppointmentId: "appt-7"})
	if err != nil {
		t.Fatalf("DeleteAppointment error: %v", err)
	}
	if gotID != "appt-7" || !resp.Durable {
		t.Fatalf("id = %q durable = %v", gotID, resp.Durable)
	}
}

func TestListUpcomingAppointments_ReportsLoading(t *testing.T) {
	srv := NewAppointmentsServer(&fakeAppointmentsService{
		upcomingFn: func() ([]domain.Appointment, bool) { return nil, true },
	}, slog.Default())

	resp, err := srv.ListUpcomingAppointments(context.Background(), &repairv1.ListUpcomingAppointmentsRequest{})
	if err != nil {
		t.Fatalf("ListUpcomingAppointments error: %v", err)
	}
	if !resp.Loading || len(resp.Appointments) != 0 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Appointments == nil {
		t.Fatalf("appointments = nil, want an empty list")
	}
}

func TestListTimeSlots_ConvertsSlots(t *testing.T) {
	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	srv := NewAppointmentsServer(&fakeAppointmentsService{
		timeSlotsFn: func(d time.Time) ([]domain.TimeSlot, error) {
			return domain.GenerateTimeSlots(d, domain.DefaultServiceWindow), nil
		},
	}, slog.Default())

	resp, err := srv.ListTimeSlots(context.Background(), &repairv1.ListTimeSlotsRequest{Date: date})
	if err != nil {
		t.Fatalf("ListTimeSlots error: %v", err)
	}
	if len(resp.Slots) != 5 {
		t.Fatalf("slots = %d, want 5", len(resp.Slots))
	}
	if resp.Slots[0].Id != "2026-03-20T00:00:00.000Z-16:30" || !resp.Slots[0].Available {
		t.Fatalf("first slot = %+v", resp.Slots[0])
	}
}

func TestListProblems_FlagsOther(t *testing.T) {
	srv := NewAppointmentsServer(&fakeAppointmentsService{}, slog.Default())

	resp, err := srv.ListProblems(context.Background(), &repairv1.ListProblemsRequest{})
	if err != nil {
		t.Fatalf("ListProblems error: %v", err)
	}
	if resp.Other != "Autre" || len(resp.Problems) != 8 {
		t.Fatalf("resp = %+v", resp)
	}
}
