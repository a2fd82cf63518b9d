package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"

	repairv1 "bikerepair/internal/api/repairv1"
	"bikerepair/internal/domain"
	"bikerepair/internal/service/appointments"
	"bikerepair/internal/store"
	"bikerepair/internal/store/memory"
	grpcTransport "bikerepair/internal/transport/grpc"
)

func startServer(t *testing.T, now time.Time) (string, *store.AppointmentStore) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := func() time.Time { return now }
	st := store.NewAppointmentStore(memory.New(), store.Options{
		Now: clock,
		Log: log,
	})
	st.Load(context.Background())

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}
	srv := grpc.NewServer()
	repairv1.RegisterAppointmentsServiceServer(srv, grpcTransport.NewAppointmentsServer(appointments.NewService(st, domain.DefaultServiceWindow, clock), log))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	return lis.Addr().String(), st
}

func run(t *testing.T, addr string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--addr", addr, "--timeout", "5s"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRepairctl_BookAndList(t *testing.T) {
	addr, st := startServer(t, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))

	out, err := run(t, addr, "slots", "--date", "2026-03-15")
	if err != nil {
		t.Fatalf("slots error: %v", err)
	}
	if strings.Count(out, "available") != 5 || !strings.HasPrefix(out, "16:30") {
		t.Fatalf("slots output = %q", out)
	}

	out, err = run(t, addr, "book",
		"--address", "12 rue de la Paix",
		"--date", "2026-03-15",
		"--slot", "17:30",
		"--problem", "Autre",
		"--details", "Guidon tordu",
	)
	if err != nil {
		t.Fatalf("book error: %v", err)
	}
	if !strings.HasPrefix(out, "booked ") || !strings.Contains(out, "2026-03-15 at 17:30") {
		t.Fatalf("book output = %q", out)
	}

	all := st.All()
	if len(all) != 1 || all[0].Problem != "Guidon tordu" {
		t.Fatalf("stored = %+v", all)
	}

	out, err = run(t, addr, "upcoming")
	if err != nil {
		t.Fatalf("upcoming error: %v", err)
	}
	if !strings.Contains(out, all[0].ID) || !strings.Contains(out, "En attente") {
		t.Fatalf("upcoming output = %q", out)
	}

	if _, err := run(t, addr, "status", all[0].ID, "completed"); err != nil {
		t.Fatalf("status error: %v", err)
	}
	out, err = run(t, addr, "past")
	if err != nil {
		t.Fatalf("past error: %v", err)
	}
	if !strings.Contains(out, "Terminé") {
		t.Fatalf("past output = %q", out)
	}

	if _, err := run(t, addr, "delete", all[0].ID); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	out, err = run(t, addr, "past")
	if err != nil {
		t.Fatalf("past error: %v", err)
	}
	if strings.TrimSpace(out) != "no appointments" {
		t.Fatalf("past output after delete = %q", out)
	}
}

func TestRepairctl_SurfacesValidationErrors(t *testing.T) {
	addr, _ := startServer(t, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))

	_, err := run(t, addr, "book",
		"--address", "x",
		"--date", "2026-03-15",
		"--slot", "08:00",
		"--problem", "Crevaison",
	)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "InvalidArgument") || !strings.Contains(err.Error(), "time_slot is not offered") {
		t.Fatalf("error = %q", err.Error())
	}

	_, err = run(t, addr, "status", "some-id", "archived")
	if err == nil || !strings.Contains(err.Error(), "invalid status") {
		t.Fatalf("error = %v, want invalid status", err)
	}
}

func TestRepairctl_RejectsBadDate(t *testing.T) {
	_, err := run(t, "127.0.0.1:1", "slots", "--date", "15/03/2026")
	if err == nil || !strings.Contains(err.Error(), "YYYY-MM-DD") {
		t.Fatalf("error = %v, want date format error", err)
	}
}

func TestRepairctl_ProblemsMarksOther(t *testing.T) {
	addr, _ := startServer(t, time.Now())

	out, err := run(t, addr, "problems")
	if err != nil {
		t.Fatalf("problems error: %v", err)
	}
	if !strings.Contains(out, "Crevaison\n") || !strings.Contains(out, "Autre (requires --details)") {
		t.Fatalf("problems output = %q", out)
	}
}
