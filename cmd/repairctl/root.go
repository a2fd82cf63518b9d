package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	repairv1 "bikerepair/internal/api/repairv1"
)

const dateLayout = "2006-01-02"

type cli struct {
	addr    string
	timeout time.Duration
	verbose bool
	log     *slog.Logger
}

func NewRootCmd() *cobra.Command {
	c := &cli{log: slog.New(slog.NewTextHandler(io.Discard, nil))}

	defaultAddr := strings.TrimSpace(os.Getenv("REPAIRCTL_ADDR"))
	if defaultAddr == "" {
		defaultAddr = "localhost:50051"
	}

	root := &cobra.Command{
		Use:           "repairctl",
		Short:         "CLI client for the bike repair appointments service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if c.verbose {
				level = slog.LevelDebug
			}
			c.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	root.PersistentFlags().StringVar(&c.addr, "addr", defaultAddr, "gRPC server address (env REPAIRCTL_ADDR)")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 10*time.Second, "per-request timeout")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		c.slotsCmd(),
		c.problemsCmd(),
		c.bookCmd(),
		c.listCmd("upcoming", "List upcoming appointments, earliest first", func(ctx context.Context, client repairv1.AppointmentsServiceClient) (*repairv1.ListAppointmentsResponse, error) {
			return client.ListUpcomingAppointments(ctx, &repairv1.ListUpcomingAppointmentsRequest{})
		}),
		c.listCmd("past", "List past and completed appointments, latest first", func(ctx context.Context, client repairv1.AppointmentsServiceClient) (*repairv1.ListAppointmentsResponse, error) {
			return client.ListPastAppointments(ctx, &repairv1.ListPastAppointmentsRequest{})
		}),
		c.statusCmd(),
		c.deleteCmd(),
	)
	return root
}

// call dials the server, runs fn with a timeout and closes the connection.
func (c *cli) call(cmd *cobra.Command, fn func(ctx context.Context, client repairv1.AppointmentsServiceClient) error) error {
	conn, err := grpc.NewClient(c.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("connect %s: %w", c.addr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
	defer cancel()

	c.log.Debug("calling server", slog.String("addr", c.addr), slog.String("command", cmd.Name()))
	if err := fn(ctx, repairv1.NewAppointmentsServiceClient(conn)); err != nil {
		if st, ok := status.FromError(err); ok {
			c.log.Debug("request failed", slog.String("code", st.Code().String()), slog.String("message", st.Message()))
			return fmt.Errorf("%s: %s", st.Code(), st.Message())
		}
		return err
	}
	return nil
}

func (c *cli) slotsCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List the bookable time slots for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			return c.call(cmd, func(ctx context.Context, client repairv1.AppointmentsServiceClient) error {
				resp, err := client.ListTimeSlots(ctx, &repairv1.ListTimeSlotsRequest{Date: d})
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, s := range resp.Slots {
					fmt.Fprintf(w, "%s\t%s\n", s.Time, availability(s.Available))
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func (c *cli) problemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "problems",
		Short: "List the problem catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, client repairv1.AppointmentsServiceClient) error {
				resp, err := client.ListProblems(ctx, &repairv1.ListProblemsRequest{})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, p := range resp.Problems {
					if p == resp.Other {
						fmt.Fprintf(out, "%s (requires --details)\n", p)
						continue
					}
					fmt.Fprintln(out, p)
				}
				return nil
			})
		},
	}
}

func (c *cli) bookCmd() *cobra.Command {
	var address, date, slot, problem, details string
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a repair appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			return c.call(cmd, func(ctx context.Context, client repairv1.AppointmentsServiceClient) error {
				resp, err := client.CreateAppointment(ctx, &repairv1.CreateAppointmentRequest{
					Address:       address,
					Date:          d,
					TimeSlot:      slot,
					Problem:       problem,
					CustomProblem: details,
				})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "booked %s on %s at %s\n", resp.Appointment.Id, resp.Appointment.Date.Format(dateLayout), resp.Appointment.TimeSlot)
				warnNotDurable(out, resp.Durable)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "visit address (required)")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&slot, "slot", "", "time slot as HH:MM (required)")
	cmd.Flags().StringVar(&problem, "problem", "", "problem from the catalog (required)")
	cmd.Flags().StringVar(&details, "details", "", "description when the problem is not in the catalog")
	for _, name := range []string{"address", "date", "slot", "problem"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (c *cli) listCmd(use, short string, list func(context.Context, repairv1.AppointmentsServiceClient) (*repairv1.ListAppointmentsResponse, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, client repairv1.AppointmentsServiceClient) error {
				resp, err := list(ctx, client)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if resp.Loading {
					fmt.Fprintln(out, "appointments are still loading")
					return nil
				}
				if len(resp.Appointments) == 0 {
					fmt.Fprintln(out, "no appointments")
					return nil
				}
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tDATE\tSLOT\tSTATUS\tPROBLEM\tADDRESS")
				for _, a := range resp.Appointments {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", a.Id, a.Date.Format(dateLayout), a.TimeSlot, a.StatusLabel, a.Problem, a.Address)
				}
				return w.Flush()
			})
		},
	}
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status APPOINTMENT_ID STATUS",
		Short: "Set an appointment status (pending, confirmed, completed, cancelled)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, client repairv1.AppointmentsServiceClient) error {
				resp, err := client.UpdateAppointmentStatus(ctx, &repairv1.UpdateAppointmentStatusRequest{
					AppointmentId: args[0],
					Status:        args[1],
				})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "updated %s\n", args[0])
				warnNotDurable(out, resp.Durable)
				return nil
			})
		},
	}
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete APPOINTMENT_ID",
		Short: "Delete an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, client repairv1.AppointmentsServiceClient) error {
				resp, err := client.DeleteAppointment(ctx, &repairv1.DeleteAppointmentRequest{AppointmentId: args[0]})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "deleted %s\n", args[0])
				warnNotDurable(out, resp.Durable)
				return nil
			})
		},
	}
}

func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("--date: want YYYY-MM-DD, got %q", raw)
	}
	return d, nil
}

func availability(ok bool) string {
	if ok {
		return "available"
	}
	return "taken"
}

func warnNotDurable(out io.Writer, durable bool) {
	if !durable {
		fmt.Fprintln(out, "warning: change kept in memory only; the server could not save it")
	}
}
