package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SlotInterval is the spacing between two bookable slots.
const SlotInterval = 30 * time.Minute

const isoMillis = "2006-01-02T15:04:05.000Z"

type TimeSlot struct {
	ID        string `json:"id"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// ServiceWindow is the daily visit window as offsets from midnight.
// Start is inclusive, End is exclusive.
type ServiceWindow struct {
	Start time.Duration
	End   time.Duration
}

var DefaultServiceWindow = ServiceWindow{
	Start: 16*time.Hour + 30*time.Minute,
	End:   19 * time.Hour,
}

func ParseServiceWindow(start, end string) (ServiceWindow, error) {
	s, err := parseClock(start)
	if err != nil {
		return ServiceWindow{}, fmt.Errorf("window start: %w", err)
	}
	e, err := parseClock(end)
	if err != nil {
		return ServiceWindow{}, fmt.Errorf("window end: %w", err)
	}
	w := ServiceWindow{Start: s, End: e}
	if err := w.Validate(); err != nil {
		return ServiceWindow{}, err
	}
	return w, nil
}

func (w ServiceWindow) Validate() error {
	if w.Start < 0 || w.End > 24*time.Hour {
		return errors.New("service window must stay within one day")
	}
	if w.End <= w.Start {
		return errors.New("service window end must be after start")
	}
	if w.Start%SlotInterval != 0 || w.End%SlotInterval != 0 {
		return errors.New("service window must align to 30 minute slots")
	}
	return nil
}

func (w ServiceWindow) String() string {
	return clockLabel(w.Start) + "-" + clockLabel(w.End)
}

// GenerateTimeSlots lists the slots offered on date. Every slot is reported
// available: bookings are not cross-checked against stored appointments.
func GenerateTimeSlots(date time.Time, w ServiceWindow) []TimeSlot {
	if w.End <= w.Start {
		return nil
	}
	prefix := date.UTC().Format(isoMillis)

	slots := make([]TimeSlot, 0, int((w.End-w.Start)/SlotInterval))
	for off := w.Start; off < w.End; off += SlotInterval {
		label := clockLabel(off)
		slots = append(slots, TimeSlot{
			ID:        prefix + "-" + label,
			Time:      label,
			Available: true,
		})
	}
	return slots
}

// HasSlot reports whether label is one of the slots generated for date.
func HasSlot(date time.Time, w ServiceWindow, label string) bool {
	for _, s := range GenerateTimeSlots(date, w) {
		if s.Time == label {
			return true
		}
	}
	return false
}

func clockLabel(d time.Duration) string {
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%02d:%02d", h, m)
}

func parseClock(raw string) (time.Duration, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", raw)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 24 {
		return 0, fmt.Errorf("invalid hour in %q", raw)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid minute in %q", raw)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}
