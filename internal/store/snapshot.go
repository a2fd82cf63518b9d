package store

import (
	"encoding/json"
	"fmt"

	"bikerepair/internal/domain"
)

func encodeSnapshot(appts []domain.Appointment) (string, error) {
	if appts == nil {
		appts = []domain.Appointment{}
	}
	b, err := json.Marshal(appts)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeSnapshot parses a JSON array of appointments. A malformed array is an
// error; malformed, duplicate or id-less records are dropped and reported in
// skipped so the rest of the collection survives.
func decodeSnapshot(raw string) (appts []domain.Appointment, skipped []error, err error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, nil, err
	}

	appts = make([]domain.Appointment, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		var a domain.Appointment
		if err := json.Unmarshal(item, &a); err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if a.ID == "" {
			skipped = append(skipped, fmt.Errorf("record %d: missing id", i))
			continue
		}
		if !a.Status.Valid() {
			skipped = append(skipped, fmt.Errorf("record %d (%s): %w: %q", i, a.ID, ErrInvalidStatus, a.Status))
			continue
		}
		if _, dup := seen[a.ID]; dup {
			skipped = append(skipped, fmt.Errorf("record %d: duplicate id %q", i, a.ID))
			continue
		}
		seen[a.ID] = struct{}{}
		appts = append(appts, a)
	}
	return appts, skipped, nil
}
