package store

import "context"

// DefaultKey is the key the appointment snapshot lives under. It matches the
// key used by the mobile client's local storage so snapshots can be moved
// between the two verbatim.
const DefaultKey = "@bike_repair_appointments"

// KV is an opaque string key-value store. Get reports ok=false when the key
// has never been written.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
