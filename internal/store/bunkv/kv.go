// Package bunkv implements the snapshot KV on top of a single bun table so the
// same code serves both the Postgres and the SQLite backends.
package bunkv

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

type Entry struct {
	bun.BaseModel `bun:"table:kv_entries"`

	Key       string    `bun:"kv_key,pk"`
	Value     string    `bun:"kv_value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

func (e *Entry) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery, *bun.UpdateQuery:
		e.UpdatedAt = time.Now().UTC()
	}
	return nil
}

type KV struct {
	db bun.IDB
}

func New(db bun.IDB) *KV {
	return &KV{db: db}
}

// EnsureSchema creates the backing table when it does not exist yet.
func EnsureSchema(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateTable().
		Model((*Entry)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	var e Entry
	err := k.db.NewSelect().
		Model(&e).
		Where("kv_key = ?", key).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

func (k *KV) Set(ctx context.Context, key, value string) error {
	e := Entry{Key: key, Value: value}
	_, err := k.db.NewInsert().
		Model(&e).
		On("CONFLICT (kv_key) DO UPDATE").
		Set("kv_value = EXCLUDED.kv_value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}
