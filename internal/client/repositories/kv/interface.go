// Package kv implements the device-local durable key-value store backing
// session and profile state. Keys are strings; a missing key is reported as
// a nil value, not an error. Values survive process restarts and are removed
// only by Delete/Clear or by wiping the data directory.
package kv

import (
	"context"
)

// Repository is the persistence contract shared by the session manager and
// the profile editor. Implementations must treat Set as an upsert and
// Delete as idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
