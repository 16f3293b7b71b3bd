// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned when no snapshot exists under the storage key.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository is the durable local key-value slot for the whitelisted
// state snapshot. The payload is an opaque JSON document; the key carries the
// storage version, so bumping the key intentionally orphans prior snapshots.
type SnapshotRepository interface {
	// Save writes the payload under the storage key, replacing any prior snapshot.
	Save(ctx context.Context, key string, payload []byte) error

	// Load reads the payload stored under the storage key.
	Load(ctx context.Context, key string) ([]byte, error)
}
