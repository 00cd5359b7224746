package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("store: key not found")

// Storage keys owned by the session manager. No other component writes to
// these slots.
const (
	KeyActiveSession     = "interview:active_session"
	KeyCompletedSessions = "interview:completed_sessions"
)

// KeyValueStore is the durable string-keyed persistence layer backing session
// recovery. Values are JSON documents.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
