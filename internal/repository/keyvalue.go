package repository

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore holds opaque values namespaced per learner. Writes replace the
// previous value; there is no cross-key transaction.
type KeyValueStore interface {
	Get(ctx context.Context, learnerID, key string) ([]byte, error)
	Put(ctx context.Context, learnerID, key string, value []byte) error
}
