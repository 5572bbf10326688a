// Package lock serializes work on a named resource, either inside one process
// or across instances sharing a Redis server.
package lock

import (
	"context"
	"errors"
)

// ErrNotAcquired is returned when a lock could not be taken before the
// context was done.
var ErrNotAcquired = errors.New("lock: not acquired")

// Locker hands out exclusive ownership of a key. The returned release func
// must be called exactly once; extra calls are no-ops.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
