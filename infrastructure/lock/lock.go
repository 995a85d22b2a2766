package lock

import (
	"context"
	"time"
)

// ReleaseFunc libera o lock adquirido. Pode ser chamada mais de uma vez.
type ReleaseFunc func()

type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (ReleaseFunc, bool, error)
}
