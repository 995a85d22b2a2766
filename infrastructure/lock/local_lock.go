package lock

import (
	"context"
	"sync"
	"time"
)

// LocalLocker é usado quando não há Redis configurado; vale apenas dentro do processo.
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]time.Time
	clock func() time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		held:  make(map[string]time.Time),
		clock: time.Now,
	}
}

func (l *LocalLocker) Acquire(_ context.Context, key string, ttl time.Duration) (ReleaseFunc, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if expiresAt, ok := l.held[key]; ok && now.Before(expiresAt) {
		return nil, false, nil
	}

	expiresAt := now.Add(ttl)
	l.held[key] = expiresAt

	var once sync.Once
	release := func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			// outro dono pode ter assumido após o TTL expirar
			if current, ok := l.held[key]; ok && current.Equal(expiresAt) {
				delete(l.held, key)
			}
		})
	}

	return release, true, nil
}
