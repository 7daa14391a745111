package lock

import (
	"context"
	"sync"
	"time"
)

// MemoryLock — блокировка в памяти процесса для одноузлового развёртывания и
// тестов. Janitor-горутина периодически удаляет ключи с истёкшим TTL, как это
// делает Redis с EX.
type MemoryLock struct {
	mu       sync.Mutex
	held     map[string]time.Time
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewMemoryLock(janitorInterval time.Duration) *MemoryLock {
	l := &MemoryLock{
		held:     make(map[string]time.Time),
		stopChan: make(chan struct{}),
	}
	go l.janitor(janitorInterval)
	return l
}

func (l *MemoryLock) TryAcquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if expiry, ok := l.held[key]; ok && expiry.After(now) {
		return false, nil
	}
	l.held[key] = now.Add(ttl)
	return true, nil
}

func (l *MemoryLock) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.held, key)
	return nil
}

// Stop останавливает janitor-горутину
func (l *MemoryLock) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
}

func (l *MemoryLock) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.mu.Lock()
			now := time.Now()
			for key, expiry := range l.held {
				if !expiry.After(now) {
					delete(l.held, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
