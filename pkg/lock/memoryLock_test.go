package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemoryLockAcquireRelease тестирует захват, отказ и освобождение
func TestMemoryLockAcquireRelease(t *testing.T) {
	l := NewMemoryLock(time.Minute)
	defer l.Stop()
	ctx := context.Background()

	granted, err := l.TryAcquire(ctx, "booking_lock:1:2026-02-20T10:00", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, granted)

	// повторный захват того же ключа отклоняется
	granted, err = l.TryAcquire(ctx, "booking_lock:1:2026-02-20T10:00", 10*time.Second)
	require.NoError(t, err)
	assert.False(t, granted)

	// другой ключ свободен
	granted, err = l.TryAcquire(ctx, "booking_lock:1:2026-02-20T10:30", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, granted)

	require.NoError(t, l.Release(ctx, "booking_lock:1:2026-02-20T10:00"))
	granted, err = l.TryAcquire(ctx, "booking_lock:1:2026-02-20T10:00", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, granted)
}

// TestMemoryLockTTLExpiry тестирует автоматическое истечение блокировки
func TestMemoryLockTTLExpiry(t *testing.T) {
	l := NewMemoryLock(10 * time.Millisecond)
	defer l.Stop()
	ctx := context.Background()

	granted, err := l.TryAcquire(ctx, "key", 30*time.Millisecond)
	require.NoError(t, err)
	require.True(t, granted)

	granted, err = l.TryAcquire(ctx, "key", 30*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, granted)

	// после TTL ключ снова доступен, упавший держатель не блокирует слот навсегда
	assert.Eventually(t, func() bool {
		granted, err := l.TryAcquire(ctx, "key", 30*time.Millisecond)
		return err == nil && granted
	}, time.Second, 10*time.Millisecond)
}

// TestMemoryLockConcurrent тестирует единственность держателя под гонкой
func TestMemoryLockConcurrent(t *testing.T) {
	l := NewMemoryLock(time.Minute)
	defer l.Stop()
	ctx := context.Background()

	const goroutines = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			granted, err := l.TryAcquire(ctx, "contested", time.Minute)
			if err == nil && granted {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}

// TestBookingKey тестирует формат ключа блокировки слота
func TestBookingKey(t *testing.T) {
	start := time.Date(2026, 2, 20, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "booking_lock:7:2026-02-20T10:30", BookingKey(7, start))

	// одинаковое время в разных мастерских не конфликтует
	assert.NotEqual(t, BookingKey(1, start), BookingKey(2, start))
}
