package broadcast

import (
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSubscription() (*redisSubscription, chan *redis.Message) {
	sub := &redisSubscription{
		events: make(chan []byte),
		done:   make(chan struct{}),
	}
	src := make(chan *redis.Message, 2)
	return sub, src
}

// TestPumpDeliversEvents тестирует доставку событий подписчику
func TestPumpDeliversEvents(t *testing.T) {
	sub, src := newTestSubscription()
	go sub.pump(src)

	src <- &redis.Message{Payload: `{"type":"NEW_APPOINTMENT"}`}

	select {
	case msg := <-sub.Events():
		assert.Equal(t, `{"type":"NEW_APPOINTMENT"}`, string(msg))
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}

	// источник закрылся — канал событий закрывается следом
	close(src)
	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("events channel was not closed")
	}
}

// TestPumpStopsOnClose тестирует остановку перекачки при отключении подписчика,
// даже когда отправка события уже заблокирована без читателя
func TestPumpStopsOnClose(t *testing.T) {
	sub, src := newTestSubscription()
	src <- &redis.Message{Payload: "first"}
	src <- &redis.Message{Payload: "second"}
	go sub.pump(src)

	// подписчик прочитал одно событие и отключился
	select {
	case msg := <-sub.Events():
		require.Equal(t, "first", string(msg))
	case <-time.After(time.Second):
		t.Fatal("first event was not delivered")
	}

	require.NoError(t, sub.Close())

	// перекачка завершается и закрывает канал, а не висит на втором событии
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-sub.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("pump did not stop after Close")
		}
	}
}

// TestSubscriptionCloseIdempotent тестирует повторное закрытие подписки
func TestSubscriptionCloseIdempotent(t *testing.T) {
	sub, src := newTestSubscription()
	go sub.pump(src)

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())
}
