package broadcast

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
)

// RedisBroadcast — вещание через Redis PUBLISH/SUBSCRIBE. Нативная подписка
// go-redis отдаёт сообщения через канал, без цикла опроса.
type RedisBroadcast struct {
	client *redis.Client
}

func NewRedisBroadcast(client *redis.Client) *RedisBroadcast {
	return &RedisBroadcast{client: client}
}

func (b *RedisBroadcast) Publish(ctx context.Context, payload []byte) error {
	if err := b.client.Publish(ctx, Channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", Channel, err)
	}
	return nil
}

func (b *RedisBroadcast) Subscribe(ctx context.Context) (Subscription, error) {
	pubsub := b.client.Subscribe(ctx, Channel)

	// Дожидаемся подтверждения подписки, чтобы не потерять события,
	// опубликованные сразу после возврата из Subscribe
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", Channel, err)
	}

	sub := &redisSubscription{
		pubsub: pubsub,
		events: make(chan []byte),
		done:   make(chan struct{}),
	}
	go sub.pump(pubsub.Channel())
	return sub, nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	events chan []byte
	done   chan struct{}
	once   sync.Once
}

// pump перекачивает события подписчику. Отправка прерывается по done:
// отключившийся подписчик уже ничего не читает, и без этого горутина
// зависла бы на отправке навсегда.
func (s *redisSubscription) pump(src <-chan *redis.Message) {
	defer close(s.events)
	for {
		select {
		case msg, ok := <-src:
			if !ok {
				return
			}
			select {
			case s.events <- []byte(msg.Payload):
			case <-s.done:
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *redisSubscription) Events() <-chan []byte {
	return s.events
}

func (s *redisSubscription) Close() error {
	s.once.Do(func() {
		close(s.done)
	})
	if s.pubsub == nil {
		return nil
	}
	return s.pubsub.Close()
}
