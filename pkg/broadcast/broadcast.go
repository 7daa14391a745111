// Package broadcast реализует широковещательный канал изменений записей.
// Доставка best-effort: подписчик получает только события, опубликованные после
// подписки, без повтора после переподключения.
package broadcast

import "context"

// Channel — имя канала с событиями изменений записей
const Channel = "appointments:updates"

// Broadcaster публикует сообщения и раздаёт подписки
type Broadcaster interface {
	Publish(ctx context.Context, payload []byte) error
	Subscribe(ctx context.Context) (Subscription, error)
}

// Subscription — подписка одного слушателя (например, одного подключения дашборда)
type Subscription interface {
	// Events возвращает канал входящих сообщений; закрывается после Close
	Events() <-chan []byte
	Close() error
}
