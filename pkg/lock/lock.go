// Package lock реализует распределённую блокировку слота бронирования.
// Блокировка сериализует окно "прочитать-проверить-записать" для пары
// (мастерская, время начала): два одновременных запроса на одно и то же время
// не могут оба пройти проверку пересечений.
package lock

import (
	"context"
	"fmt"
	"time"
)

// DistributedLock — примитив взаимного исключения с TTL.
// TTL — страховка на случай падения держателя без освобождения; при нормальных
// задержках блокировка всегда снимается явным Release до истечения TTL.
type DistributedLock interface {
	// TryAcquire пытается захватить ключ. false без ошибки — ключ уже занят.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release безусловно снимает блокировку
	Release(ctx context.Context, key string) error
}

// BookingKey строит ключ блокировки для слота. Ключ привязан к точному времени
// начала: пересекающиеся, но разные start_time разводятся повторной проверкой
// пересечений уже под блокировкой.
func BookingKey(shopID int64, start time.Time) string {
	return fmt.Sprintf("booking_lock:%d:%s", shopID, start.Format("2006-01-02T15:04"))
}
