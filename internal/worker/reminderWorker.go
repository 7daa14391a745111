package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	repository "github.com/solomonczyk/autoservice/internal/database/postgres"
	"github.com/solomonczyk/autoservice/internal/entity"
	"github.com/solomonczyk/autoservice/internal/service"
)

// ReminderDedup отмечает отправленные напоминания. Отметка разделяется
// всеми инстансами сервиса: клиент получает напоминание один раз.
type ReminderDedup interface {
	// MarkSent атомарно ставит отметку; false — напоминание уже отправлено
	MarkSent(ctx context.Context, appointmentID int64, ttl time.Duration) (bool, error)
	Unmark(ctx context.Context, appointmentID int64) error
}

// RedisReminderDedup — отметки через SETNX с TTL
type RedisReminderDedup struct {
	client *redis.Client
}

func NewRedisReminderDedup(client *redis.Client) *RedisReminderDedup {
	return &RedisReminderDedup{client: client}
}

func dedupKey(appointmentID int64) string {
	return fmt.Sprintf("reminder_sent:%d", appointmentID)
}

func (d *RedisReminderDedup) MarkSent(ctx context.Context, appointmentID int64, ttl time.Duration) (bool, error) {
	return d.client.SetNX(ctx, dedupKey(appointmentID), 1, ttl).Result()
}

func (d *RedisReminderDedup) Unmark(ctx context.Context, appointmentID int64) error {
	return d.client.Del(ctx, dedupKey(appointmentID)).Err()
}

// ReminderWorker периодически рассылает клиентам напоминания о
// подтверждённых записях, до которых осталось меньше lead.
type ReminderWorker struct {
	appointmentRepo repository.AppointmentRepository
	dedup           ReminderDedup
	notifier        service.Notifier
	interval        time.Duration
	lead            time.Duration
}

func NewReminderWorker(
	appointmentRepo repository.AppointmentRepository,
	dedup ReminderDedup,
	notifier service.Notifier,
	interval, lead time.Duration,
) *ReminderWorker {
	return &ReminderWorker{
		appointmentRepo: appointmentRepo,
		dedup:           dedup,
		notifier:        notifier,
		interval:        interval,
		lead:            lead,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Reminder worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Reminder worker stopped")
			return
		case <-ticker.C:
			w.sendDueReminders(ctx)
		}
	}
}

// sendDueReminders обходит записи, начинающиеся в окне [now, now+lead)
func (w *ReminderWorker) sendDueReminders(ctx context.Context) {
	now := time.Now()

	reminders, err := w.appointmentRepo.ListReminders(ctx, now, now.Add(w.lead))
	if err != nil {
		logrus.Errorf("Failed to list due reminders: %v", err)
		return
	}

	if len(reminders) == 0 {
		return
	}

	sentCount := 0
	for _, reminder := range reminders {
		select {
		case <-ctx.Done():
			logrus.Info("Reminder run interrupted by context cancellation")
			return
		default:
		}

		sent, err := w.sendReminder(ctx, reminder)
		if err != nil {
			logrus.Errorf("Failed to send reminder for appointment %d: %v", reminder.AppointmentID, err)
			continue
		}
		if sent {
			sentCount++
		}
	}

	if sentCount > 0 {
		logrus.Infof("Reminder run completed: %d reminders sent", sentCount)
	}
}

// sendReminder отправляет одно напоминание; отметка ставится до отправки,
// чтобы при рестарте или нескольких инстансах клиент не получил дубль
func (w *ReminderWorker) sendReminder(ctx context.Context, reminder *entity.AppointmentReminder) (bool, error) {
	// отметка живёт дольше lead, чтобы пережить всё окно напоминания
	acquired, err := w.dedup.MarkSent(ctx, reminder.AppointmentID, w.lead+time.Hour)
	if err != nil {
		return false, fmt.Errorf("failed to mark reminder as sent: %w", err)
	}
	if !acquired {
		return false, nil
	}

	text := fmt.Sprintf(
		"🔔 Напоминание: вы записаны на «%s» сегодня в %s.\nЖдём вас, %s!",
		reminder.ServiceName,
		reminder.StartTime.Format("15:04"),
		reminder.ClientName,
	)

	if err := w.notifier.SendMessage(reminder.TelegramID, text); err != nil {
		// снимаем отметку, чтобы следующий прогон повторил попытку
		if unmarkErr := w.dedup.Unmark(ctx, reminder.AppointmentID); unmarkErr != nil {
			logrus.Warnf("Failed to unmark reminder %d: %v", reminder.AppointmentID, unmarkErr)
		}
		return false, err
	}

	logrus.Debugf("Reminder sent for appointment %d", reminder.AppointmentID)
	return true, nil
}
