package entity

import (
	"fmt"
	"time"
)

type AppointmentStatus string

const (
	StatusNew        AppointmentStatus = "new"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusDone       AppointmentStatus = "done"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusWaitlist   AppointmentStatus = "waitlist"
)

// ParseAppointmentStatus парсит строку в статус записи
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case StatusNew, StatusConfirmed, StatusInProgress, StatusDone, StatusCancelled, StatusWaitlist:
		return AppointmentStatus(s), nil
	default:
		return "", fmt.Errorf("invalid appointment status: %s", s)
	}
}

// Blocks сообщает, занимает ли запись в этом статусе рабочий ресурс.
// Отменённые записи и лист ожидания не резервируют время.
func (s AppointmentStatus) Blocks() bool {
	return s != StatusCancelled && s != StatusWaitlist
}

type Appointment struct {
	ID        int64             `json:"id" db:"id"`
	ShopID    int64             `json:"shop_id" db:"shop_id"`
	ClientID  int64             `json:"client_id" db:"client_id"`
	ServiceID int64             `json:"service_id" db:"service_id"`
	StartTime LocalTime         `json:"start_time" db:"start_time"`
	EndTime   LocalTime         `json:"end_time" db:"end_time"`
	Status    AppointmentStatus `json:"status" db:"status"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
}

// ComputeEndTime вычисляет время окончания записи из начала и длительности услуги.
// Единственное место, где end_time выводится из start_time: все пути записи
// (создание, перенос, смена услуги) обязаны проходить через эту функцию.
func ComputeEndTime(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}

// IntervalsOverlap проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и
// [bStart, bEnd). Записи "впритык" (конец одной равен началу другой) не пересекаются.
// Общий предикат для генератора слотов и проверки при бронировании.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Overlaps проверяет пересечение записи с интервалом [start, end)
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return IntervalsOverlap(start, end, a.StartTime.Time, a.EndTime.Time)
}

// AppointmentReminder представляет данные для напоминания клиенту о визите
type AppointmentReminder struct {
	AppointmentID int64     `json:"appointment_id"`
	StartTime     time.Time `json:"start_time"`
	ShopID        int64     `json:"shop_id"`
	ServiceName   string    `json:"service_name"`
	ClientName    string    `json:"client_name"`
	TelegramID    int64     `json:"telegram_id"`
}
