package service

import (
	"context"
	"time"

	"github.com/solomonczyk/autoservice/internal/entity"
)

// SlotService вычисляет доступные слоты. Чистая функция от своих аргументов и
// снимка календаря: тот же генератор используется и для выдачи слотов клиенту,
// и как оракул валидации при бронировании.
type SlotService interface {
	// AvailableSlots возвращает упорядоченные по времени свободные начала слотов
	// на дату. excludeID > 0 исключает собственную запись при переносе.
	AvailableSlots(ctx context.Context, shopID int64, durationMinutes int, date time.Time, excludeID int64) ([]time.Time, error)
}

// AppointmentService реализует транзакцию бронирования: блокировка слота,
// повторная проверка доступности, разрешение клиента, запись, событие изменения
type AppointmentService interface {
	// Основные операции
	Create(ctx context.Context, req *CreateAppointmentRequest) (*entity.Appointment, error)
	Get(ctx context.Context, shopID, id int64) (*entity.Appointment, error)
	List(ctx context.Context, shopID int64, from, to time.Time) ([]*entity.Appointment, error)
	Reschedule(ctx context.Context, shopID, id int64, req *RescheduleAppointmentRequest) (*entity.Appointment, error)
	UpdateStatus(ctx context.Context, shopID, id int64, status entity.AppointmentStatus) (*entity.Appointment, error)

	// Cancel идемпотентна: повторная отмена уже отменённой записи — no-op.
	// shopID == 0 пропускает проверку арендатора (линия чат-бота).
	Cancel(ctx context.Context, shopID, id int64) (*entity.Appointment, error)
}

// AuthService выдаёт и проверяет токены сотрудников
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	ParseToken(token string) (*Claims, error)
}

// ClientService — операции над клиентами мастерской
type ClientService interface {
	GetAll(ctx context.Context) ([]*entity.Client, error)
	// BindTelegram привязывает telegram_id к клиенту, созданному ранее только по телефону
	BindTelegram(ctx context.Context, clientID, telegramID int64) error
	Appointments(ctx context.Context, clientID int64) ([]*entity.Appointment, error)
}

// CatalogService — справочники услуг и мастерских
type CatalogService interface {
	CreateService(ctx context.Context, req *CreateServiceRequest) (*entity.Service, error)
	GetServices(ctx context.Context) ([]*entity.Service, error)
	DeleteService(ctx context.Context, id int64) error
	GetShops(ctx context.Context) ([]*entity.Shop, error)
}

// Notifier — отправка сообщений клиенту (Telegram). Инжектируется снаружи,
// жизненным циклом владеет запуск процесса.
type Notifier interface {
	SendMessage(chatID int64, text string) error
}

// EventPublisher публикует события изменений записей. Ошибка публикации не
// откатывает транзакцию бронирования — логируется и проглатывается.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.ChangeEvent) error
}

// CreateAppointmentRequest представляет данные для создания записи.
// ShopID берётся из личности вызывающего, никогда из тела запроса.
type CreateAppointmentRequest struct {
	ShopID           int64            `json:"-"`
	ServiceID        int64            `json:"service_id" binding:"required"`
	StartTime        entity.LocalTime `json:"start_time" binding:"required"`
	ClientName       string           `json:"client_name" binding:"required"`
	ClientPhone      string           `json:"client_phone" binding:"required"`
	ClientTelegramID *int64           `json:"client_telegram_id"`
	VehicleInfo      string           `json:"vehicle_info"`
	Waitlist         bool             `json:"waitlist"`
}

// RescheduleAppointmentRequest представляет перенос записи и/или смену услуги
type RescheduleAppointmentRequest struct {
	ServiceID *int64            `json:"service_id"`
	StartTime *entity.LocalTime `json:"start_time"`
}

// CreateServiceRequest представляет данные для создания услуги
type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=1"`
	BasePrice       float64 `json:"base_price" binding:"min=0"`
}
