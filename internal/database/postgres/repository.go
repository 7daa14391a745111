package repository

import (
	"context"
	"time"

	"github.com/solomonczyk/autoservice/internal/entity"
)

type AppointmentRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, appointment *entity.Appointment) error
	GetByID(ctx context.Context, id int64) (*entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
	UpdateStatus(ctx context.Context, id int64, status entity.AppointmentStatus) error

	// Query operations
	ListByShop(ctx context.Context, shopID int64, from, to time.Time) ([]*entity.Appointment, error)
	ListByClient(ctx context.Context, clientID int64) ([]*entity.Appointment, error)

	// ListOverlapping возвращает записи мастерской, резервирующие время
	// (без cancelled и waitlist), чьё начало попадает в окно [from, to).
	// excludeID > 0 исключает собственную запись при переносе.
	ListOverlapping(ctx context.Context, shopID int64, from, to time.Time, excludeID int64) ([]*entity.Appointment, error)

	// ListReminders возвращает данные для напоминаний по подтверждённым записям,
	// начинающимся в окне [from, to), у клиентов с привязанным Telegram
	ListReminders(ctx context.Context, from, to time.Time) ([]*entity.AppointmentReminder, error)
}

type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Client, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*entity.Client, error)
	UpdateTelegramID(ctx context.Context, clientID, telegramID int64) error
	GetAll(ctx context.Context) ([]*entity.Client, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id int64) (*entity.Service, error)
	GetAll(ctx context.Context) ([]*entity.Service, error)
	// Delete отклоняет удаление услуги, на которую ссылаются записи
	Delete(ctx context.Context, id int64) error
}

type ShopRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Shop, error)
	GetAll(ctx context.Context) ([]*entity.Shop, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
