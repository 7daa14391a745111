package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	repository "github.com/solomonczyk/autoservice/internal/database/postgres"
	"github.com/solomonczyk/autoservice/internal/entity"
	"github.com/solomonczyk/autoservice/pkg/lock"

	"github.com/sirupsen/logrus"
)

const releaseTimeout = 3 * time.Second

type appointmentService struct {
	appointmentRepo repository.AppointmentRepository
	clientRepo      repository.ClientRepository
	serviceRepo     repository.ServiceRepository
	slots           SlotService
	locker          lock.DistributedLock
	lockTTL         time.Duration
	publisher       EventPublisher
	notifier        Notifier
}

// NewAppointmentService создает новый экземпляр AppointmentService
func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	clientRepo repository.ClientRepository,
	serviceRepo repository.ServiceRepository,
	slots SlotService,
	locker lock.DistributedLock,
	lockTTL time.Duration,
	publisher EventPublisher,
	notifier Notifier,
) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepo,
		serviceRepo:     serviceRepo,
		slots:           slots,
		locker:          locker,
		lockTTL:         lockTTL,
		publisher:       publisher,
		notifier:        notifier,
	}
}

// Create создает новую запись.
//
// Последовательность: блокировка слота (shop_id, start_time) → повторная
// проверка доступности по генератору слотов уже под блокировкой → разрешение
// клиента по телефону → вставка → снятие блокировки → событие изменения.
// Лист ожидания (waitlist) не резервирует ресурс и минует блокировку и
// проверку пересечений.
func (s *appointmentService) Create(ctx context.Context, req *CreateAppointmentRequest) (*entity.Appointment, error) {
	svc, err := s.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	start := req.StartTime.Time
	end := entity.ComputeEndTime(start, svc.DurationMinutes)

	if req.Waitlist {
		return s.createWithStatus(ctx, req, start, end, entity.StatusWaitlist, entity.ChangeWaitlistAdd)
	}

	key := lock.BookingKey(req.ShopID, start)
	granted, err := s.locker.TryAcquire(ctx, key, s.lockTTL)
	if err != nil {
		// координатор недоступен — отклоняем, бронировать без блокировки нельзя
		logrus.Errorf("Lock acquisition failed for %s: %v", key, err)
		return nil, entity.ErrLockUnavailable
	}
	if !granted {
		return nil, entity.ErrSlotLocked
	}
	defer s.release(key)

	// Проверка уже под блокировкой: время должно входить в актуальную выдачу
	// генератора слотов, присланное клиентом значение не принимается на веру
	free, err := s.slotAvailable(ctx, req.ShopID, svc.DurationMinutes, start, 0)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, entity.ErrSlotTaken
	}

	return s.createWithStatus(ctx, req, start, end, entity.StatusNew, entity.ChangeNewAppointment)
}

func (s *appointmentService) createWithStatus(
	ctx context.Context,
	req *CreateAppointmentRequest,
	start, end time.Time,
	status entity.AppointmentStatus,
	changeType entity.ChangeType,
) (*entity.Appointment, error) {
	client, err := s.resolveClient(ctx, req)
	if err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		ShopID:    req.ShopID,
		ClientID:  client.ID,
		ServiceID: req.ServiceID,
		StartTime: entity.NewLocalTime(start),
		EndTime:   entity.NewLocalTime(end),
		Status:    status,
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	logrus.Infof("Appointment created: ID=%d, Shop=%d, Client=%d, Start=%s, Status=%s",
		appointment.ID, appointment.ShopID, appointment.ClientID,
		start.Format("2006-01-02 15:04"), appointment.Status)

	s.publish(ctx, changeType, appointment)
	return appointment, nil
}

// resolveClient находит клиента по телефону или создает нового
func (s *appointmentService) resolveClient(ctx context.Context, req *CreateAppointmentRequest) (*entity.Client, error) {
	client, err := s.clientRepo.GetByPhone(ctx, req.ClientPhone)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, entity.ErrClientNotFound) {
		return nil, err
	}

	client = &entity.Client{
		Phone:       req.ClientPhone,
		FullName:    req.ClientName,
		TelegramID:  req.ClientTelegramID,
		VehicleInfo: req.VehicleInfo,
	}
	err = s.clientRepo.Create(ctx, client)
	if errors.Is(err, entity.ErrClientExists) {
		// проигрыш гонки с параллельным созданием — перечитываем
		return s.clientRepo.GetByPhone(ctx, req.ClientPhone)
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (s *appointmentService) Get(ctx context.Context, shopID, id int64) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.ShopID != shopID {
		return nil, entity.ErrForbidden
	}
	return appointment, nil
}

func (s *appointmentService) List(ctx context.Context, shopID int64, from, to time.Time) ([]*entity.Appointment, error) {
	return s.appointmentRepo.ListByShop(ctx, shopID, from, to)
}

// Reschedule переносит запись и/или меняет услугу. end_time пересчитывается из
// длительности (возможно новой) услуги — start_time и end_time не могут
// разойтись. Проверка пересечений выполняется под блокировкой и исключает
// собственную прежнюю занятость записи.
func (s *appointmentService) Reschedule(ctx context.Context, shopID, id int64, req *RescheduleAppointmentRequest) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.ShopID != shopID {
		return nil, entity.ErrForbidden
	}

	serviceID := appointment.ServiceID
	if req.ServiceID != nil {
		serviceID = *req.ServiceID
	}
	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	newStart := appointment.StartTime.Time
	if req.StartTime != nil {
		newStart = req.StartTime.Time
	}
	newEnd := entity.ComputeEndTime(newStart, svc.DurationMinutes)

	key := lock.BookingKey(shopID, newStart)
	granted, err := s.locker.TryAcquire(ctx, key, s.lockTTL)
	if err != nil {
		logrus.Errorf("Lock acquisition failed for %s: %v", key, err)
		return nil, entity.ErrLockUnavailable
	}
	if !granted {
		return nil, entity.ErrSlotLocked
	}
	defer s.release(key)

	// Записи, не резервирующие время (waitlist, cancelled), двигаются свободно
	if appointment.Status.Blocks() {
		free, err := s.slotAvailable(ctx, shopID, svc.DurationMinutes, newStart, id)
		if err != nil {
			return nil, err
		}
		if !free {
			return nil, entity.ErrSlotTaken
		}
	}

	appointment.ServiceID = serviceID
	appointment.StartTime = entity.NewLocalTime(newStart)
	appointment.EndTime = entity.NewLocalTime(newEnd)

	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	logrus.Infof("Appointment rescheduled: ID=%d, Start=%s, Service=%d",
		appointment.ID, newStart.Format("2006-01-02 15:04"), serviceID)

	s.publish(ctx, entity.ChangeAppointmentUpdated, appointment)
	return appointment, nil
}

// UpdateStatus записывает новый статус. Граф переходов не навязывается:
// авторизованный сотрудник может выставить любой статус (поведение дашборда),
// нетипичные переходы отмечаются в логе. Уведомление клиенту уходит только
// когда статус реально изменился и у клиента привязан Telegram.
func (s *appointmentService) UpdateStatus(ctx context.Context, shopID, id int64, status entity.AppointmentStatus) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.ShopID != shopID {
		return nil, entity.ErrForbidden
	}

	return s.transitionStatus(ctx, appointment, status)
}

// Cancel отменяет запись. Повторная отмена — no-op без ошибки.
func (s *appointmentService) Cancel(ctx context.Context, shopID, id int64) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shopID != 0 && appointment.ShopID != shopID {
		return nil, entity.ErrForbidden
	}

	if appointment.Status == entity.StatusCancelled {
		return appointment, nil
	}
	return s.transitionStatus(ctx, appointment, entity.StatusCancelled)
}

func (s *appointmentService) transitionStatus(ctx context.Context, appointment *entity.Appointment, status entity.AppointmentStatus) (*entity.Appointment, error) {
	oldStatus := appointment.Status

	if oldStatus != status && !regularTransition(oldStatus, status) {
		logrus.Warnf("Irregular status transition for appointment %d: %s -> %s",
			appointment.ID, oldStatus, status)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointment.ID, status); err != nil {
		return nil, err
	}
	appointment.Status = status

	s.publish(ctx, entity.ChangeStatusUpdate, appointment)

	if oldStatus != status {
		go s.notifyStatusChange(appointment)
	}
	return appointment, nil
}

// regularTransition проверяет, типичен ли переход по жизненному циклу записи
func regularTransition(from, to entity.AppointmentStatus) bool {
	if to == entity.StatusCancelled {
		return from != entity.StatusDone
	}
	switch from {
	case entity.StatusNew:
		return to == entity.StatusConfirmed
	case entity.StatusConfirmed:
		return to == entity.StatusInProgress
	case entity.StatusInProgress:
		return to == entity.StatusDone
	default:
		return false
	}
}

// notifyStatusChange отправляет клиенту уведомление о смене статуса.
// Ошибки отправки логируются и не влияют на результат операции.
func (s *appointmentService) notifyStatusChange(appointment *entity.Appointment) {
	if s.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := s.clientRepo.GetByID(ctx, appointment.ClientID)
	if err != nil || !client.HasTelegram() {
		return
	}

	svc, err := s.serviceRepo.GetByID(ctx, appointment.ServiceID)
	if err != nil {
		logrus.Errorf("Failed to load service %d for notification: %v", appointment.ServiceID, err)
		return
	}

	message := statusMessage(svc.Name, appointment.Status)
	if message == "" {
		return
	}

	if err := s.notifier.SendMessage(*client.TelegramID, message); err != nil {
		logrus.Errorf("Failed to notify client %d: %v", client.ID, err)
	}
}

// statusMessage возвращает текст уведомления для статуса; пустая строка —
// статус без уведомления
func statusMessage(serviceName string, status entity.AppointmentStatus) string {
	switch status {
	case entity.StatusConfirmed:
		return fmt.Sprintf("✅ Ваша запись на услугу «%s» подтверждена!", serviceName)
	case entity.StatusInProgress:
		return fmt.Sprintf("🔧 Мастер приступил к работе над вашим автомобилем («%s»).", serviceName)
	case entity.StatusDone:
		return fmt.Sprintf("🎉 Ваш автомобиль готов! Услуга «%s» выполнена. Ждем вас!", serviceName)
	case entity.StatusCancelled:
		return fmt.Sprintf("🚫 К сожалению, ваша запись на «%s» была отменена. Пожалуйста, свяжитесь с нами для уточнения.", serviceName)
	default:
		return ""
	}
}

// slotAvailable проверяет, входит ли время в актуальную выдачу генератора слотов
func (s *appointmentService) slotAvailable(ctx context.Context, shopID int64, durationMinutes int, start time.Time, excludeID int64) (bool, error) {
	slots, err := s.slots.AvailableSlots(ctx, shopID, durationMinutes, start, excludeID)
	if err != nil {
		return false, err
	}
	for _, slot := range slots {
		if slot.Equal(start) {
			return true, nil
		}
	}
	return false, nil
}

// release снимает блокировку в отдельном контексте: отмена контекста запроса
// не должна оставить слот заблокированным до истечения TTL
func (s *appointmentService) release(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	if err := s.locker.Release(ctx, key); err != nil {
		logrus.Errorf("Failed to release lock %s: %v", key, err)
	}
}

// publish отправляет событие изменения после фиксации записи.
// Ошибка публикации не откатывает транзакцию — логируется и проглатывается.
func (s *appointmentService) publish(ctx context.Context, changeType entity.ChangeType, appointment *entity.Appointment) {
	if s.publisher == nil {
		return
	}
	event := entity.NewChangeEvent(changeType, appointment)
	if err := s.publisher.Publish(ctx, event); err != nil {
		logrus.Errorf("Failed to publish change event %s for appointment %d: %v",
			changeType, appointment.ID, err)
	}
}
