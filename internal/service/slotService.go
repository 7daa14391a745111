package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/solomonczyk/autoservice/internal/database/postgres"
	"github.com/solomonczyk/autoservice/internal/entity"
)

type slotService struct {
	appointmentRepo repository.AppointmentRepository
	shopRepo        repository.ShopRepository
	stepMinutes     int

	// источник текущего времени, подменяется в тестах
	now func() time.Time
}

// NewSlotService создает новый экземпляр SlotService
func NewSlotService(
	appointmentRepo repository.AppointmentRepository,
	shopRepo repository.ShopRepository,
	stepMinutes int,
) SlotService {
	if stepMinutes <= 0 {
		stepMinutes = 30
	}
	return &slotService{
		appointmentRepo: appointmentRepo,
		shopRepo:        shopRepo,
		stepMinutes:     stepMinutes,
		now:             time.Now,
	}
}

// AvailableSlots возвращает свободные начала слотов на дату.
//
// Кандидаты идут с шагом stepMinutes от начала рабочего окна; на сегодняшнюю
// дату отсчёт начинается с ближайшей границы шага не раньше текущего времени —
// прошедшие слоты не предлагаются. Кандидат свободен, если услуга целиком
// помещается в рабочее окно и интервал [start, start+duration) не пересекается
// ни с одной записью, резервирующей время. Пустой результат — полностью
// занятый день.
func (s *slotService) AvailableSlots(ctx context.Context, shopID int64, durationMinutes int, date time.Time, excludeID int64) ([]time.Time, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: service duration must be positive", entity.ErrInvalidInput)
	}

	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shop: %w", err)
	}

	windowStart, windowEnd, err := shop.WorkingWindow(date)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointmentRepo.ListOverlapping(ctx, shopID, windowStart, windowEnd, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing appointments: %w", err)
	}

	now := naiveNow(s.now())
	today := sameDay(now, windowStart)

	step := time.Duration(s.stepMinutes) * time.Minute
	duration := time.Duration(durationMinutes) * time.Minute

	slots := make([]time.Time, 0)
	for candidate := windowStart; !candidate.Add(duration).After(windowEnd); candidate = candidate.Add(step) {
		if today && candidate.Before(now) {
			continue
		}

		candidateEnd := entity.ComputeEndTime(candidate, durationMinutes)
		free := true
		for _, appt := range appointments {
			if appt.Overlaps(candidate, candidateEnd) {
				free = false
				break
			}
		}
		if free {
			slots = append(slots, candidate)
		}
	}

	return slots, nil
}

// naiveNow отбрасывает зону у текущего времени: ядро сравнивает наивные
// временные метки в локальном времени мастерской
func naiveNow(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
