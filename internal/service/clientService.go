package service

import (
	"context"
	"errors"

	repository "github.com/solomonczyk/autoservice/internal/database/postgres"
	"github.com/solomonczyk/autoservice/internal/entity"
)

type clientService struct {
	clientRepo      repository.ClientRepository
	appointmentRepo repository.AppointmentRepository
}

func NewClientService(
	clientRepo repository.ClientRepository,
	appointmentRepo repository.AppointmentRepository,
) ClientService {
	return &clientService{
		clientRepo:      clientRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (s *clientService) GetAll(ctx context.Context) ([]*entity.Client, error) {
	return s.clientRepo.GetAll(ctx)
}

// BindTelegram привязывает telegram_id к клиенту, известному ранее только по
// телефону (клиент поделился контактом в чате). Аккаунт, уже привязанный к
// другому клиенту, отклоняется; повторная привязка к тому же клиенту — no-op.
func (s *clientService) BindTelegram(ctx context.Context, clientID, telegramID int64) error {
	if telegramID == 0 {
		return entity.ErrInvalidInput
	}

	existing, err := s.clientRepo.GetByTelegramID(ctx, telegramID)
	if err == nil {
		if existing.ID == clientID {
			return nil
		}
		return entity.ErrTelegramTaken
	}
	if !errors.Is(err, entity.ErrClientNotFound) {
		return err
	}

	return s.clientRepo.UpdateTelegramID(ctx, clientID, telegramID)
}

func (s *clientService) Appointments(ctx context.Context, clientID int64) ([]*entity.Appointment, error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.appointmentRepo.ListByClient(ctx, clientID)
}
