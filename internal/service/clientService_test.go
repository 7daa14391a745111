package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solomonczyk/autoservice/internal/entity"
)

// TestBindTelegram тестирует привязку telegram-аккаунта к клиенту
func TestBindTelegram(t *testing.T) {
	clients := newFakeClientRepo()
	appointments := newFakeAppointmentRepo()
	svc := NewClientService(clients, appointments)

	client := &entity.Client{Phone: "+79001234567", FullName: "Иван Петров"}
	require.NoError(t, clients.Create(context.Background(), client))

	require.NoError(t, svc.BindTelegram(context.Background(), client.ID, 777))

	stored, err := clients.GetByTelegramID(context.Background(), 777)
	require.NoError(t, err)
	assert.Equal(t, client.ID, stored.ID)

	// нулевой telegram_id отклоняется
	err = svc.BindTelegram(context.Background(), client.ID, 0)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	// повторная привязка того же аккаунта к тому же клиенту — no-op
	require.NoError(t, svc.BindTelegram(context.Background(), client.ID, 777))
}

// TestBindTelegramTaken тестирует отказ в привязке чужого telegram-аккаунта
func TestBindTelegramTaken(t *testing.T) {
	clients := newFakeClientRepo()
	svc := NewClientService(clients, newFakeAppointmentRepo())

	first := &entity.Client{Phone: "+79001234567", FullName: "Иван Петров"}
	second := &entity.Client{Phone: "+79007654321", FullName: "Пётр Иванов"}
	require.NoError(t, clients.Create(context.Background(), first))
	require.NoError(t, clients.Create(context.Background(), second))

	require.NoError(t, svc.BindTelegram(context.Background(), first.ID, 777))

	// аккаунт уже привязан к другому клиенту
	err := svc.BindTelegram(context.Background(), second.ID, 777)
	assert.ErrorIs(t, err, entity.ErrTelegramTaken)

	// неизвестный клиент со свободным аккаунтом
	err = svc.BindTelegram(context.Background(), 99, 888)
	assert.ErrorIs(t, err, entity.ErrClientNotFound)
}

// TestClientAppointments тестирует историю записей клиента
func TestClientAppointments(t *testing.T) {
	clients := newFakeClientRepo()
	appointments := newFakeAppointmentRepo()
	svc := NewClientService(clients, appointments)

	client := &entity.Client{Phone: "+79001234567", FullName: "Иван Петров"}
	require.NoError(t, clients.Create(context.Background(), client))

	require.NoError(t, appointments.Create(context.Background(), &entity.Appointment{
		ShopID: 1, ClientID: client.ID, ServiceID: 1, Status: entity.StatusDone,
	}))

	history, err := svc.Appointments(context.Background(), client.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	_, err = svc.Appointments(context.Background(), 99)
	assert.ErrorIs(t, err, entity.ErrClientNotFound)
}
