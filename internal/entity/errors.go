package entity

import "errors"

var (
	// Справочники
	ErrShopNotFound    = errors.New("shop not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrServiceInUse    = errors.New("service is referenced by appointments")
	ErrClientNotFound  = errors.New("client not found")

	// Записи
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrSlotTaken — выбранное время пересекается с существующей записью
	ErrSlotTaken = errors.New("slot is already taken")
	// ErrSlotLocked — слот в этот момент бронирует другой запрос
	ErrSlotLocked = errors.New("slot is being booked by someone else")
	// ErrLockUnavailable — координатор блокировок недоступен; запрос отклоняется,
	// бронирование без блокировки не выполняется
	ErrLockUnavailable = errors.New("lock coordinator unavailable")

	// Доступ
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Общие
	ErrInvalidInput  = errors.New("invalid input")
	ErrUserNotFound  = errors.New("user not found")
	ErrClientExists  = errors.New("client already exists")
	ErrTelegramTaken = errors.New("telegram ID already linked to another client")
)
