package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solomonczyk/autoservice/internal/entity"
)

// SuccessResponse представляет успешный ответ
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// errorStatus сопоставляет ошибки сервисного слоя HTTP-статусам
func errorStatus(err error) int {
	switch {
	case errors.Is(err, entity.ErrAppointmentNotFound),
		errors.Is(err, entity.ErrServiceNotFound),
		errors.Is(err, entity.ErrClientNotFound),
		errors.Is(err, entity.ErrShopNotFound),
		errors.Is(err, entity.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrSlotTaken),
		errors.Is(err, entity.ErrSlotLocked),
		errors.Is(err, entity.ErrServiceInUse),
		errors.Is(err, entity.ErrClientExists),
		errors.Is(err, entity.ErrTelegramTaken):
		return http.StatusConflict
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrLockUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrSlotTaken):
		return "this time is already taken, please pick another slot"
	case errors.Is(err, entity.ErrSlotLocked):
		return "this time is being booked by someone else, please try again or pick another slot"
	default:
		return err.Error()
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), ErrorResponse{
		Success: false,
		Error:   errorMessage(err),
	})
}
