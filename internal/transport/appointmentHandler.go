package transport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/solomonczyk/autoservice/internal/entity"
	"github.com/solomonczyk/autoservice/internal/service"
	"github.com/solomonczyk/autoservice/internal/transport/middleware"
)

type AppointmentHandler struct {
	appointmentService service.AppointmentService
}

func NewAppointmentHandler(appointmentService service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// UpdateStatusRequest представляет запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "authentication required"})
		return
	}

	var req service.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	// shop_id всегда берётся из токена, а не из тела запроса
	req.ShopID = claims.ShopID

	appointment, err := h.appointmentService.Create(c.Request.Context(), &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "appointment created",
		Data:    appointment,
	})
}

func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "authentication required"})
		return
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	appointments, err := h.appointmentService.List(c.Request.Context(), claims.ShopID, from, to)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    appointments,
	})
}

func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "authentication required"})
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	appointment, err := h.appointmentService.Get(c.Request.Context(), claims.ShopID, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    appointment,
	})
}

func (h *AppointmentHandler) RescheduleAppointment(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "authentication required"})
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req service.RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	if req.ServiceID == nil && req.StartTime == nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Success: false, Error: "nothing to update"})
		return
	}

	appointment, err := h.appointmentService.Reschedule(c.Request.Context(), claims.ShopID, id, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "appointment updated",
		Data:    appointment,
	})
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "authentication required"})
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	status, err := entity.ParseAppointmentStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	appointment, err := h.appointmentService.UpdateStatus(c.Request.Context(), claims.ShopID, id, status)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "status updated",
		Data:    appointment,
	})
}

func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "authentication required"})
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	appointment, err := h.appointmentService.Cancel(c.Request.Context(), claims.ShopID, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "appointment cancelled",
		Data:    appointment,
	})
}

// parseIDParam читает :id из пути, сам отвечает 400 при мусоре
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid appointment id"})
		return 0, false
	}
	return id, true
}

// parseDateRange читает необязательные from/to; по умолчанию окно
// от сегодняшнего дня на 30 дней вперёд
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 30)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}

	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		// включаем весь день "to"
		to = parsed.AddDate(0, 0, 1)
	}

	return from, to, nil
}
