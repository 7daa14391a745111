package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/solomonczyk/autoservice/internal/service"
)

type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// LinkTelegramRequest представляет запрос на привязку telegram-аккаунта
type LinkTelegramRequest struct {
	TelegramID int64 `json:"telegram_id" binding:"required"`
}

func (h *ClientHandler) GetClients(c *gin.Context) {
	clients, err := h.clientService.GetAll(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    clients,
	})
}

func (h *ClientHandler) GetClientAppointments(c *gin.Context) {
	id, ok := parseClientID(c)
	if !ok {
		return
	}

	appointments, err := h.clientService.Appointments(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    appointments,
	})
}

func (h *ClientHandler) LinkTelegram(c *gin.Context) {
	id, ok := parseClientID(c)
	if !ok {
		return
	}

	var req LinkTelegramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	if err := h.clientService.BindTelegram(c.Request.Context(), id, req.TelegramID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "telegram linked",
	})
}

func parseClientID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid client id"})
		return 0, false
	}
	return id, true
}
