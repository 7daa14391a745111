package transport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/solomonczyk/autoservice/internal/service"
)

const dateLayout = "2006-01-02"

type SlotHandler struct {
	slotService service.SlotService
}

func NewSlotHandler(slotService service.SlotService) *SlotHandler {
	return &SlotHandler{slotService: slotService}
}

// GetAvailableSlots возвращает свободные времена начала для выбранной
// услуги и даты. Список может быть пустым, это не ошибка.
func (h *SlotHandler) GetAvailableSlots(c *gin.Context) {
	shopID, err := strconv.ParseInt(c.Query("shop_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Success: false, Error: "invalid shop_id"})
		return
	}

	duration, err := strconv.Atoi(c.Query("service_duration"))
	if err != nil || duration <= 0 {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Success: false, Error: "invalid service_duration"})
		return
	}

	date, err := time.Parse(dateLayout, c.Query("target_date"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Success: false, Error: "invalid target_date, expected YYYY-MM-DD"})
		return
	}

	slots, err := h.slotService.AvailableSlots(c.Request.Context(), shopID, duration, date, 0)
	if err != nil {
		abortWithError(c, err)
		return
	}

	formatted := make([]string, 0, len(slots))
	for _, slot := range slots {
		formatted = append(formatted, slot.Format("2006-01-02T15:04:05"))
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    gin.H{"slots": formatted},
	})
}
