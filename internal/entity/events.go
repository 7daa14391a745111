package entity

type ChangeType string

const (
	ChangeNewAppointment     ChangeType = "NEW_APPOINTMENT"
	ChangeStatusUpdate       ChangeType = "STATUS_UPDATE"
	ChangeAppointmentUpdated ChangeType = "APPOINTMENT_UPDATED"
	ChangeWaitlistAdd        ChangeType = "WAITLIST_ADD"
)

// ChangeEvent — событие изменения записи, публикуемое после фиксации транзакции.
// Доставка подписчикам (дашборд, чат-бот) best-effort, не более одного раза,
// без повтора после переподключения.
type ChangeEvent struct {
	Type ChangeType       `json:"type"`
	Data AppointmentEvent `json:"data"`
}

// AppointmentEvent — полезная нагрузка события
type AppointmentEvent struct {
	ID        int64             `json:"id"`
	ShopID    int64             `json:"shop_id"`
	ClientID  int64             `json:"client_id"`
	ServiceID int64             `json:"service_id"`
	StartTime LocalTime         `json:"start_time"`
	EndTime   LocalTime         `json:"end_time"`
	Status    AppointmentStatus `json:"status"`
}

// NewChangeEvent собирает событие из записи
func NewChangeEvent(t ChangeType, a *Appointment) ChangeEvent {
	return ChangeEvent{
		Type: t,
		Data: AppointmentEvent{
			ID:        a.ID,
			ShopID:    a.ShopID,
			ClientID:  a.ClientID,
			ServiceID: a.ServiceID,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			Status:    a.Status,
		},
	}
}
