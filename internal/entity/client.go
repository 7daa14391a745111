package entity

// Client представляет клиента мастерской. Основной идентификатор — телефон;
// telegram_id привязывается позже, когда клиент делится контактом в чате.
type Client struct {
	ID          int64  `json:"id" db:"id"`
	TelegramID  *int64 `json:"telegram_id,omitempty" db:"telegram_id"`
	Phone       string `json:"phone" db:"phone"`
	FullName    string `json:"full_name" db:"full_name"`
	VehicleInfo string `json:"vehicle_info,omitempty" db:"vehicle_info"`
}

// HasTelegram сообщает, может ли клиент получать уведомления в Telegram
func (c *Client) HasTelegram() bool {
	return c.TelegramID != nil && *c.TelegramID != 0
}
