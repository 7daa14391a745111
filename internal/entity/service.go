package entity

// Service представляет услугу мастерской. Длительность услуги определяет
// end_time записи в момент её создания или переноса; административное изменение
// длительности не пересчитывает уже существующие записи.
type Service struct {
	ID              int64   `json:"id" db:"id"`
	Name            string  `json:"name" db:"name"`
	DurationMinutes int     `json:"duration_minutes" db:"duration_minutes"`
	BasePrice       float64 `json:"base_price" db:"base_price"`
}
