package entity

import (
	"fmt"
	"time"
)

// Рабочие часы по умолчанию, если для мастерской не заданы свои
const (
	DefaultWorkStart = "09:00"
	DefaultWorkEnd   = "18:00"
)

// Shop представляет мастерскую — арендатора системы.
// Все записи и сотрудники принадлежат ровно одной мастерской.
type Shop struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Address   string `json:"address" db:"address"`
	WorkStart string `json:"work_start" db:"work_start"`
	WorkEnd   string `json:"work_end" db:"work_end"`
}

// WorkingWindow возвращает рабочее окно [start, end) мастерской на указанную дату
func (s *Shop) WorkingWindow(date time.Time) (time.Time, time.Time, error) {
	workStart := s.WorkStart
	if workStart == "" {
		workStart = DefaultWorkStart
	}
	workEnd := s.WorkEnd
	if workEnd == "" {
		workEnd = DefaultWorkEnd
	}

	start, err := combineDateClock(date, workStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid work_start %q: %w", workStart, err)
	}
	end, err := combineDateClock(date, workEnd)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid work_end %q: %w", workEnd, err)
	}
	return start, end, nil
}

func combineDateClock(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
