package entity

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// LocalTime хранит наивное локальное время мастерской без зоны.
// Ядро оперирует временем в зоне мастерской, конвертация для показа — забота клиента.
type LocalTime struct {
	time.Time
}

const localTimeLayout = "2006-01-02T15:04:05"

// Форматы, принимаемые на входе: полный, от веб-приложения (без секунд) и RFC3339
// с зоной, которая отбрасывается.
var localTimeAcceptedLayouts = []string{
	localTimeLayout,
	"2006-01-02T15:04",
	time.RFC3339,
}

func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{Time: stripZone(t)}
}

func (lt *LocalTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range localTimeAcceptedLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			lt.Time = stripZone(t)
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as local time", s)
}

func (lt LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + lt.Format(localTimeLayout) + `"`), nil
}

func (lt LocalTime) Value() (driver.Value, error) {
	return lt.Time, nil
}

func (lt *LocalTime) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		lt.Time = stripZone(v)
	case []byte:
		t, err := time.Parse("2006-01-02 15:04:05", string(v))
		if err != nil {
			return err
		}
		lt.Time = t
	default:
		return fmt.Errorf("cannot scan type %T into LocalTime", value)
	}
	return nil
}

// stripZone переводит время в наивное: компоненты сохраняются, зона отбрасывается
func stripZone(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
