package types

import (
	"errors"
	"fmt"
	"time"
)

// DateString календарная дата в формате "YYYY-MM-DD" (UTC, без времени)
type DateString string

const dateLayout = "2006-01-02"

// ErrInvalidDateFormat возвращается при некорректном формате даты
var ErrInvalidDateFormat = errors.New("types: invalid date format, expected YYYY-MM-DD")

// NewDateString создает DateString из time.Time (в UTC)
func NewDateString(t time.Time) DateString {
	return DateString(t.UTC().Format(dateLayout))
}

// NewDateStringFromString парсит строку "YYYY-MM-DD"
func NewDateStringFromString(s string) (DateString, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return DateString(t.Format(dateLayout)), nil
}

// String возвращает представление "YYYY-MM-DD"
func (d DateString) String() string {
	return string(d)
}

// Validate проверяет, что значение является корректной датой
func (d DateString) Validate() error {
	_, err := d.Time()
	return err
}

// Time возвращает полночь этой даты в UTC
func (d DateString) Time() (time.Time, error) {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, string(d))
	}
	return t.UTC(), nil
}

// AddDays возвращает дату, сдвинутую на days дней
func (d DateString) AddDays(days int) (DateString, error) {
	t, err := d.Time()
	if err != nil {
		return "", err
	}
	return NewDateString(t.AddDate(0, 0, days)), nil
}

// StartOfISOWeek возвращает понедельник недели, содержащей эту дату (ISO 8601)
func (d DateString) StartOfISOWeek() (DateString, error) {
	t, err := d.Time()
	if err != nil {
		return "", err
	}

	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		// Воскресенье: time.Weekday начинает неделю с воскресенья, ISO - с понедельника
		offset = 6
	}
	return NewDateString(t.AddDate(0, 0, -offset)), nil
}

// At компонует дату и время суток в единый момент времени в UTC
// Все сравнения интервалов выполняются над такими моментами,
// никогда над датой и временем по отдельности
func (d DateString) At(t TimeString) (time.Time, error) {
	day, err := d.Time()
	if err != nil {
		return time.Time{}, err
	}
	m, err := t.minutes()
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(m) * time.Minute), nil
}
