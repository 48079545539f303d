package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeString время суток в формате "HH:MM:SS" (wall clock, без даты и таймзоны)
// Используется для передачи времени начала/конца интервалов по сети и в JSON
// Сетка расписания минутная: секундная компонента обязана быть "00",
// значения с ненулевыми секундами отклоняются при парсинге и валидации
type TimeString string

const (
	timeLayout      = "15:04:05"
	timeLayoutShort = "15:04"

	minutesPerDay = 24 * 60
)

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM:SS")

	// ErrTimeOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrTimeOutOfRange = errors.New("types: time out of day range")

	// ErrNonZeroSeconds возвращается для времени с ненулевой секундной компонентой
	ErrNonZeroSeconds = errors.New("types: seconds must be zero, schedule grid is minute-based")
)

// NewTimeString создает TimeString из time.Time, усекая до целой минуты
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayoutShort) + ":00")
}

// NewTimeStringFromString парсит строку "HH:MM:SS" (допускается сокращённая форма "HH:MM")
func NewTimeStringFromString(s string) (TimeString, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		if t.Second() != 0 {
			return "", fmt.Errorf("%w: %q", ErrNonZeroSeconds, s)
		}
		return TimeString(t.Format(timeLayout)), nil
	}
	if t, err := time.Parse(timeLayoutShort, s); err == nil {
		return TimeString(t.Format(timeLayout)), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
}

// String возвращает каноническое представление "HH:MM:SS"
func (t TimeString) String() string {
	return string(t)
}

// Validate проверяет, что значение является корректным временем суток
func (t TimeString) Validate() error {
	_, err := t.minutes()
	return err
}

// minutes возвращает количество минут с начала суток
// Ненулевые секунды - ошибка: молчаливое усечение сдвинуло бы границу
// интервала при вычитании, сохранив исходные секунды в самих фрагментах
func (t TimeString) minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		parsed, err = time.Parse(timeLayoutShort, string(t))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
		}
	}
	if parsed.Second() != 0 {
		return 0, fmt.Errorf("%w: %q", ErrNonZeroSeconds, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.minutes()
	b, errB := other.minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.minutes()
	b, errB := other.minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// Equal возвращает true, если t и other обозначают одну и ту же минуту суток
func (t TimeString) Equal(other TimeString) bool {
	a, errA := t.minutes()
	b, errB := other.minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a == b
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперёд
// Возвращает ошибку, если результат выходит за пределы суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	m, err := t.minutes()
	if err != nil {
		return "", err
	}

	total := m + minutes
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrTimeOutOfRange, string(t), minutes)
	}

	// Интервалы никогда не пересекают границу дня, поэтому 24:00 недопустимо
	if total == minutesPerDay {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrTimeOutOfRange, string(t), minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d:00", total/60, total%60)), nil
}

// MinutesUntil возвращает количество минут от t до other (отрицательное, если other раньше)
func (t TimeString) MinutesUntil(other TimeString) (int, error) {
	a, err := t.minutes()
	if err != nil {
		return 0, err
	}
	b, err := other.minutes()
	if err != nil {
		return 0, err
	}
	return b - a, nil
}
