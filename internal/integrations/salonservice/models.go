package salonservice

import (
	"github.com/salonkit/schedule-service/internal/domain"
	"github.com/salonkit/schedule-service/pkg/types"
)

// Block модель блока доступности из бэкенда салона
type Block struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employee_id"`
	Date       string `json:"date"`       // YYYY-MM-DD (UTC)
	StartTime  string `json:"start_time"` // HH:MM:SS (UTC wall clock)
	EndTime    string `json:"end_time"`   // HH:MM:SS (UTC wall clock)
	Title      string `json:"title,omitempty"`
}

// Appointment модель записи клиента из бэкенда салона
type Appointment struct {
	ID          int64  `json:"id"`
	EmployeeID  int64  `json:"employee_id"`
	ServiceID   int64  `json:"service_id"`
	ServiceName string `json:"service_name"`
	Date        string `json:"date"`       // YYYY-MM-DD (UTC)
	StartTime   string `json:"start_time"` // HH:MM:SS (UTC wall clock)
	EndTime     string `json:"end_time"`   // HH:MM:SS (UTC wall clock)
}

// Service модель услуги салона
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration"`
	Price           float64 `json:"price"`
}

// Employee модель сотрудника (специалиста)
type Employee struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// NewSlot модель нового блока доступности для вставки
type NewSlot struct {
	EmployeeID int64  `json:"employee_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// ErrorResponse модель ошибки от бэкенда салона
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует wire-модель блока в доменную
func (b *Block) ToDomain() (domain.AvailabilityBlock, error) {
	interval, err := toInterval(b.Date, b.StartTime, b.EndTime)
	if err != nil {
		return domain.AvailabilityBlock{}, err
	}
	return domain.AvailabilityBlock{
		ID:         b.ID,
		EmployeeID: b.EmployeeID,
		Interval:   interval,
		Title:      b.Title,
	}, nil
}

// ToDomain конвертирует wire-модель записи в доменную
func (a *Appointment) ToDomain() (domain.Appointment, error) {
	interval, err := toInterval(a.Date, a.StartTime, a.EndTime)
	if err != nil {
		return domain.Appointment{}, err
	}
	return domain.Appointment{
		ID:          a.ID,
		EmployeeID:  a.EmployeeID,
		ServiceID:   a.ServiceID,
		ServiceName: a.ServiceName,
		Interval:    interval,
	}, nil
}

// FromInterval конвертирует доменный интервал в модель вставки
func FromInterval(employeeID int64, interval domain.TimeInterval) NewSlot {
	return NewSlot{
		EmployeeID: employeeID,
		Date:       interval.Date.String(),
		StartTime:  interval.StartTime.String(),
		EndTime:    interval.EndTime.String(),
	}
}

func toInterval(date, startTime, endTime string) (domain.TimeInterval, error) {
	d, err := types.NewDateStringFromString(date)
	if err != nil {
		return domain.TimeInterval{}, err
	}
	start, err := types.NewTimeStringFromString(startTime)
	if err != nil {
		return domain.TimeInterval{}, err
	}
	end, err := types.NewTimeStringFromString(endTime)
	if err != nil {
		return domain.TimeInterval{}, err
	}
	return domain.TimeInterval{Date: d, StartTime: start, EndTime: end}, nil
}
