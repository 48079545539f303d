package get_bookable_slots

import (
	"strconv"
	"time"

	getBookableSlots "github.com/salonkit/schedule-service/internal/usecase/get_bookable_slots"
	"github.com/salonkit/schedule-service/pkg/types"
)

// BookableSlotsResponse HTTP response model
type BookableSlotsResponse struct {
	EmployeeID      int64  `json:"employeeId"`
	ServiceID       int64  `json:"serviceId,omitempty"`
	WeekStart       string `json:"weekStart"`
	DurationMinutes int    `json:"durationMinutes"`
	Slots           []Slot `json:"slots"`
}

// Slot модель слота для записи
type Slot struct {
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM:SS
	EndTime   string `json:"endTime"`   // HH:MM:SS
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBookableSlots.Response) *BookableSlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			Date:      slot.Interval.Date.String(),
			StartTime: slot.Interval.StartTime.String(),
			EndTime:   slot.Interval.EndTime.String(),
		}
	}

	return &BookableSlotsResponse{
		EmployeeID:      resp.EmployeeID,
		ServiceID:       resp.ServiceID,
		WeekStart:       resp.Week.Start.String(),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(employeeID, serviceID int64, dateStr, durationStr string) (*getBookableSlots.Request, error) {
	var date types.DateString
	if dateStr == "" {
		date = types.NewDateString(time.Now().UTC())
	} else {
		parsed, err := types.NewDateStringFromString(dateStr)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	req := &getBookableSlots.Request{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Date:       date,
	}

	if durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
		req.DurationMinutes = &duration
	}

	return req, nil
}
