package get_week_schedule

import (
	"time"

	"github.com/salonkit/schedule-service/internal/domain"
	getWeekSchedule "github.com/salonkit/schedule-service/internal/usecase/get_week_schedule"
	"github.com/salonkit/schedule-service/pkg/types"
)

// WeekScheduleResponse HTTP response model
type WeekScheduleResponse struct {
	EmployeeID    int64         `json:"employeeId"`
	WeekStart     string        `json:"weekStart"`
	WeekEnd       string        `json:"weekEnd"`
	Blocks        []Block       `json:"blocks"`
	Appointments  []Appointment `json:"appointments"`
	FreeIntervals []Interval    `json:"freeIntervals"`
}

// Block модель блока доступности
type Block struct {
	ID       int64    `json:"id"`
	Interval Interval `json:"interval"`
	Title    string   `json:"title,omitempty"`
}

// Appointment модель записи клиента
type Appointment struct {
	ID          int64    `json:"id"`
	ServiceID   int64    `json:"serviceId"`
	ServiceName string   `json:"serviceName"`
	Interval    Interval `json:"interval"`
}

// Interval модель временного интервала (UTC wall clock)
type Interval struct {
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM:SS
	EndTime   string `json:"endTime"`   // HH:MM:SS
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getWeekSchedule.Response) *WeekScheduleResponse {
	blocks := make([]Block, len(resp.Blocks))
	for i, b := range resp.Blocks {
		blocks[i] = Block{
			ID:       b.ID,
			Interval: fromInterval(b.Interval),
			Title:    b.Title,
		}
	}

	appointments := make([]Appointment, len(resp.Appointments))
	for i, a := range resp.Appointments {
		appointments[i] = Appointment{
			ID:          a.ID,
			ServiceID:   a.ServiceID,
			ServiceName: a.ServiceName,
			Interval:    fromInterval(a.Interval),
		}
	}

	free := make([]Interval, len(resp.FreeIntervals))
	for i, interval := range resp.FreeIntervals {
		free[i] = fromInterval(interval)
	}

	weekEnd, err := resp.Week.End()
	if err != nil {
		weekEnd = resp.Week.Start
	}

	return &WeekScheduleResponse{
		EmployeeID:    resp.EmployeeID,
		WeekStart:     resp.Week.Start.String(),
		WeekEnd:       weekEnd.String(),
		Blocks:        blocks,
		Appointments:  appointments,
		FreeIntervals: free,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
// Пустая дата означает текущую неделю
func ToUseCaseRequest(employeeID int64, dateStr string) (*getWeekSchedule.Request, error) {
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

	return &getWeekSchedule.Request{
		EmployeeID: employeeID,
		Date:       date,
	}, nil
}

func fromInterval(interval domain.TimeInterval) Interval {
	return Interval{
		Date:      interval.Date.String(),
		StartTime: interval.StartTime.String(),
		EndTime:   interval.EndTime.String(),
	}
}
