package get_bookable_slots

import (
	"context"

	"github.com/salonkit/schedule-service/internal/integrations/salonservice"
	getWeekSchedule "github.com/salonkit/schedule-service/internal/usecase/get_week_schedule"
)

// WeekScheduleUseCase интерфейс use case недельного расписания
type WeekScheduleUseCase interface {
	Execute(ctx context.Context, req *getWeekSchedule.Request) (*getWeekSchedule.Response, error)
}

// SalonServiceClient интерфейс клиента бэкенда салона
type SalonServiceClient interface {
	GetServices(ctx context.Context) ([]salonservice.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
