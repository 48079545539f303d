package get_week_schedule

import (
	"github.com/salonkit/schedule-service/internal/domain"
	"github.com/salonkit/schedule-service/pkg/types"
)

// Request модель запроса недельного расписания сотрудника
type Request struct {
	EmployeeID int64            // ID сотрудника
	Date       types.DateString // Любая дата внутри интересующей недели
}

// Response модель ответа с расписанием на ISO-неделю (понедельник-воскресенье)
type Response struct {
	EmployeeID    int64
	Week          domain.Week
	Blocks        []domain.AvailabilityBlock // Заявленная доступность
	Appointments  []domain.Appointment       // Подтверждённые записи клиентов
	FreeIntervals []domain.TimeInterval      // Доступность минус записи
}
