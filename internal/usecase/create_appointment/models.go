package create_appointment

import (
	"github.com/salonkit/schedule-service/internal/domain"
	"github.com/salonkit/schedule-service/pkg/types"
)

// Request модель запроса на создание записи клиента
type Request struct {
	UserID     int64            // ID клиента (для логирования)
	EmployeeID int64            // ID сотрудника
	ServiceID  int64            // ID услуги
	Date       types.DateString // Дата записи
	StartTime  types.TimeString // Время начала (UTC wall clock)
}

// Response модель ответа с подтверждённой записью
type Response struct {
	EmployeeID  int64
	ServiceID   int64
	ServiceName string
	Interval    domain.TimeInterval
}
