package get_bookable_slots

import (
	"github.com/salonkit/schedule-service/internal/domain"
	"github.com/salonkit/schedule-service/pkg/types"
)

// Request модель запроса доступных для записи слотов
type Request struct {
	EmployeeID int64            // ID сотрудника
	ServiceID  int64            // ID услуги (определяет длительность слота)
	Date       types.DateString // Любая дата внутри интересующей недели
	// DurationMinutes явная длительность слота
	// Если задана, используется вместо длительности услуги
	DurationMinutes *int
}

// Response модель ответа со списком слотов на неделю
type Response struct {
	EmployeeID      int64
	ServiceID       int64
	Week            domain.Week
	DurationMinutes int
	Slots           []domain.BookableSlot
}
