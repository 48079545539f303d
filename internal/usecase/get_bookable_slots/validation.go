package get_bookable_slots

import (
	"fmt"

	"github.com/salonkit/schedule-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Некорректная длительность - ошибка валидации, а не пустой результат
func validateRequest(req *Request) error {
	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 && req.DurationMinutes == nil {
		return fmt.Errorf("%w: serviceID or durationMinutes is required", ErrInvalidInput)
	}

	if req.DurationMinutes != nil {
		if d := *req.DurationMinutes; d < domain.MinSlotDurationMinutes || d > domain.MaxSlotDurationMinutes {
			return fmt.Errorf("%w: got %d, expected %d..%d", ErrInvalidDuration,
				d, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
		}
	}

	if err := req.Date.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}
