package get_bookable_slots

import (
	"context"
	"fmt"

	"github.com/salonkit/schedule-service/internal/domain"
	getWeekSchedule "github.com/salonkit/schedule-service/internal/usecase/get_week_schedule"
)

// UseCase use case получения доступных для записи слотов
// Свободные интервалы недели нарезаются на слоты фиксированной длительности услуги
type UseCase struct {
	weekSchedule WeekScheduleUseCase
	salonClient  SalonServiceClient
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	weekSchedule WeekScheduleUseCase,
	salonClient SalonServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		weekSchedule: weekSchedule,
		salonClient:  salonClient,
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBookableSlots: employee=%d, service=%d, date=%s",
		req.EmployeeID, req.ServiceID, req.Date)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetBookableSlots: validation failed: %v", err)
		return nil, err
	}

	duration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	schedule, err := uc.weekSchedule.Execute(ctx, &getWeekSchedule.Request{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
	})
	if err != nil {
		// Ошибки недельного расписания уже классифицированы, пробрасываем как есть
		return nil, err
	}

	slots, err := domain.SliceSlots(schedule.FreeIntervals, duration)
	if err != nil {
		uc.logger.Error("GetBookableSlots: failed to slice slots: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, err)
	}

	uc.logger.Info("GetBookableSlots: employee=%d, week=%s: %d slots of %d minutes",
		req.EmployeeID, schedule.Week.Start, len(slots), duration)

	return &Response{
		EmployeeID:      req.EmployeeID,
		ServiceID:       req.ServiceID,
		Week:            schedule.Week,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}

// resolveDuration определяет длительность слота: явная из запроса или из услуги
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	if req.DurationMinutes != nil {
		return *req.DurationMinutes, nil
	}

	services, err := uc.salonClient.GetServices(ctx)
	if err != nil {
		uc.logger.Error("GetBookableSlots: failed to get services: %v", err)
		return 0, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	for _, svc := range services {
		if svc.ID == req.ServiceID {
			if svc.DurationMinutes < domain.MinSlotDurationMinutes ||
				svc.DurationMinutes > domain.MaxSlotDurationMinutes {
				uc.logger.Warn("GetBookableSlots: service id=%d has unusable duration %d",
					svc.ID, svc.DurationMinutes)
				return 0, fmt.Errorf("%w: service duration is %d", ErrInvalidDuration, svc.DurationMinutes)
			}
			return svc.DurationMinutes, nil
		}
	}

	uc.logger.Warn("GetBookableSlots: service id=%d not found", req.ServiceID)
	return 0, ErrServiceNotFound
}
