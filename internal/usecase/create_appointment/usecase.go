package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonkit/schedule-service/internal/domain"
	"github.com/salonkit/schedule-service/internal/integrations/salonservice"
	getWeekSchedule "github.com/salonkit/schedule-service/internal/usecase/get_week_schedule"
)

// UseCase use case создания записи клиента к сотруднику
// Перед отправкой в бэкенд проверяет, что запрошенное время совпадает
// с одним из актуальных доступных слотов
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

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, employee=%d, service=%d, date=%s, time=%s",
		req.UserID, req.EmployeeID, req.ServiceID, req.Date, req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу и её длительность
	service, err := uc.findService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	// 3. Строим интервал записи: конец = начало + длительность услуги
	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateAppointment: appointment would cross midnight: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	interval := domain.TimeInterval{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   endTime,
	}
	if err := interval.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Проверяем, что запрошенный интервал - один из актуальных слотов
	if err := uc.validateSlotAvailable(ctx, req, service.DurationMinutes, interval); err != nil {
		return nil, err
	}

	// 5. Отправляем запись в бэкенд салона
	if err := uc.salonClient.CreateAppointment(ctx, req.EmployeeID, req.ServiceID, interval); err != nil {
		uc.logger.Error("CreateAppointment: backend rejected appointment for employee=%d: %v",
			req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: created for employee=%d, service=%d, %s %s-%s",
		req.EmployeeID, req.ServiceID, interval.Date, interval.StartTime, interval.EndTime)

	return &Response{
		EmployeeID:  req.EmployeeID,
		ServiceID:   req.ServiceID,
		ServiceName: service.Name,
		Interval:    interval,
	}, nil
}

// findService находит услугу по ID
func (uc *UseCase) findService(ctx context.Context, serviceID int64) (*salonservice.Service, error) {
	services, err := uc.salonClient.GetServices(ctx)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	for _, svc := range services {
		if svc.ID == serviceID {
			if svc.DurationMinutes <= 0 {
				return nil, fmt.Errorf("%w: service id=%d has non-positive duration", ErrInternal, serviceID)
			}
			return &svc, nil
		}
	}

	uc.logger.Warn("CreateAppointment: service id=%d not found", serviceID)
	return nil, ErrServiceNotFound
}

// validateSlotAvailable проверяет, что интервал совпадает с одним из свободных слотов
func (uc *UseCase) validateSlotAvailable(
	ctx context.Context,
	req *Request,
	durationMinutes int,
	interval domain.TimeInterval,
) error {
	schedule, err := uc.weekSchedule.Execute(ctx, &getWeekSchedule.Request{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
	})
	if err != nil {
		// Ошибки недельного расписания уже классифицированы
		if errors.Is(err, getWeekSchedule.ErrEmployeeNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}

	slots, err := domain.SliceSlots(schedule.FreeIntervals, durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	for _, slot := range slots {
		if slot.Interval.Date == interval.Date &&
			slot.Interval.StartTime.Equal(interval.StartTime) {
			return nil
		}
	}

	uc.logger.Warn("CreateAppointment: slot %s %s is not available for employee=%d",
		interval.Date, interval.StartTime, req.EmployeeID)
	return ErrSlotNotAvailable
}
