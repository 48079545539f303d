package get_week_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonkit/schedule-service/internal/domain"
	salonClient "github.com/salonkit/schedule-service/internal/integrations/salonservice"
)

// UseCase use case получения недельного расписания сотрудника
// Загружает доступность и записи за ISO-неделю и вычисляет свободные интервалы
type UseCase struct {
	salonClient SalonServiceClient
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(salonClient SalonServiceClient, logger Logger) *UseCase {
	return &UseCase{
		salonClient: salonClient,
		logger:      logger,
	}
}

// Execute выполняет use case получения недельного расписания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetWeekSchedule: employee=%d, date=%s", req.EmployeeID, req.Date)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetWeekSchedule: validation failed: %v", err)
		return nil, err
	}

	// Нормализуем дату к понедельнику ISO-недели
	week, err := domain.WeekOf(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	weekEnd, err := week.End()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute week end: %v", ErrInternal, err)
	}

	blocks, err := uc.salonClient.GetAvailability(ctx, req.EmployeeID, week.Start, weekEnd)
	if err != nil {
		if errors.Is(err, salonClient.ErrEmployeeNotFound) {
			uc.logger.Warn("GetWeekSchedule: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("GetWeekSchedule: failed to get availability for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	appointments, err := uc.salonClient.GetAppointments(ctx, req.EmployeeID, week.Start, weekEnd)
	if err != nil {
		if errors.Is(err, salonClient.ErrEmployeeNotFound) {
			uc.logger.Warn("GetWeekSchedule: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("GetWeekSchedule: failed to get appointments for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// Отбрасываем некорректные блоки и блоки вне запрошенной недели
	blocks = uc.filterBlocks(week, blocks)
	appointments = uc.filterAppointments(week, appointments)

	free := domain.FreeIntervals(blocks, appointments)

	uc.logger.Info("GetWeekSchedule: employee=%d, week=%s: %d blocks, %d appointments, %d free intervals",
		req.EmployeeID, week.Start, len(blocks), len(appointments), len(free))

	return &Response{
		EmployeeID:    req.EmployeeID,
		Week:          week,
		Blocks:        blocks,
		Appointments:  appointments,
		FreeIntervals: free,
	}, nil
}

// filterBlocks отбрасывает блоки с некорректными интервалами и блоки вне недели
// Бэкенд - внешняя система, его ответам нельзя доверять безусловно
func (uc *UseCase) filterBlocks(week domain.Week, blocks []domain.AvailabilityBlock) []domain.AvailabilityBlock {
	result := make([]domain.AvailabilityBlock, 0, len(blocks))
	for _, b := range blocks {
		if err := b.Interval.Validate(); err != nil {
			uc.logger.Warn("GetWeekSchedule: dropping invalid availability block id=%d: %v", b.ID, err)
			continue
		}
		if !week.Contains(b.Interval.Date) {
			uc.logger.Warn("GetWeekSchedule: dropping availability block id=%d outside week %s", b.ID, week.Start)
			continue
		}
		result = append(result, b)
	}
	return result
}

// filterAppointments отбрасывает записи с некорректными интервалами и записи вне недели
func (uc *UseCase) filterAppointments(week domain.Week, appointments []domain.Appointment) []domain.Appointment {
	result := make([]domain.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if err := a.Interval.Validate(); err != nil {
			uc.logger.Warn("GetWeekSchedule: dropping invalid appointment id=%d: %v", a.ID, err)
			continue
		}
		if !week.Contains(a.Interval.Date) {
			uc.logger.Warn("GetWeekSchedule: dropping appointment id=%d outside week %s", a.ID, week.Start)
			continue
		}
		result = append(result, a)
	}
	return result
}
