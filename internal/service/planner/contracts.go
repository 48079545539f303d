package planner

import (
	"context"

	"github.com/salonkit/schedule-service/internal/domain"
	"github.com/salonkit/schedule-service/pkg/types"
)

// SalonServiceClient интерфейс клиента бэкенда салона
type SalonServiceClient interface {
	GetAvailability(ctx context.Context, employeeID int64, startDay, endDay types.DateString) ([]domain.AvailabilityBlock, error)
	GetAppointments(ctx context.Context, employeeID int64, startDay, endDay types.DateString) ([]domain.Appointment, error)
	CreateAvailability(ctx context.Context, employeeID int64, intervals []domain.TimeInterval) error
	UpdateAvailability(ctx context.Context, blockID, employeeID int64, interval domain.TimeInterval) error
	DeleteAvailability(ctx context.Context, blockID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
