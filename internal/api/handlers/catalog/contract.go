package catalog

import (
	"context"

	"github.com/salonkit/schedule-service/internal/integrations/salonservice"
)

type SalonServiceClient interface {
	GetServices(ctx context.Context) ([]salonservice.Service, error)
	GetEmployees(ctx context.Context) ([]salonservice.Employee, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
