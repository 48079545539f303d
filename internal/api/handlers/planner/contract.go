package planner

import (
	"context"

	"github.com/salonkit/schedule-service/internal/domain"
	plannerService "github.com/salonkit/schedule-service/internal/service/planner"
)

type PlannerService interface {
	LoadWeek(ctx context.Context, employeeID int64, week domain.Week) (*plannerService.State, error)
	SetMode(employeeID int64, mode plannerService.Mode) error
	PlanAdd(employeeID int64, proposed domain.TimeInterval) (plannerService.Draft, error)
	PlanResize(employeeID, blockID int64, proposed domain.TimeInterval) (plannerService.Draft, error)
	PlanDelete(employeeID, blockID int64) (plannerService.Draft, error)
	Draft(employeeID int64) plannerService.Draft
	Cancel(employeeID int64)
	Confirm(ctx context.Context, employeeID int64) error
	Snapshot(employeeID int64) *plannerService.State
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
