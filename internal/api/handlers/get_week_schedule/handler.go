package get_week_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonkit/schedule-service/internal/api/handlers"
	getWeekSchedule "github.com/salonkit/schedule-service/internal/usecase/get_week_schedule"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgEmployeeNotFound  = "сотрудник не найден"
	msgBackendFailure    = "бэкенд салона недоступен, попробуйте позже"
)

type Handler struct {
	useCase GetWeekScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetWeekScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/schedule
// Query params: date (optional, YYYY-MM-DD, любая дата внутри недели)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/schedule - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(employeeID, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /employees/{id}/schedule - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getWeekSchedule.ErrInvalidInput):
			h.logger.Warn("GET /employees/{id}/schedule - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getWeekSchedule.ErrEmployeeNotFound):
			h.logger.Warn("GET /employees/{id}/schedule - Employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		default:
			h.logger.Error("GET /employees/{id}/schedule - Failed to get schedule: employee_id=%d, error=%v",
				employeeID, err)
			handlers.RespondBadGateway(w, msgBackendFailure)
		}
		return
	}

	h.logger.Info("GET /employees/{id}/schedule - Schedule retrieved: employee_id=%d, week=%s, free_intervals=%d",
		employeeID, result.Week.Start, len(result.FreeIntervals))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
