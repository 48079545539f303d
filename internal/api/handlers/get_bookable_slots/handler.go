package get_bookable_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonkit/schedule-service/internal/api/handlers"
	getBookableSlots "github.com/salonkit/schedule-service/internal/usecase/get_bookable_slots"
	getWeekSchedule "github.com/salonkit/schedule-service/internal/usecase/get_week_schedule"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgMissingService    = "serviceId или durationMinutes обязателен"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration   = "длительность слота должна быть положительным числом минут"
	msgEmployeeNotFound  = "сотрудник не найден"
	msgServiceNotFound   = "услуга не найдена"
	msgBackendFailure    = "бэкенд салона недоступен, попробуйте позже"
)

type Handler struct {
	useCase GetBookableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetBookableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/bookable-slots
// Query params: serviceId или durationMinutes (хотя бы один), date (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/bookable-slots - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	var serviceID int64
	if serviceIDStr := r.URL.Query().Get("serviceId"); serviceIDStr != "" {
		serviceID, err = strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /employees/{id}/bookable-slots - Invalid service ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
	}

	durationStr := r.URL.Query().Get("durationMinutes")
	if serviceID == 0 && durationStr == "" {
		h.logger.Warn("GET /employees/{id}/bookable-slots - Missing serviceId and durationMinutes")
		handlers.RespondBadRequest(w, msgMissingService)
		return
	}

	useCaseReq, err := ToUseCaseRequest(employeeID, serviceID, r.URL.Query().Get("date"), durationStr)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/bookable-slots - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getBookableSlots.ErrInvalidDuration):
			h.logger.Warn("GET /employees/{id}/bookable-slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getBookableSlots.ErrInvalidInput), errors.Is(err, getWeekSchedule.ErrInvalidInput):
			h.logger.Warn("GET /employees/{id}/bookable-slots - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getBookableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /employees/{id}/bookable-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getBookableSlots.ErrEmployeeNotFound), errors.Is(err, getWeekSchedule.ErrEmployeeNotFound):
			h.logger.Warn("GET /employees/{id}/bookable-slots - Employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		default:
			h.logger.Error("GET /employees/{id}/bookable-slots - Failed to get slots: employee_id=%d, service_id=%d, error=%v",
				employeeID, serviceID, err)
			handlers.RespondBadGateway(w, msgBackendFailure)
		}
		return
	}

	h.logger.Info("GET /employees/{id}/bookable-slots - Slots retrieved: employee_id=%d, service_id=%d, slots_count=%d",
		employeeID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
