package planner

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/salonkit/schedule-service/internal/api/handlers"
	"github.com/salonkit/schedule-service/internal/domain"
	plannerService "github.com/salonkit/schedule-service/internal/service/planner"
	"github.com/salonkit/schedule-service/pkg/types"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgInvalidBody       = "некорректное тело запроса"
	msgInvalidInterval   = "некорректный интервал"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnknownMode       = "неизвестный режим планировщика"
	msgWrongMode         = "операция недоступна в текущем режиме"
	msgWeekNotLoaded     = "неделя не загружена, обновите расписание"
	msgNoSpace           = "интервал полностью перекрыт существующей доступностью"
	msgBlockNotFound     = "блок доступности не найден"
	msgNoDraft           = "нет черновика для подтверждения"
	msgBackendFailure    = "бэкенд салона недоступен, попробуйте позже"
)

// Handler обрабатывает запросы интерактивного планировщика доступности.
// Все маршруты защищены: редактировать расписание может только
// аутентифицированный пользователь
type Handler struct {
	service PlannerService
	logger  Logger
}

func NewHandler(service PlannerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleLoadWeek GET /api/v1/employees/{employeeId}/planner/week
// Query params: date (optional, YYYY-MM-DD, по умолчанию текущая неделя)
func (h *Handler) HandleLoadWeek(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	date := types.NewDateString(time.Now().UTC())
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := types.NewDateStringFromString(dateStr)
		if err != nil {
			h.logger.Warn("GET /planner/week - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	week, err := domain.WeekOf(date)
	if err != nil {
		h.logger.Warn("GET /planner/week - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	state, err := h.service.LoadWeek(r.Context(), employeeID, week)
	if err != nil {
		h.respondServiceError(w, "GET /planner/week", err)
		return
	}

	h.logger.Info("GET /planner/week - Week loaded: employee_id=%d, week=%s, blocks=%d, appointments=%d",
		employeeID, week.Start, len(state.Blocks), len(state.Appointments))
	handlers.RespondJSON(w, http.StatusOK, FromState(state))
}

// HandleSetMode PUT /api/v1/employees/{employeeId}/planner/mode
func (h *Handler) HandleSetMode(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	var req SetModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("PUT /planner/mode - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	mode, err := plannerService.ParseMode(req.Mode)
	if err != nil {
		h.logger.Warn("PUT /planner/mode - Unknown mode %q: employee_id=%d", req.Mode, employeeID)
		handlers.RespondBadRequest(w, msgUnknownMode)
		return
	}

	if err := h.service.SetMode(employeeID, mode); err != nil {
		h.respondServiceError(w, "PUT /planner/mode", err)
		return
	}

	h.logger.Info("PUT /planner/mode - Mode set: employee_id=%d, mode=%s", employeeID, mode)
	handlers.RespondJSON(w, http.StatusOK, FromState(h.service.Snapshot(employeeID)))
}

// HandlePlanAdd POST /api/v1/employees/{employeeId}/planner/draft/add
func (h *Handler) HandlePlanAdd(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	var req PlanAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("POST /planner/draft/add - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	interval, err := req.Interval.ToInterval()
	if err != nil {
		h.logger.Warn("POST /planner/draft/add - Invalid interval: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterval)
		return
	}

	draft, err := h.service.PlanAdd(employeeID, interval)
	if err != nil {
		h.respondServiceError(w, "POST /planner/draft/add", err)
		return
	}

	h.logger.Info("POST /planner/draft/add - Draft created: employee_id=%d, draft_id=%s, fragments=%d",
		employeeID, draft.ID, len(draft.AddFragments))
	handlers.RespondJSON(w, http.StatusCreated, FromDraft(draft))
}

// HandlePlanResize POST /api/v1/employees/{employeeId}/planner/draft/resize
func (h *Handler) HandlePlanResize(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	var req PlanResizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("POST /planner/draft/resize - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	interval, err := req.Interval.ToInterval()
	if err != nil {
		h.logger.Warn("POST /planner/draft/resize - Invalid interval: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterval)
		return
	}

	draft, err := h.service.PlanResize(employeeID, req.BlockID, interval)
	if err != nil {
		h.respondServiceError(w, "POST /planner/draft/resize", err)
		return
	}

	h.logger.Info("POST /planner/draft/resize - Draft created: employee_id=%d, draft_id=%s, block_id=%d",
		employeeID, draft.ID, req.BlockID)
	handlers.RespondJSON(w, http.StatusCreated, FromDraft(draft))
}

// HandlePlanDelete POST /api/v1/employees/{employeeId}/planner/draft/delete
func (h *Handler) HandlePlanDelete(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	var req PlanDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("POST /planner/draft/delete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	draft, err := h.service.PlanDelete(employeeID, req.BlockID)
	if err != nil {
		h.respondServiceError(w, "POST /planner/draft/delete", err)
		return
	}

	h.logger.Info("POST /planner/draft/delete - Draft created: employee_id=%d, draft_id=%s, block_id=%d",
		employeeID, draft.ID, req.BlockID)
	handlers.RespondJSON(w, http.StatusCreated, FromDraft(draft))
}

// HandleDraft GET /api/v1/employees/{employeeId}/planner/draft
func (h *Handler) HandleDraft(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDraft(h.service.Draft(employeeID)))
}

// HandleConfirm POST /api/v1/employees/{employeeId}/planner/draft/confirm
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	if err := h.service.Confirm(r.Context(), employeeID); err != nil {
		h.respondServiceError(w, "POST /planner/draft/confirm", err)
		return
	}

	h.logger.Info("POST /planner/draft/confirm - Draft confirmed: employee_id=%d", employeeID)
	handlers.RespondJSON(w, http.StatusOK, FromState(h.service.Snapshot(employeeID)))
}

// HandleCancel DELETE /api/v1/employees/{employeeId}/planner/draft
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	h.service.Cancel(employeeID)

	h.logger.Info("DELETE /planner/draft - Draft cancelled: employee_id=%d", employeeID)
	handlers.RespondJSON(w, http.StatusOK, FromDraft(h.service.Draft(employeeID)))
}

// HandleState GET /api/v1/employees/{employeeId}/planner/state
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromState(h.service.Snapshot(employeeID)))
}

// employeeID извлекает ID сотрудника из path-параметров
func (h *Handler) employeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	employeeID, err := strconv.ParseInt(mux.Vars(r)["employeeId"], 10, 64)
	if err != nil || employeeID <= 0 {
		h.logger.Warn("%s %s - Invalid employee ID: %v", r.Method, r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return 0, false
	}
	return employeeID, true
}

// respondServiceError транслирует ошибки сервиса планировщика в HTTP-статусы
func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, plannerService.ErrInvalidInput), errors.Is(err, plannerService.ErrUnknownMode):
		h.logger.Warn("%s - Validation failed: %v", op, err)
		handlers.RespondBadRequest(w, err.Error())

	case errors.Is(err, plannerService.ErrWrongMode):
		h.logger.Warn("%s - Wrong mode: %v", op, err)
		handlers.RespondConflict(w, msgWrongMode)

	case errors.Is(err, plannerService.ErrWeekNotLoaded):
		h.logger.Warn("%s - Week not loaded: %v", op, err)
		handlers.RespondConflict(w, msgWeekNotLoaded)

	case errors.Is(err, plannerService.ErrNoSpaceAvailable):
		h.logger.Warn("%s - No space available: %v", op, err)
		handlers.RespondConflict(w, msgNoSpace)

	case errors.Is(err, plannerService.ErrBlockNotFound):
		h.logger.Warn("%s - Block not found: %v", op, err)
		handlers.RespondNotFound(w, msgBlockNotFound)

	case errors.Is(err, plannerService.ErrNoDraft):
		h.logger.Warn("%s - No pending draft: %v", op, err)
		handlers.RespondNotFound(w, msgNoDraft)

	default:
		h.logger.Error("%s - Planner failure: %v", op, err)
		handlers.RespondBadGateway(w, msgBackendFailure)
	}
}
