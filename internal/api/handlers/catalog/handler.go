package catalog

import (
	"net/http"

	"github.com/salonkit/schedule-service/internal/api/handlers"
)

const msgBackendFailure = "бэкенд салона недоступен, попробуйте позже"

// Handler отдает справочники салона (услуги, специалисты)
// без преобразований бизнес-логики
type Handler struct {
	salonClient SalonServiceClient
	logger      Logger
}

func NewHandler(salonClient SalonServiceClient, logger Logger) *Handler {
	return &Handler{
		salonClient: salonClient,
		logger:      logger,
	}
}

// HandleServices GET /api/v1/services
func (h *Handler) HandleServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.salonClient.GetServices(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed to get services: %v", err)
		handlers.RespondBadGateway(w, msgBackendFailure)
		return
	}

	h.logger.Info("GET /services - Services retrieved: count=%d", len(services))
	handlers.RespondJSON(w, http.StatusOK, FromServices(services))
}

// HandleSpecialists GET /api/v1/specialists
func (h *Handler) HandleSpecialists(w http.ResponseWriter, r *http.Request) {
	employees, err := h.salonClient.GetEmployees(r.Context())
	if err != nil {
		h.logger.Error("GET /specialists - Failed to get employees: %v", err)
		handlers.RespondBadGateway(w, msgBackendFailure)
		return
	}

	h.logger.Info("GET /specialists - Specialists retrieved: count=%d", len(employees))
	handlers.RespondJSON(w, http.StatusOK, FromEmployees(employees))
}
