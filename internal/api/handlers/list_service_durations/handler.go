package list_service_durations

import (
	"net/http"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/service-durations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListServiceDurations(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/service-durations - Failed to list service durations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/service-durations - Service durations retrieved: count=%d", len(result.ServiceDurations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
