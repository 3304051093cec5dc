package get_working_hours

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

// Handle GET /api/v1/admin/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetWorkingHours(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/working-hours - Failed to get working hours: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/working-hours - Working hours retrieved: days=%d", len(result.WorkingHours))
	handlers.RespondJSON(w, http.StatusOK, result)
}
