package update_service_duration

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/schedule"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle PUT /api/v1/admin/service-durations/{name}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req UpdateServiceDurationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/service-durations/{name} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertServiceDuration(r.Context(), req.ToServiceRequest(name))
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("PUT /admin/service-durations/{name} - Invalid input: name=%q, %v", name, err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("PUT /admin/service-durations/{name} - Failed to save service duration: name=%q, error=%v", name, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/service-durations/{name} - Service duration saved: name=%q, duration=%d",
		result.ServiceName, result.DurationMinutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}
