package update_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/schedule"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/schedule/models"
)

const (
	msgInvalidDay         = "некорректный день недели, ожидается 0 (воскресенье) .. 6 (суббота)"
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle PUT /api/v1/admin/working-hours/{day}
// День недели берётся из пути
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil || day < 0 || day > 6 {
		h.logger.Warn("PUT /admin/working-hours/{day} - Invalid day: %q", mux.Vars(r)["day"])
		handlers.RespondBadRequest(w, msgInvalidDay)
		return
	}

	var req models.UpsertWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/working-hours/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.DayOfWeek = day

	result, err := h.service.UpsertWorkingHours(r.Context(), &req)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("PUT /admin/working-hours/{day} - Invalid input: day=%d, %v", day, err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("PUT /admin/working-hours/{day} - Failed to save working hours: day=%d, error=%v", day, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/working-hours/{day} - Working hours saved: day=%d, working=%t", day, result.IsWorkingDay)
	handlers.RespondJSON(w, http.StatusOK, result)
}
