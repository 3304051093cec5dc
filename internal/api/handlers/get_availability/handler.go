package get_availability

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_availability"
)

const (
	msgMissingDate     = "не указана дата, ожидается date=YYYY-MM-DD"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "некорректный service_duration_minutes"
	msgServiceNotFound = "услуга не найдена"
)

type Handler struct {
	useCase AvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase AvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD&service_duration_minutes=&service=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, present, ok := handlers.QueryDate(r, "date")
	if !ok {
		h.logger.Warn("GET /availability - Invalid date: %q", r.URL.Query().Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if !present {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	duration, ok := handlers.QueryInt(r, "service_duration_minutes")
	if !ok {
		h.logger.Warn("GET /availability - Invalid service_duration_minutes: %q", r.URL.Query().Get("service_duration_minutes"))
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	req := &getAvailability.DayRequest{
		Date:        date,
		ServiceName: strings.TrimSpace(r.URL.Query().Get("service")),
	}
	if duration != nil {
		if *duration <= 0 {
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		req.ServiceDurationMinutes = *duration
	}

	result, err := h.useCase.Day(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /availability - Service not found: %q", req.ServiceName)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /availability - Failed to compute availability: date=%s, error=%v",
				r.URL.Query().Get("date"), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability computed: date=%s, status=%s, slots=%d",
		r.URL.Query().Get("date"), result.Day.Status, len(result.Day.Slots))
	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(result))
}
