package get_team_availability

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_availability"
)

const (
	msgInvalidTeamMember  = "некорректный или отсутствующий team_member_id"
	msgMissingDate        = "не указана дата, ожидается date=YYYY-MM-DD"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration    = "некорректный service_duration_minutes"
	msgTeamMemberNotFound = "специалист не найден"
	msgServiceNotFound    = "услуга не найдена"
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

// Handle GET /api/v1/availability/team?team_member_id=&date=&service_duration_minutes=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	teamMemberID, ok := handlers.QueryInt64(r, "team_member_id")
	if !ok || teamMemberID == nil {
		h.logger.Warn("GET /availability/team - Invalid team_member_id: %q", query.Get("team_member_id"))
		handlers.RespondBadRequest(w, msgInvalidTeamMember)
		return
	}

	date, present, ok := handlers.QueryDate(r, "date")
	if !ok {
		h.logger.Warn("GET /availability/team - Invalid date: %q", query.Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if !present {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	duration, ok := handlers.QueryInt(r, "service_duration_minutes")
	if !ok || (duration != nil && *duration <= 0) {
		h.logger.Warn("GET /availability/team - Invalid service_duration_minutes: %q", query.Get("service_duration_minutes"))
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	req := &getAvailability.TeamDayRequest{
		TeamMemberID: *teamMemberID,
		Date:         date,
		ServiceName:  strings.TrimSpace(query.Get("service")),
	}
	if duration != nil {
		req.ServiceDurationMinutes = *duration
	}

	result, err := h.useCase.TeamDay(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability/team - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailability.ErrTeamMemberNotFound):
			h.logger.Warn("GET /availability/team - Team member not found: team_member_id=%d", req.TeamMemberID)
			handlers.RespondNotFound(w, msgTeamMemberNotFound)

		case errors.Is(err, getAvailability.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /availability/team - Failed to compute availability: team_member_id=%d, error=%v",
				req.TeamMemberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/team - Availability computed: team_member_id=%d, date=%s, status=%s",
		req.TeamMemberID, query.Get("date"), result.Day.Status)
	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(req.TeamMemberID, result))
}
