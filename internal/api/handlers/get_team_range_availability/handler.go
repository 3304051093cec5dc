package get_team_range_availability

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_availability"
)

const (
	msgInvalidTeamMember  = "некорректный или отсутствующий team_member_id"
	msgInvalidDates       = "ожидаются start_date и end_date в формате YYYY-MM-DD"
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

// Handle GET /api/v1/availability/team/range?team_member_id=&start_date=&end_date=&service_duration_minutes=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	teamMemberID, ok := handlers.QueryInt64(r, "team_member_id")
	if !ok || teamMemberID == nil {
		h.logger.Warn("GET /availability/team/range - Invalid team_member_id: %q", query.Get("team_member_id"))
		handlers.RespondBadRequest(w, msgInvalidTeamMember)
		return
	}

	startDate, startPresent, startOK := handlers.QueryDate(r, "start_date")
	endDate, endPresent, endOK := handlers.QueryDate(r, "end_date")
	if !startOK || !endOK || !startPresent || !endPresent {
		h.logger.Warn("GET /availability/team/range - Invalid dates: start=%q, end=%q",
			query.Get("start_date"), query.Get("end_date"))
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	duration, ok := handlers.QueryInt(r, "service_duration_minutes")
	if !ok || (duration != nil && *duration <= 0) {
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	req := &getAvailability.RangeRequest{
		TeamMemberID: *teamMemberID,
		StartDate:    startDate,
		EndDate:      endDate,
		ServiceName:  strings.TrimSpace(query.Get("service")),
	}
	if duration != nil {
		req.ServiceDurationMinutes = *duration
	}

	result, err := h.useCase.TeamRange(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability/team/range - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailability.ErrTeamMemberNotFound):
			h.logger.Warn("GET /availability/team/range - Team member not found: team_member_id=%d", req.TeamMemberID)
			handlers.RespondNotFound(w, msgTeamMemberNotFound)

		case errors.Is(err, getAvailability.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /availability/team/range - Failed to compute availability: team_member_id=%d, error=%v",
				req.TeamMemberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/team/range - Availability computed: team_member_id=%d, days=%d",
		req.TeamMemberID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(req.TeamMemberID, result))
}
