package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/bookings"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/bookings/models"
)

const (
	msgMissingDate        = "не указана дата, ожидается date=YYYY-MM-DD"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTeamMember  = "некорректный team_member_id"
	msgInvalidIncludeFlag = "некорректный include_cancelled, ожидается true или false"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?date=YYYY-MM-DD&team_member_id=&include_cancelled=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, present, ok := handlers.QueryDate(r, "date")
	if !ok {
		h.logger.Warn("GET /bookings - Invalid date: %q", r.URL.Query().Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if !present {
		h.logger.Warn("GET /bookings - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	teamMemberID, ok := handlers.QueryInt64(r, "team_member_id")
	if !ok {
		h.logger.Warn("GET /bookings - Invalid team_member_id: %q", r.URL.Query().Get("team_member_id"))
		handlers.RespondBadRequest(w, msgInvalidTeamMember)
		return
	}

	includeCancelled, ok := handlers.QueryBool(r, "include_cancelled")
	if !ok {
		h.logger.Warn("GET /bookings - Invalid include_cancelled: %q", r.URL.Query().Get("include_cancelled"))
		handlers.RespondBadRequest(w, msgInvalidIncludeFlag)
		return
	}

	result, err := h.service.ListByDate(r.Context(), &models.ListBookingsRequest{
		Date:             date,
		TeamMemberID:     teamMemberID,
		IncludeCancelled: includeCancelled,
	})
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /bookings - Failed to list bookings: date=%s, error=%v", r.URL.Query().Get("date"), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: date=%s, count=%d",
		r.URL.Query().Get("date"), len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
