package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-ClinicBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgSlotNotAvailable   = "выбранный временной слот уже занят"
	msgClinicClosed       = "клиника не работает в выбранную дату"
	msgPastDate           = "нельзя записаться на прошедшую дату"
	msgInvalidTimeSlot    = "выбранное время вне рабочих часов"
	msgDayFull            = "на выбранную дату больше нет свободных мест"
	msgTeamMemberNotFound = "специалист не найден"
	msgPaymentNotFound    = "платёж не найден"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in the past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createBooking.ErrClinicClosed):
			h.logger.Warn("POST /bookings - Clinic closed: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgClinicClosed)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrDayFull):
			h.logger.Warn("POST /bookings - Day limit reached: date=%s", req.Date)
			handlers.RespondConflict(w, msgDayFull)

		case errors.Is(err, createBooking.ErrTeamMemberNotFound):
			h.logger.Warn("POST /bookings - Team member not found: team_member_id=%v", req.TeamMemberID)
			handlers.RespondNotFound(w, msgTeamMemberNotFound)

		case errors.Is(err, createBooking.ErrPaymentNotFound):
			h.logger.Warn("POST /bookings - Payment not found: %v", err)
			handlers.RespondBadRequest(w, msgPaymentNotFound)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, time=%s, error=%v", req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, status=%s",
		result.Booking.ID, result.Booking.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
