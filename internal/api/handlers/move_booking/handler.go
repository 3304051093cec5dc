package move_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	moveBooking "github.com/m04kA/SMC-ClinicBooking/internal/usecase/move_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgNotFound           = "бронирование не найдено"
	msgNotMovable         = "отменённое или завершённое бронирование нельзя перенести"
	msgPastDate           = "нельзя перенести бронирование на прошедшую дату"
	msgClinicClosed       = "клиника не работает в выбранную дату"
	msgInvalidTimeSlot    = "выбранное время вне рабочих часов"
	msgDayFull            = "на выбранную дату больше нет свободных мест"
	msgSlotNotAvailable   = "выбранное время занято и свободного времени позже нет"
)

type Handler struct {
	useCase MoveBookingUseCase
	logger  Logger
}

func NewHandler(useCase MoveBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{id}/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := handlers.PathInt64(r, "id")
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/move - Invalid booking ID")
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req MoveBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, msg, err := req.toUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/move - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msg)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotConflict):
			h.logger.Warn("PATCH /bookings/{id}/move - Slot conflict: booking_id=%d, %s %s", bookingID, req.NewDate, req.NewTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, moveBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/move - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, moveBooking.ErrNotMovable):
			h.logger.Warn("PATCH /bookings/{id}/move - Not movable: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNotMovable)

		case errors.Is(err, moveBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/move - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, moveBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, moveBooking.ErrClinicClosed):
			handlers.RespondBadRequest(w, msgClinicClosed)

		case errors.Is(err, moveBooking.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, moveBooking.ErrDayFull):
			handlers.RespondConflict(w, msgDayFull)

		default:
			h.logger.Error("PATCH /bookings/{id}/move - Failed to move booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := fromUseCaseResponse(result)
	h.logger.Info("PATCH /bookings/{id}/move - Booking moved: booking_id=%d, %s %s, substituted=%t",
		bookingID, resp.Booking.Date, resp.Booking.Time, resp.Substituted)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
