package generate_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	generateSlots "github.com/m04kA/SMC-ClinicBooking/internal/usecase/generate_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDates       = "ожидаются startDate и endDate в формате YYYY-MM-DD"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /admin/slots/generate - Invalid dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, generateSlots.ErrInvalidInput) {
			h.logger.Warn("POST /admin/slots/generate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /admin/slots/generate - Failed to generate slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/slots/generate - Slots generated: %s..%s, written=%d",
		req.StartDate, req.EndDate, result.SlotsWritten)
	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(result))
}
