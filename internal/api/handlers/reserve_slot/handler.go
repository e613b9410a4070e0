package reserve_slot

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	reserveSlot "github.com/m04kA/SMC-SlotService/internal/usecase/reserve_slot"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotNotFound       = "слот не найден"
	msgSlotBlocked        = "слот заблокирован"
	msgSlotFull           = "в слоте не осталось свободных мест"
	msgTooLateToReserve   = "слишком поздно для бронирования этого слота"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/reserve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{slotId}/reserve - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	// Тело опционально: userId нужен только для аудита в логах
	var req ReserveSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /slots/%d/reserve - Invalid request body: %v", slotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &reserveSlot.Request{
		SlotID: slotID,
		UserID: req.UserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /slots/%d/reserve - Invalid input: %v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		case errors.Is(err, reserveSlot.ErrSlotNotFound):
			h.logger.Warn("POST /slots/%d/reserve - Slot not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, reserveSlot.ErrSlotBlocked):
			h.logger.Warn("POST /slots/%d/reserve - Slot blocked", slotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotBlocked)

		case errors.Is(err, reserveSlot.ErrSlotFull):
			h.logger.Warn("POST /slots/%d/reserve - Slot full", slotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, reserveSlot.ErrTooLateToReserve):
			h.logger.Warn("POST /slots/%d/reserve - Too late to reserve", slotID)
			handlers.RespondError(w, http.StatusConflict, msgTooLateToReserve)

		default:
			h.logger.Error("POST /slots/%d/reserve - Failed to reserve: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/%d/reserve - Reserved: user_id=%d, bookings=%d/%d",
		slotID, req.UserID, result.CurrentBookings, result.MaxCapacity)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
