package release_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	slotsService "github.com/m04kA/SMC-SlotService/internal/service/slots"
)

const (
	msgInvalidSlotID    = "некорректный ID слота"
	msgSlotNotFound     = "слот не найден"
	msgSlotBlocked      = "слот заблокирован"
	msgNothingToRelease = "в слоте нет активных бронирований"
	msgTooLateToCancel  = "слишком поздно для отмены бронирования этого слота"
)

type Handler struct {
	service SlotsService
	logger  Logger
}

func NewHandler(service SlotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/release
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{slotId}/release - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.service.Release(r.Context(), slotID)
	if err != nil {
		switch {
		case errors.Is(err, slotsService.ErrInvalidInput):
			h.logger.Warn("POST /slots/%d/release - Invalid input: %v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		case errors.Is(err, slotsService.ErrSlotNotFound):
			h.logger.Warn("POST /slots/%d/release - Slot not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotsService.ErrSlotBlocked):
			h.logger.Warn("POST /slots/%d/release - Slot blocked", slotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotBlocked)

		case errors.Is(err, slotsService.ErrNothingToRelease):
			h.logger.Warn("POST /slots/%d/release - Nothing to release", slotID)
			handlers.RespondError(w, http.StatusConflict, msgNothingToRelease)

		case errors.Is(err, slotsService.ErrTooLateToCancel):
			h.logger.Warn("POST /slots/%d/release - Too late to cancel", slotID)
			handlers.RespondError(w, http.StatusConflict, msgTooLateToCancel)

		default:
			h.logger.Error("POST /slots/%d/release - Failed to release: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/%d/release - Released: bookings=%d/%d",
		slotID, result.CurrentBookings, result.MaxCapacity)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
