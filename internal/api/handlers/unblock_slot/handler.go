package unblock_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	slotsService "github.com/m04kA/SMC-SlotService/internal/service/slots"
)

const (
	msgInvalidSlotID  = "некорректный ID слота"
	msgSlotNotFound   = "слот не найден"
	msgSlotNotBlocked = "слот не заблокирован"
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

// Handle POST /api/v1/slots/{slotId}/unblock
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{slotId}/unblock - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.service.Unblock(r.Context(), slotID)
	if err != nil {
		switch {
		case errors.Is(err, slotsService.ErrInvalidInput):
			h.logger.Warn("POST /slots/%d/unblock - Invalid input: %v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		case errors.Is(err, slotsService.ErrSlotNotFound):
			h.logger.Warn("POST /slots/%d/unblock - Slot not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotsService.ErrSlotNotBlocked):
			h.logger.Warn("POST /slots/%d/unblock - Slot is not blocked", slotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotBlocked)

		default:
			h.logger.Error("POST /slots/%d/unblock - Failed to unblock: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/%d/unblock - Unblocked: status=%s", slotID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
