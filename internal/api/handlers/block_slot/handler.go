package block_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	slotsService "github.com/m04kA/SMC-SlotService/internal/service/slots"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgSlotNotFound       = "слот не найден"
	msgSlotAlreadyBlocked = "слот уже заблокирован"
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

// Handle POST /api/v1/slots/{slotId}/block
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{slotId}/block - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.service.Block(r.Context(), slotID)
	if err != nil {
		switch {
		case errors.Is(err, slotsService.ErrInvalidInput):
			h.logger.Warn("POST /slots/%d/block - Invalid input: %v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		case errors.Is(err, slotsService.ErrSlotNotFound):
			h.logger.Warn("POST /slots/%d/block - Slot not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotsService.ErrSlotBlocked):
			h.logger.Warn("POST /slots/%d/block - Already blocked", slotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotAlreadyBlocked)

		default:
			h.logger.Error("POST /slots/%d/block - Failed to block: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/%d/block - Blocked", slotID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
