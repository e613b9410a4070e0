package upsert_policy

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	policyService "github.com/m04kA/SMC-SlotService/internal/service/policy"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPolicyData  = "некорректные данные политики"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/policies
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpsertPolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /policies - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, policyService.ErrInvalidInput):
			h.logger.Warn("PUT /policies - Invalid policy data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPolicyData)

		default:
			h.logger.Error("PUT /policies - Failed to upsert policy: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /policies - Policy upserted: policy_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
