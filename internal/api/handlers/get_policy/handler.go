package get_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	policyService "github.com/m04kA/SMC-SlotService/internal/service/policy"
	"github.com/m04kA/SMC-SlotService/internal/service/policy/models"
)

const (
	msgInvalidScope    = "требуется ровно один из параметров serviceId или campaignId"
	msgPolicyNotFound  = "политика для указанного scope не найдена"
	msgInvalidScopeRef = "некорректное значение serviceId или campaignId"
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

// Handle GET /api/v1/policies?serviceId=|campaignId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, campaignID, err := parseScopeParams(r)
	if err != nil {
		h.logger.Warn("GET /policies - Invalid scope params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScopeRef)
		return
	}

	result, err := h.service.Get(r.Context(), &models.GetPolicyRequest{
		ServiceID:  serviceID,
		CampaignID: campaignID,
	})
	if err != nil {
		switch {
		case errors.Is(err, policyService.ErrInvalidInput):
			h.logger.Warn("GET /policies - Invalid scope: %v", err)
			handlers.RespondBadRequest(w, msgInvalidScope)

		case errors.Is(err, policyService.ErrPolicyNotFound):
			h.logger.Warn("GET /policies - Policy not found")
			handlers.RespondNotFound(w, msgPolicyNotFound)

		default:
			h.logger.Error("GET /policies - Failed to get policy: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

// parseScopeParams читает опциональные query-параметры serviceId/campaignId
func parseScopeParams(r *http.Request) (*int64, *int64, error) {
	var serviceID, campaignID *int64

	if raw := r.URL.Query().Get("serviceId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, nil, err
		}
		serviceID = &id
	}
	if raw := r.URL.Query().Get("campaignId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, nil, err
		}
		campaignID = &id
	}
	return serviceID, campaignID, nil
}
