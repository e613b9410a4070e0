package get_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/domain"
	getSlots "github.com/m04kA/SMC-SlotService/internal/usecase/get_slots"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidScope    = "требуется ровно один из параметров serviceId или campaignId"
	msgInvalidScopeRef = "некорректное значение serviceId или campaignId"
	msgPolicyNotFound  = "политика для указанного scope не найдена"
)

type Handler struct {
	useCase GetSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?serviceId=|campaignId=&date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	serviceID, campaignID, err := parseScopeParams(r)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid scope params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScopeRef)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlots.Request{
		ServiceID:  serviceID,
		CampaignID: campaignID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid scope: %v", err)
			handlers.RespondBadRequest(w, msgInvalidScope)

		case errors.Is(err, getSlots.ErrPolicyNotFound):
			h.logger.Warn("GET /slots - Policy not found")
			handlers.RespondNotFound(w, msgPolicyNotFound)

		default:
			h.logger.Error("GET /slots - Failed to get slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
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
