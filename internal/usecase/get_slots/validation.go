package get_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// validateRequest валидирует входные данные и разрешает scope
func validateRequest(req *Request) (domain.Scope, error) {
	if req.Date.IsZero() {
		return domain.Scope{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	scope, err := domain.NewScope(req.ServiceID, req.CampaignID)
	if err != nil {
		return domain.Scope{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if scope.ID <= 0 {
		return domain.Scope{}, fmt.Errorf("%w: scope id must be positive", ErrInvalidInput)
	}

	return scope, nil
}
