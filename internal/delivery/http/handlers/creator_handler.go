package handlers

import (
	"errors"
	"net/http"

	"github.com/hausly/hausly-escrow-service/internal/delivery/http/dto/response"
	"github.com/hausly/hausly-escrow-service/internal/domain"
	"github.com/hausly/hausly-escrow-service/internal/usecase"
)

type CreatorHandler struct {
	uc usecase.TierUsecase
}

func NewCreatorHandler(uc usecase.TierUsecase) *CreatorHandler {
	return &CreatorHandler{uc: uc}
}

func (h *CreatorHandler) GetCreatorTier(w http.ResponseWriter, r *http.Request) {
	profile, err := h.uc.GetCreatorProfile(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrCreatorNotFound) {
			writeJSON(w, http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response.CreatorTierResponse{
		CreatorID:         profile.CreatorID,
		ReferralCode:      profile.ReferralCode,
		Tier:              profile.Tier,
		TierLabel:         profile.TierLabel,
		CommissionPercent: profile.CommissionPercent,
		Qualified:         profile.Qualified,
		TierUpdatedAt:     profile.TierUpdatedAt,
	})
}
