package handlers

import (
	"net/http"

	"github.com/hausly/hausly-escrow-service/internal/delivery/http/dto/response"
	"github.com/hausly/hausly-escrow-service/internal/domain"
)

type WalletHandler struct {
	walletRepo domain.WalletRepository
}

func NewWalletHandler(walletRepo domain.WalletRepository) *WalletHandler {
	return &WalletHandler{walletRepo: walletRepo}
}

func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	available, err := h.walletRepo.GetBalance(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response.BalanceResponse{UserID: userID, Available: available})
}
