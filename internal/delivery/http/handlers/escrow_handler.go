package handlers

import (
	"net/http"

	"github.com/hausly/hausly-escrow-service/internal/delivery/http/dto/request"
	"github.com/hausly/hausly-escrow-service/internal/delivery/http/dto/response"
	"github.com/hausly/hausly-escrow-service/internal/domain"
	"github.com/hausly/hausly-escrow-service/internal/usecase"
	escrowdto "github.com/hausly/hausly-escrow-service/internal/usecase/dto/escrow"
)

type EscrowHandler struct {
	uc usecase.EscrowUsecase
}

func NewEscrowHandler(uc usecase.EscrowUsecase) *EscrowHandler {
	return &EscrowHandler{uc: uc}
}

func (h *EscrowHandler) GetEscrow(w http.ResponseWriter, r *http.Request) {
	escrow, err := h.uc.GetEscrowByID(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.FromDomainEscrow(escrow))
}

func (h *EscrowHandler) GetEscrowByPropertyBuyer(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	escrow, err := h.uc.GetEscrowByPropertyBuyer(q.Get("property_id"), q.Get("buyer_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.FromDomainEscrow(escrow))
}

func (h *EscrowHandler) Refund(w http.ResponseWriter, r *http.Request) {
	var req request.RefundEscrowRequest
	if !decodeBody(w, r, &req) {
		return
	}
	err := h.uc.RefundEscrow(&escrowdto.RefundEscrowInput{
		EscrowID: r.PathValue("id"),
		AdminID:  req.AdminID,
		Reason:   req.Reason,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.StatusResponse{Status: string(domain.EscrowRefunded)})
}
