package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hausly/hausly-escrow-service/internal/delivery/http/dto/request"
	"github.com/hausly/hausly-escrow-service/internal/delivery/http/dto/response"
	"github.com/hausly/hausly-escrow-service/internal/domain"
	handoverdto "github.com/hausly/hausly-escrow-service/internal/usecase/dto/handover"
	handoverusecase "github.com/hausly/hausly-escrow-service/internal/usecase/handover"
)

type HandoverHandler struct {
	uc handoverusecase.HandoverUsecase
}

func NewHandoverHandler(uc handoverusecase.HandoverUsecase) *HandoverHandler {
	return &HandoverHandler{uc: uc}
}

func (h *HandoverHandler) SubmitDocuments(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitDocumentsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	err := h.uc.SubmitDocuments(&handoverdto.SubmitDocumentsInput{
		HandoverID:   r.PathValue("id"),
		DeveloperID:  req.DeveloperID,
		DocumentsURL: req.DocumentsURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.StatusResponse{Status: string(domain.HandoverDocsSubmitted)})
}

func (h *HandoverHandler) VerifyDocuments(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyDocumentsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	err := h.uc.VerifyDocuments(&handoverdto.VerifyDocumentsInput{
		HandoverID: r.PathValue("id"),
		AdminID:    req.AdminID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.StatusResponse{Status: string(domain.HandoverDocsVerified)})
}

func (h *HandoverHandler) ReleaseKeys(w http.ResponseWriter, r *http.Request) {
	var req request.ReleaseKeysRequest
	if !decodeBody(w, r, &req) {
		return
	}
	err := h.uc.ReleaseKeys(&handoverdto.ReleaseKeysInput{
		HandoverID:  r.PathValue("id"),
		DeveloperID: req.DeveloperID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.StatusResponse{Status: string(domain.HandoverKeysReleased)})
}

func (h *HandoverHandler) SignAsReach(w http.ResponseWriter, r *http.Request) {
	var req request.SignRequest
	if !decodeBody(w, r, &req) {
		return
	}
	err := h.uc.SignAsReach(&handoverdto.SignInput{
		HandoverID: r.PathValue("id"),
		SignerID:   req.SignerID,
		Signature:  req.Signature,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.StatusResponse{Status: string(domain.HandoverReachSigned)})
}

func (h *HandoverHandler) SignAsBuyer(w http.ResponseWriter, r *http.Request) {
	var req request.SignRequest
	if !decodeBody(w, r, &req) {
		return
	}
	err := h.uc.SignAsBuyer(&handoverdto.SignInput{
		HandoverID: r.PathValue("id"),
		SignerID:   req.SignerID,
		Signature:  req.Signature,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.StatusResponse{Status: string(domain.HandoverBuyerSigned)})
}

func (h *HandoverHandler) ConfirmKeysDelivered(w http.ResponseWriter, r *http.Request) {
	var req request.ConfirmKeysDeliveredRequest
	if !decodeBody(w, r, &req) {
		return
	}
	err := h.uc.ConfirmKeysDelivered(&handoverdto.ConfirmKeysDeliveredInput{
		HandoverID: r.PathValue("id"),
		BuyerID:    req.BuyerID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.StatusResponse{Status: string(domain.HandoverKeysDelivered)})
}

func (h *HandoverHandler) Complete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Complete(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.StatusResponse{Status: string(domain.HandoverCompleted)})
}

func (h *HandoverHandler) ConfirmDelivery(w http.ResponseWriter, r *http.Request) {
	var req request.ConfirmDeliveryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	err := h.uc.ConfirmDelivery(&handoverdto.ConfirmDeliveryInput{
		HandoverID:  r.PathValue("id"),
		DeveloperID: req.DeveloperID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.StatusResponse{Status: string(domain.HandoverAwaitingBuyerConfirmation)})
}

func (h *HandoverHandler) ConfirmReceipt(w http.ResponseWriter, r *http.Request) {
	var req request.ConfirmReceiptRequest
	if !decodeBody(w, r, &req) {
		return
	}
	err := h.uc.ConfirmReceipt(&handoverdto.ConfirmReceiptInput{
		HandoverID: r.PathValue("id"),
		BuyerID:    req.BuyerID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.StatusResponse{Status: string(domain.HandoverCompleted)})
}

func (h *HandoverHandler) GetHandover(w http.ResponseWriter, r *http.Request) {
	handover, err := h.uc.GetHandoverByID(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.FromDomainHandover(handover))
}

func parseListInput(r *http.Request) *handoverdto.GetHandoversInput {
	q := r.URL.Query()
	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)

	input := &handoverdto.GetHandoversInput{
		Page:     page,
		Limit:    limit,
		Statuses: q["status"],
		Type:     q.Get("type"),
	}
	if v := q.Get("date_from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			input.DateFrom = t
		}
	}
	if v := q.Get("date_to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			input.DateTo = t
		}
	}
	return input
}

func buildListResponse(out *handoverdto.GetHandoversOutput) response.HandoverListResponse {
	handovers := make([]response.HandoverResponse, len(out.Handovers))
	for i, h := range out.Handovers {
		handovers[i] = response.FromDomainHandover(h)
	}
	return response.HandoverListResponse{
		Handovers: handovers,
		Pagination: response.PaginationResponse{
			CurrentPage:  out.Pagination.CurrentPage,
			TotalPages:   out.Pagination.TotalPages,
			TotalItems:   out.Pagination.TotalItems,
			ItemsPerPage: out.Pagination.ItemsPerPage,
		},
	}
}

func (h *HandoverHandler) GetHandoversByDeveloper(w http.ResponseWriter, r *http.Request) {
	out, err := h.uc.GetHandoversByDeveloperID(r.PathValue("id"), parseListInput(r))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, buildListResponse(out))
}

func (h *HandoverHandler) GetHandoversByBuyer(w http.ResponseWriter, r *http.Request) {
	out, err := h.uc.GetHandoversByBuyerID(r.PathValue("id"), parseListInput(r))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, buildListResponse(out))
}

func (h *HandoverHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var dateFrom, dateTo time.Time
	if v := q.Get("date_from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			dateFrom = t
		}
	}
	if v := q.Get("date_to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			dateTo = t
		}
	}

	stats, err := h.uc.GetHandoverStatistics(r.PathValue("id"), dateFrom, dateTo)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.HandoverStatisticsResponse{
		TotalHandovers:     stats.TotalHandovers,
		CompletedHandovers: stats.CompletedHandovers,
		ReleasedAmount:     stats.ReleasedAmount,
	})
}
