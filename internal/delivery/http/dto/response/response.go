package response

import (
	"time"

	"github.com/hausly/hausly-escrow-service/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type HandoverResponse struct {
	ID          string `json:"id"`
	EscrowID    string `json:"escrow_id"`
	PropertyID  string `json:"property_id"`
	BuyerID     string `json:"buyer_id"`
	DeveloperID string `json:"developer_id"`
	CreatorID   string `json:"creator_id,omitempty"`
	Type        string `json:"type"`
	Status      string `json:"status"`

	DocumentsURL string `json:"documents_url,omitempty"`

	DocumentsSubmittedAt *time.Time `json:"documents_submitted_at,omitempty"`
	DocumentsVerifiedAt  *time.Time `json:"documents_verified_at,omitempty"`
	KeysReleasedAt       *time.Time `json:"keys_released_at,omitempty"`
	ReachSignedAt        *time.Time `json:"reach_signed_at,omitempty"`
	BuyerSignedAt        *time.Time `json:"buyer_signed_at,omitempty"`
	KeysDeliveredAt      *time.Time `json:"keys_delivered_at,omitempty"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func FromDomainHandover(h *domain.Handover) HandoverResponse {
	return HandoverResponse{
		ID:          h.ID,
		EscrowID:    h.EscrowID,
		PropertyID:  h.PropertyID,
		BuyerID:     h.BuyerID,
		DeveloperID: h.DeveloperID,
		CreatorID:   h.CreatorID,
		Type:        string(h.Type),
		Status:      string(h.Status),

		DocumentsURL: h.DocumentsURL,

		DocumentsSubmittedAt: h.DocumentsSubmittedAt,
		DocumentsVerifiedAt:  h.DocumentsVerifiedAt,
		KeysReleasedAt:       h.KeysReleasedAt,
		ReachSignedAt:        h.ReachSignedAt,
		BuyerSignedAt:        h.BuyerSignedAt,
		KeysDeliveredAt:      h.KeysDeliveredAt,
		CompletedAt:          h.CompletedAt,

		CreatedAt: h.CreatedAt,
	}
}

type PaginationResponse struct {
	CurrentPage  int64 `json:"current_page"`
	TotalPages   int64 `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int64 `json:"items_per_page"`
}

type HandoverListResponse struct {
	Handovers  []HandoverResponse `json:"handovers"`
	Pagination PaginationResponse `json:"pagination"`
}

type HandoverStatisticsResponse struct {
	TotalHandovers     int64   `json:"total_handovers"`
	CompletedHandovers int64   `json:"completed_handovers"`
	ReleasedAmount     float64 `json:"released_amount"`
}

type EscrowResponse struct {
	ID          string `json:"id"`
	PaymentTxID string `json:"payment_tx_id"`
	PropertyID  string `json:"property_id"`
	BuyerID     string `json:"buyer_id"`
	DeveloperID string `json:"developer_id"`
	CreatorID   string `json:"creator_id,omitempty"`

	Amount          float64 `json:"amount"`
	DeveloperAmount float64 `json:"developer_amount"`
	CreatorAmount   float64 `json:"creator_amount"`
	ReachAmount     float64 `json:"reach_amount"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func FromDomainEscrow(e *domain.EscrowTransaction) EscrowResponse {
	return EscrowResponse{
		ID:          e.ID,
		PaymentTxID: e.PaymentTxID,
		PropertyID:  e.PropertyID,
		BuyerID:     e.BuyerID,
		DeveloperID: e.DeveloperID,
		CreatorID:   e.CreatorID,

		Amount:          e.Amount,
		DeveloperAmount: e.Splits.DeveloperAmount,
		CreatorAmount:   e.Splits.CreatorAmount,
		ReachAmount:     e.Splits.ReachAmount,

		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
	}
}

type BalanceResponse struct {
	UserID    string  `json:"user_id"`
	Available float64 `json:"available"`
}

type CreatorTierResponse struct {
	CreatorID         string    `json:"creator_id"`
	ReferralCode      string    `json:"referral_code"`
	Tier              int       `json:"tier"`
	TierLabel         string    `json:"tier_label"`
	CommissionPercent float64   `json:"commission_percent"`
	Qualified         bool      `json:"qualified"`
	TierUpdatedAt     time.Time `json:"tier_updated_at"`
}
