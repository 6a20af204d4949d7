package domain

import "time"

type HandoverStatus string

const (
	HandoverPaymentConfirmed    HandoverStatus = "PAYMENT_CONFIRMED"
	HandoverPendingDeveloperDocs HandoverStatus = "PENDING_DEVELOPER_DOCS"
	HandoverDocsSubmitted       HandoverStatus = "DOCS_SUBMITTED"
	HandoverDocsVerified        HandoverStatus = "DOCS_VERIFIED"
	HandoverKeysReleased        HandoverStatus = "KEYS_RELEASED"
	HandoverReachSigned         HandoverStatus = "REACH_SIGNED"
	HandoverBuyerSigned         HandoverStatus = "BUYER_SIGNED"
	HandoverKeysDelivered       HandoverStatus = "KEYS_DELIVERED"
	// Короткий сценарий для аренды: подтверждение двумя сторонами
	HandoverAwaitingBuyerConfirmation HandoverStatus = "AWAITING_BUYER_CONFIRMATION"
	HandoverCompleted           HandoverStatus = "COMPLETED"
	HandoverAbandoned           HandoverStatus = "ABANDONED"
)

type HandoverType string

const (
	HandoverSale   HandoverType = "SALE"
	HandoverRental HandoverType = "RENTAL"
)

// Handover - процесс передачи документов и ключей после оплаты.
// Эскроу освобождается только при переходе в COMPLETED.
type Handover struct {
	ID          string
	EscrowID    string
	PropertyID  string
	BuyerID     string
	DeveloperID string
	CreatorID   string
	Type        HandoverType
	Status      HandoverStatus

	DocumentsURL string

	ReachSignerID  string
	ReachSignature string
	BuyerSignerID  string
	BuyerSignature string

	DocumentsSubmittedAt *time.Time
	DocumentsVerifiedAt  *time.Time
	KeysReleasedAt       *time.Time
	ReachSignedAt        *time.Time
	BuyerSignedAt        *time.Time
	KeysDeliveredAt      *time.Time
	CompletedAt          *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ObligationsMet - все четыре обязательства выполнены
func (h *Handover) ObligationsMet() bool {
	return h.DocumentsVerifiedAt != nil &&
		h.KeysReleasedAt != nil &&
		h.BuyerSignedAt != nil &&
		h.KeysDeliveredAt != nil
}

type HandoverFilters struct {
	Statuses []string
	Type     string
	DateFrom time.Time
	DateTo   time.Time
}

type HandoverStatistics struct {
	TotalHandovers     int64
	CompletedHandovers int64
	ReleasedAmount     float64
}

type HandoverRepository interface {
	GetHandoverByID(handoverID string) (*Handover, error)
	GetHandoverByEscrowID(escrowID string) (*Handover, error)

	// TransitionStatus - compare-and-swap по текущему статусу: переход выполняется
	// только если статус входит в allowedFrom, иначе ErrStatusConflict
	TransitionStatus(handoverID string, allowedFrom []HandoverStatus, to HandoverStatus, updates map[string]interface{}) error

	// Complete атомарно: handover -> COMPLETED, эскроу HELD -> RELEASED,
	// зачисление на кошельки застройщика и креатора. Возвращает released=false
	// без ошибки, если handover уже был завершен (идемпотентность).
	Complete(handoverID string, allowedFrom []HandoverStatus, now time.Time, extraUpdates map[string]interface{}) (released bool, err error)

	// Abandon закрывает handover при возврате средств по спору
	Abandon(handoverID string, now time.Time) error

	GetHandoversByDeveloperID(developerID string, page, limit int64, filters HandoverFilters) ([]*Handover, int64, error)
	GetHandoversByBuyerID(buyerID string, page, limit int64, filters HandoverFilters) ([]*Handover, int64, error)
	GetHandoverStatistics(developerID string, dateFrom, dateTo time.Time) (*HandoverStatistics, error)
	FindStaleAwaitingDocs(cutoff time.Time) ([]*Handover, error)
}
