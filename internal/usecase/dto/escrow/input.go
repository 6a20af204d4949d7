package escrowdto

type CreateFromPaymentInput struct {
	PaymentTxID string
	PropertyID  string
	BuyerID     string
	DeveloperID string
	CreatorID   string
	Amount      float64
	// SALE или RENTAL, определяет вариант handover-машины
	HandoverType string
}

type RefundEscrowInput struct {
	EscrowID string
	AdminID  string
	Reason   string
}
