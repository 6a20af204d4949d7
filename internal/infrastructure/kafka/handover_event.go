package publisher

type HandoverEvent struct {
	HandoverID  string  `json:"handover_id"`
	EscrowID    string  `json:"escrow_id"`
	PropertyID  string  `json:"property_id"`
	BuyerID     string  `json:"buyer_id"`
	DeveloperID string  `json:"developer_id"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
}
