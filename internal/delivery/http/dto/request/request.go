package request

type SubmitDocumentsRequest struct {
	DeveloperID  string `json:"developer_id"`
	DocumentsURL string `json:"documents_url"`
}

type VerifyDocumentsRequest struct {
	AdminID string `json:"admin_id"`
}

type ReleaseKeysRequest struct {
	DeveloperID string `json:"developer_id"`
}

type SignRequest struct {
	SignerID  string `json:"signer_id"`
	Signature string `json:"signature"`
}

type ConfirmKeysDeliveredRequest struct {
	BuyerID string `json:"buyer_id"`
}

type ConfirmDeliveryRequest struct {
	DeveloperID string `json:"developer_id"`
}

type ConfirmReceiptRequest struct {
	BuyerID string `json:"buyer_id"`
}

type RefundEscrowRequest struct {
	AdminID string `json:"admin_id"`
	Reason  string `json:"reason"`
}
