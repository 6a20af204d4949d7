package handoverdto

import "time"

type SubmitDocumentsInput struct {
	HandoverID   string
	DeveloperID  string
	DocumentsURL string
}

type VerifyDocumentsInput struct {
	HandoverID string
	AdminID    string
}

type ReleaseKeysInput struct {
	HandoverID  string
	DeveloperID string
}

type SignInput struct {
	HandoverID string
	SignerID   string
	Signature  string
}

type ConfirmKeysDeliveredInput struct {
	HandoverID string
	BuyerID    string
}

type ConfirmDeliveryInput struct {
	HandoverID  string
	DeveloperID string
}

type ConfirmReceiptInput struct {
	HandoverID string
	BuyerID    string
}

type GetHandoversInput struct {
	Page     int64
	Limit    int64
	Statuses []string
	Type     string
	DateFrom time.Time
	DateTo   time.Time
}
