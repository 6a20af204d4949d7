package domain

import "errors"

var (
	ErrEscrowNotFound    = errors.New("escrow transaction not found")
	ErrCreatorNotFound   = errors.New("creator profile not found")
	ErrHandoverNotFound  = errors.New("handover not found")
	ErrEscrowExists      = errors.New("escrow already exists for property and buyer")
	ErrStatusConflict    = errors.New("handover status changed concurrently")
	ErrObligationsNotMet = errors.New("cannot complete handover: obligations not met")
	ErrSplitMismatch     = errors.New("escrow splits do not sum to amount")
	ErrRefundFailed      = errors.New("failed to refund escrow")
)
