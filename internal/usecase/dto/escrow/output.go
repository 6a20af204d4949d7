package escrowdto

import "github.com/hausly/hausly-escrow-service/internal/domain"

type EscrowOutput struct {
	Escrow   domain.EscrowTransaction
	Handover domain.Handover
}
