package handoverdto

import "github.com/hausly/hausly-escrow-service/internal/domain"

type GetHandoversOutput struct {
	Handovers  []*domain.Handover
	Pagination Pagination
}

type Pagination struct {
	CurrentPage  int64
	TotalPages   int64
	TotalItems   int64
	ItemsPerPage int64
}
