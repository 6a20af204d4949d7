package usecase

import (
	"fmt"
	"time"

	"github.com/hausly/hausly-escrow-service/internal/domain"
	handoverdto "github.com/hausly/hausly-escrow-service/internal/usecase/dto/handover"
)

func (uc *DefaultHandoverUsecase) GetHandoverByID(handoverID string) (*domain.Handover, error) {
	return uc.getHandover(handoverID)
}

func validateHandoverFilters(input *handoverdto.GetHandoversInput) (domain.HandoverFilters, error) {
	validStatuses := map[string]bool{
		string(domain.HandoverPaymentConfirmed):          true,
		string(domain.HandoverPendingDeveloperDocs):      true,
		string(domain.HandoverDocsSubmitted):             true,
		string(domain.HandoverDocsVerified):              true,
		string(domain.HandoverKeysReleased):              true,
		string(domain.HandoverReachSigned):               true,
		string(domain.HandoverBuyerSigned):               true,
		string(domain.HandoverKeysDelivered):             true,
		string(domain.HandoverAwaitingBuyerConfirmation): true,
		string(domain.HandoverCompleted):                 true,
		string(domain.HandoverAbandoned):                 true,
	}

	for _, s := range input.Statuses {
		if !validStatuses[s] {
			return domain.HandoverFilters{}, fmt.Errorf("invalid status in filters: %s", s)
		}
	}

	return domain.HandoverFilters{
		Statuses: input.Statuses,
		Type:     input.Type,
		DateFrom: input.DateFrom,
		DateTo:   input.DateTo,
	}, nil
}

func paginate(input *handoverdto.GetHandoversInput) (page, limit int64) {
	page = input.Page
	limit = input.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return page, limit
}

func buildOutput(handovers []*domain.Handover, total, page, limit int64) *handoverdto.GetHandoversOutput {
	totalPages := total / limit
	if total%limit > 0 {
		totalPages++
	}
	return &handoverdto.GetHandoversOutput{
		Handovers: handovers,
		Pagination: handoverdto.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
		},
	}
}

func (uc *DefaultHandoverUsecase) GetHandoversByDeveloperID(developerID string, input *handoverdto.GetHandoversInput) (*handoverdto.GetHandoversOutput, error) {
	filters, err := validateHandoverFilters(input)
	if err != nil {
		return nil, err
	}
	page, limit := paginate(input)
	handovers, total, err := uc.HandoverRepo.GetHandoversByDeveloperID(developerID, page, limit, filters)
	if err != nil {
		return nil, err
	}
	return buildOutput(handovers, total, page, limit), nil
}

func (uc *DefaultHandoverUsecase) GetHandoversByBuyerID(buyerID string, input *handoverdto.GetHandoversInput) (*handoverdto.GetHandoversOutput, error) {
	filters, err := validateHandoverFilters(input)
	if err != nil {
		return nil, err
	}
	page, limit := paginate(input)
	handovers, total, err := uc.HandoverRepo.GetHandoversByBuyerID(buyerID, page, limit, filters)
	if err != nil {
		return nil, err
	}
	return buildOutput(handovers, total, page, limit), nil
}

func (uc *DefaultHandoverUsecase) GetHandoverStatistics(developerID string, dateFrom, dateTo time.Time) (*domain.HandoverStatistics, error) {
	return uc.HandoverRepo.GetHandoverStatistics(developerID, dateFrom, dateTo)
}
