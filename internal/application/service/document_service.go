package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/actor"
	"github.com/sangkips/rfp-api/internal/domain/entity"
	"github.com/sangkips/rfp-api/internal/domain/repository"
	"github.com/sangkips/rfp-api/pkg/apperror"
)

// DocumentService is the read side of quotations and work orders. Both are only
// ever written by RFP transitions.
type DocumentService struct {
	uow repository.UnitOfWork
}

// NewDocumentService creates a new document service
func NewDocumentService(uow repository.UnitOfWork) *DocumentService {
	return &DocumentService{uow: uow}
}

// GetQuotation retrieves a quotation with its detail lines
func (s *DocumentService) GetQuotation(ctx context.Context, by actor.Actor, id uuid.UUID) (*entity.Quotation, error) {
	if !by.Can(actor.CanViewRfp) {
		return nil, apperror.NewPermissionError("You are not allowed to view quotations")
	}
	quotation, err := s.uow.Repositories().Quotations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	return quotation, nil
}

// GetQuotationForRfp retrieves the quotation generated for an RFP
func (s *DocumentService) GetQuotationForRfp(ctx context.Context, by actor.Actor, rfpID uuid.UUID) (*entity.Quotation, error) {
	if !by.Can(actor.CanViewRfp) {
		return nil, apperror.NewPermissionError("You are not allowed to view quotations")
	}
	quotation, err := s.uow.Repositories().Quotations.GetByRfpRequestID(ctx, rfpID)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	return quotation, nil
}

// GetWorkOrder retrieves a work order with its items
func (s *DocumentService) GetWorkOrder(ctx context.Context, by actor.Actor, id uuid.UUID) (*entity.WorkOrder, error) {
	if !by.Can(actor.CanViewRfp) {
		return nil, apperror.NewPermissionError("You are not allowed to view work orders")
	}
	workOrder, err := s.uow.Repositories().WorkOrders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if workOrder == nil {
		return nil, apperror.NewNotFoundError("Work order")
	}
	return workOrder, nil
}
