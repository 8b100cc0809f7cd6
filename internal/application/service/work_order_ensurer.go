package service

import (
	"context"
	"errors"

	"github.com/sangkips/rfp-api/internal/domain/actor"
	"github.com/sangkips/rfp-api/internal/domain/entity"
	"github.com/sangkips/rfp-api/internal/domain/enum"
	"github.com/sangkips/rfp-api/internal/domain/repository"
	"github.com/sangkips/rfp-api/pkg/apperror"
	"github.com/sangkips/rfp-api/pkg/utils"
	"go.uber.org/zap"
)

const (
	workOrderPrefix   = "WO"
	workOrderSeqWidth = 6
)

// WorkOrderEnsurer creates or finds the single work order of a quotation
type WorkOrderEnsurer struct {
	log *zap.Logger
}

// NewWorkOrderEnsurer creates a new work order ensurer
func NewWorkOrderEnsurer(log *zap.Logger) *WorkOrderEnsurer {
	return &WorkOrderEnsurer{log: log.Named("work_order.ensurer")}
}

// Ensure returns the quotation's work order, creating it when none exists.
// created is false when an existing order was found, including one inserted by
// a concurrent caller between lookup and insert.
func (e *WorkOrderEnsurer) Ensure(
	ctx context.Context,
	repos *repository.Repositories,
	quotation *entity.Quotation,
	by actor.Actor,
) (workOrder *entity.WorkOrder, created bool, err error) {
	existing, err := repos.WorkOrders.GetByQuotationNumber(ctx, quotation.Reference)
	if err != nil {
		return nil, false, apperror.NewCollaboratorError("find work order", err)
	}
	if existing != nil {
		e.log.Debug("work order already exists",
			zap.String("quotation", quotation.Reference),
			zap.String("work_order", existing.WorkOrderNumber),
		)
		return existing, false, nil
	}

	last, err := repos.WorkOrders.LatestNumber(ctx)
	if err != nil {
		return nil, false, apperror.NewCollaboratorError("create work order", err)
	}
	number, err := utils.NextSequence(last, workOrderPrefix, workOrderSeqWidth)
	if err != nil {
		return nil, false, apperror.NewCollaboratorError("create work order", err)
	}

	workOrder = &entity.WorkOrder{
		WorkOrderNumber: number,
		QuotationID:     quotation.ID,
		QuotationNumber: quotation.Reference,
		RfpRequestID:    quotation.RfpRequestID,
		LeadID:          quotation.LeadID,
		CustomerName:    quotation.CustomerName,
		ContactName:     quotation.ContactName,
		CustomerPhone:   quotation.CustomerPhone,
		CustomerAddress: quotation.CustomerAddress,
		TotalAmount:     quotation.TotalAmount,
		Status:          enum.WorkOrderStatusSentToOperations,
		CreatedBy:       by.ID,
	}
	for _, d := range quotation.Details {
		workOrder.Items = append(workOrder.Items, entity.WorkOrderItem{
			Description: d.Description,
			Quantity:    d.Quantity,
			LengthUnit:  d.LengthUnit,
			UnitPrice:   d.UnitPrice,
		})
	}

	err = repos.WorkOrders.Create(ctx, workOrder)
	if errors.Is(err, repository.ErrDuplicateKey) {
		winner, lookupErr := repos.WorkOrders.GetByQuotationNumber(ctx, quotation.Reference)
		if lookupErr != nil {
			return nil, false, apperror.NewCollaboratorError("find work order", lookupErr)
		}
		if winner != nil {
			return winner, false, nil
		}
		// the work order number itself collided; let the caller retry
		return nil, false, err
	}
	if err != nil {
		e.log.Error("work order insert failed", zap.String("quotation", quotation.Reference), zap.Error(err))
		return nil, false, apperror.NewCollaboratorError("create work order", err)
	}

	e.log.Info("work order created",
		zap.String("quotation", quotation.Reference),
		zap.String("work_order", workOrder.WorkOrderNumber),
		zap.String("triggered_by", by.RoleLabel()),
	)
	return workOrder, true, nil
}
