package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/entity"
)

// QuotationRepository defines the interface for quotation data operations
type QuotationRepository interface {
	// Create persists the quotation with its detail lines
	Create(ctx context.Context, quotation *entity.Quotation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error)
	GetByRfpRequestID(ctx context.Context, rfpRequestID uuid.UUID) (*entity.Quotation, error)
	// LatestReference returns the greatest QT- reference, or ""
	LatestReference(ctx context.Context) (string, error)
	CountByRfpRequestID(ctx context.Context, rfpRequestID uuid.UUID) (int64, error)
}

// WorkOrderRepository defines the interface for work order data operations
type WorkOrderRepository interface {
	// Create persists the work order with its items. A unique violation on the
	// quotation number is reported as ErrDuplicateKey without aborting an
	// enclosing transaction.
	Create(ctx context.Context, workOrder *entity.WorkOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.WorkOrder, error)
	GetByQuotationNumber(ctx context.Context, quotationNumber string) (*entity.WorkOrder, error)
	LatestNumber(ctx context.Context) (string, error)
	CountByQuotationNumber(ctx context.Context, quotationNumber string) (int64, error)
}
