package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/entity"
	"github.com/sangkips/rfp-api/internal/domain/enum"
	"github.com/sangkips/rfp-api/pkg/pagination"
)

// RfpRepository defines the interface for RFP aggregate persistence
type RfpRepository interface {
	// Create persists the aggregate together with its product lines
	Create(ctx context.Context, rfp *entity.RfpRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.RfpRequest, error)
	// GetForUpdate loads the aggregate and locks its row for the rest of the
	// surrounding transaction
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.RfpRequest, error)
	// Update saves the aggregate's own columns; product lines are left untouched
	Update(ctx context.Context, rfp *entity.RfpRequest) error
	UpdateProduct(ctx context.Context, product *entity.RfpProduct) error
	// LatestRfpIDWithPrefix returns the lexicographically greatest workflow id
	// starting with prefix, or "" when there is none
	LatestRfpIDWithPrefix(ctx context.Context, prefix string) (string, error)
	List(ctx context.Context, params *RfpFilterParams) ([]entity.RfpRequest, int64, error)
}

// RfpFilterParams contains filtering parameters for RFP queries
type RfpFilterParams struct {
	Pagination     *pagination.PaginationParams
	Status         *enum.RfpStatus
	Search         string
	SalespersonID  *uuid.UUID
	CompanyName    string
	DepartmentType string
}

// PriceRevisionRepository is append-only
type PriceRevisionRepository interface {
	Append(ctx context.Context, revision *entity.PriceRevision) error
	// ListByRfp returns revisions oldest first
	ListByRfp(ctx context.Context, rfpRequestID uuid.UUID) ([]entity.PriceRevision, error)
	Latest(ctx context.Context, rfpRequestID uuid.UUID) (*entity.PriceRevision, error)
}

// AuditLogRepository is append-only
type AuditLogRepository interface {
	Append(ctx context.Context, entry *entity.AuditLogEntry) error
	// ListByRfp returns entries oldest first
	ListByRfp(ctx context.Context, rfpRequestID uuid.UUID) ([]entity.AuditLogEntry, error)
}

// LeadRepository is the read side of the lead collaborator
type LeadRepository interface {
	GetByID(ctx context.Context, id uint) (*entity.Lead, error)
}
