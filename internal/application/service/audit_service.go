package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/actor"
	"github.com/sangkips/rfp-api/internal/domain/entity"
	"github.com/sangkips/rfp-api/internal/domain/repository"
	"github.com/sangkips/rfp-api/pkg/apperror"
)

// AuditAction tags the transition an audit entry records
type AuditAction string

const (
	AuditRfpCreated          AuditAction = "rfp_created"
	AuditRfpApproved         AuditAction = "rfp_approved"
	AuditRfpRejected         AuditAction = "rfp_rejected"
	AuditProductPriceSet     AuditAction = "product_price_set"
	AuditProductPriceCleared AuditAction = "product_price_cleared"
	AuditPriceUpdated        AuditAction = "price_updated"
	AuditQuotationCreated    AuditAction = "quotation_created"
	AuditAccountsSubmitted   AuditAction = "accounts_submitted"
	AuditAccountsDecision    AuditAction = "accounts_decision"
	AuditSeniorDecision      AuditAction = "senior_decision"
)

// logAction appends one entry. It is only ever called inside the transaction
// carrying the transition it describes.
func logAction(
	ctx context.Context,
	audits repository.AuditLogRepository,
	at time.Time,
	rfpID uuid.UUID,
	action AuditAction,
	by actor.Actor,
	notes *string,
	metadata map[string]interface{},
) error {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return audits.Append(ctx, &entity.AuditLogEntry{
		RfpRequestID:    rfpID,
		Action:          string(action),
		PerformedBy:     by.ID,
		PerformedByName: by.Name,
		PerformedByRole: by.RoleLabel(),
		Notes:           notes,
		Metadata:        metadata,
		CreatedAt:       at,
	})
}

// AuditService is the read side of the audit log
type AuditService struct {
	uow repository.UnitOfWork
}

// NewAuditService creates a new audit service
func NewAuditService(uow repository.UnitOfWork) *AuditService {
	return &AuditService{uow: uow}
}

// ListByRfp returns the RFP's entries oldest first
func (s *AuditService) ListByRfp(ctx context.Context, by actor.Actor, rfpID uuid.UUID) ([]entity.AuditLogEntry, error) {
	if !by.Can(actor.CanViewRfp) {
		return nil, apperror.NewPermissionError("You are not allowed to view RFPs")
	}
	repos := s.uow.Repositories()
	rfp, err := repos.Rfps.GetByID(ctx, rfpID)
	if err != nil {
		return nil, err
	}
	if rfp == nil {
		return nil, apperror.NewNotFoundError("RFP")
	}
	return repos.AuditLogs.ListByRfp(ctx, rfpID)
}
