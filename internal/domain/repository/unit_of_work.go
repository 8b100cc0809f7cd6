package repository

import "context"

// Repositories groups the repositories that take part in one unit of work
type Repositories struct {
	Rfps             RfpRepository
	PriceRevisions   PriceRevisionRepository
	AuditLogs        AuditLogRepository
	PricingDecisions PricingDecisionRepository
	Quotations       QuotationRepository
	WorkOrders       WorkOrderRepository
	Leads            LeadRepository
}

// UnitOfWork hands out repositories bound either to the plain connection or to a
// single database transaction
type UnitOfWork interface {
	Repositories() *Repositories
	// Transaction runs fn with repositories sharing one transaction. Returning an
	// error from fn rolls everything back.
	Transaction(ctx context.Context, fn func(repos *Repositories) error) error
}
