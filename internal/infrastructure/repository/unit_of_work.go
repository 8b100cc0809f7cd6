package repository

import (
	"context"

	domainRepo "github.com/sangkips/rfp-api/internal/domain/repository"
	"gorm.io/gorm"
)

type unitOfWork struct {
	db    *gorm.DB
	repos *domainRepo.Repositories
}

// NewUnitOfWork creates repositories bound to db plus a way to run them inside a transaction
func NewUnitOfWork(db *gorm.DB) domainRepo.UnitOfWork {
	return &unitOfWork{db: db, repos: newRepositories(db)}
}

func newRepositories(db *gorm.DB) *domainRepo.Repositories {
	return &domainRepo.Repositories{
		Rfps:             NewRfpRepository(db),
		PriceRevisions:   NewPriceRevisionRepository(db),
		AuditLogs:        NewAuditLogRepository(db),
		PricingDecisions: NewPricingDecisionRepository(db),
		Quotations:       NewQuotationRepository(db),
		WorkOrders:       NewWorkOrderRepository(db),
		Leads:            NewLeadRepository(db),
	}
}

func (u *unitOfWork) Repositories() *domainRepo.Repositories {
	return u.repos
}

func (u *unitOfWork) Transaction(ctx context.Context, fn func(repos *domainRepo.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepositories(tx))
	})
}
