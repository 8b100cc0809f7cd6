package repository

import (
	"context"

	"github.com/sangkips/rfp-api/internal/domain/entity"
)

// PricingDecisionRepository defines the interface for pricing decision snapshots
type PricingDecisionRepository interface {
	Create(ctx context.Context, decision *entity.PricingDecision) error
	GetByDecisionID(ctx context.Context, id entity.DecisionSnapshotID) (*entity.PricingDecision, error)
	// GetLatestByLead returns the most recently created snapshot for the lead
	GetLatestByLead(ctx context.Context, leadID uint) (*entity.PricingDecision, error)
	Update(ctx context.Context, decision *entity.PricingDecision) error
	LatestIDWithPrefix(ctx context.Context, prefix string) (string, error)
}
