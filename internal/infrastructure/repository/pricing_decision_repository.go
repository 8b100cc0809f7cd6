package repository

import (
	"context"
	"errors"

	"github.com/sangkips/rfp-api/internal/domain/entity"
	domainRepo "github.com/sangkips/rfp-api/internal/domain/repository"
	"gorm.io/gorm"
)

type pricingDecisionRepository struct {
	db *gorm.DB
}

// NewPricingDecisionRepository creates a new pricing decision repository
func NewPricingDecisionRepository(db *gorm.DB) domainRepo.PricingDecisionRepository {
	return &pricingDecisionRepository{db: db}
}

func (r *pricingDecisionRepository) Create(ctx context.Context, decision *entity.PricingDecision) error {
	return translateError(r.db.WithContext(ctx).Create(decision).Error)
}

func (r *pricingDecisionRepository) GetByDecisionID(ctx context.Context, id entity.DecisionSnapshotID) (*entity.PricingDecision, error) {
	var decision entity.PricingDecision
	err := r.db.WithContext(ctx).First(&decision, "rfp_id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &decision, err
}

func (r *pricingDecisionRepository) GetLatestByLead(ctx context.Context, leadID uint) (*entity.PricingDecision, error) {
	var decision entity.PricingDecision
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at DESC, rfp_id DESC").
		Take(&decision).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &decision, err
}

func (r *pricingDecisionRepository) Update(ctx context.Context, decision *entity.PricingDecision) error {
	return translateError(r.db.WithContext(ctx).Save(decision).Error)
}

func (r *pricingDecisionRepository) LatestIDWithPrefix(ctx context.Context, prefix string) (string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&entity.PricingDecision{}).
		Where("rfp_id LIKE ? ESCAPE '\\'", escapeLike(prefix)+"-%").
		Order("LENGTH(rfp_id) DESC, rfp_id DESC").
		Limit(1).
		Pluck("rfp_id", &ids).Error
	if err != nil || len(ids) == 0 {
		return "", err
	}
	return ids[0], nil
}
