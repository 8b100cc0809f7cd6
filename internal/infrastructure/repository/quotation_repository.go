package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/entity"
	domainRepo "github.com/sangkips/rfp-api/internal/domain/repository"
	"gorm.io/gorm"
)

type quotationRepository struct {
	db *gorm.DB
}

// NewQuotationRepository creates a new quotation repository
func NewQuotationRepository(db *gorm.DB) domainRepo.QuotationRepository {
	return &quotationRepository{db: db}
}

func (r *quotationRepository) Create(ctx context.Context, quotation *entity.Quotation) error {
	return translateError(r.db.WithContext(ctx).Create(quotation).Error)
}

func (r *quotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	var quotation entity.Quotation
	err := r.db.WithContext(ctx).
		Preload("Details").
		First(&quotation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quotation, err
}

func (r *quotationRepository) GetByRfpRequestID(ctx context.Context, rfpRequestID uuid.UUID) (*entity.Quotation, error) {
	var quotation entity.Quotation
	err := r.db.WithContext(ctx).
		Preload("Details").
		First(&quotation, "rfp_request_id = ?", rfpRequestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quotation, err
}

func (r *quotationRepository) LatestReference(ctx context.Context) (string, error) {
	var refs []string
	err := r.db.WithContext(ctx).Unscoped().
		Model(&entity.Quotation{}).
		Where("reference LIKE ?", "QT-%").
		Order("LENGTH(reference) DESC, reference DESC").
		Limit(1).
		Pluck("reference", &refs).Error
	if err != nil || len(refs) == 0 {
		return "", err
	}
	return refs[0], nil
}

func (r *quotationRepository) CountByRfpRequestID(ctx context.Context, rfpRequestID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().
		Model(&entity.Quotation{}).
		Where("rfp_request_id = ?", rfpRequestID).
		Count(&count).Error
	return count, err
}
