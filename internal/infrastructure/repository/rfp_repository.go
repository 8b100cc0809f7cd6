package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/entity"
	domainRepo "github.com/sangkips/rfp-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type rfpRepository struct {
	db *gorm.DB
}

// NewRfpRepository creates a new RFP repository
func NewRfpRepository(db *gorm.DB) domainRepo.RfpRepository {
	return &rfpRepository{db: db}
}

func orderedProducts(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *rfpRepository) Create(ctx context.Context, rfp *entity.RfpRequest) error {
	return translateError(r.db.WithContext(ctx).Create(rfp).Error)
}

func (r *rfpRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.RfpRequest, error) {
	var rfp entity.RfpRequest
	err := r.db.WithContext(ctx).
		Preload("Products", orderedProducts).
		First(&rfp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rfp, err
}

func (r *rfpRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.RfpRequest, error) {
	var rfp entity.RfpRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&rfp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	err = orderedProducts(r.db.WithContext(ctx)).
		Where("rfp_request_id = ?", rfp.ID).
		Find(&rfp.Products).Error
	return &rfp, err
}

func (r *rfpRepository) Update(ctx context.Context, rfp *entity.RfpRequest) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(rfp).Error)
}

func (r *rfpRepository) UpdateProduct(ctx context.Context, product *entity.RfpProduct) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *rfpRepository) LatestRfpIDWithPrefix(ctx context.Context, prefix string) (string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Unscoped().
		Model(&entity.RfpRequest{}).
		Where("rfp_id LIKE ? ESCAPE '\\'", escapeLike(prefix)+"-%").
		Order("LENGTH(rfp_id) DESC, rfp_id DESC").
		Limit(1).
		Pluck("rfp_id", &ids).Error
	if err != nil || len(ids) == 0 {
		return "", err
	}
	return ids[0], nil
}

func (r *rfpRepository) List(ctx context.Context, params *domainRepo.RfpFilterParams) ([]entity.RfpRequest, int64, error) {
	var rfps []entity.RfpRequest
	var total int64

	filtered := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&entity.RfpRequest{}).Scopes(RfpFilters(params))
	}
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := filtered().Scopes(Paginate(params.Pagination)).
		Preload("Products", orderedProducts).
		Order("created_at DESC").
		Find(&rfps).Error

	return rfps, total, err
}

type priceRevisionRepository struct {
	db *gorm.DB
}

// NewPriceRevisionRepository creates a new price revision repository
func NewPriceRevisionRepository(db *gorm.DB) domainRepo.PriceRevisionRepository {
	return &priceRevisionRepository{db: db}
}

func (r *priceRevisionRepository) Append(ctx context.Context, revision *entity.PriceRevision) error {
	return r.db.WithContext(ctx).Create(revision).Error
}

func (r *priceRevisionRepository) ListByRfp(ctx context.Context, rfpRequestID uuid.UUID) ([]entity.PriceRevision, error) {
	var revisions []entity.PriceRevision
	err := r.db.WithContext(ctx).
		Where("rfp_request_id = ?", rfpRequestID).
		Order("created_at ASC, id ASC").
		Find(&revisions).Error
	return revisions, err
}

func (r *priceRevisionRepository) Latest(ctx context.Context, rfpRequestID uuid.UUID) (*entity.PriceRevision, error) {
	var revision entity.PriceRevision
	err := r.db.WithContext(ctx).
		Where("rfp_request_id = ?", rfpRequestID).
		Order("created_at DESC, id DESC").
		Take(&revision).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &revision, err
}

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) domainRepo.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Append(ctx context.Context, entry *entity.AuditLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditLogRepository) ListByRfp(ctx context.Context, rfpRequestID uuid.UUID) ([]entity.AuditLogEntry, error) {
	var entries []entity.AuditLogEntry
	err := r.db.WithContext(ctx).
		Where("rfp_request_id = ?", rfpRequestID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) domainRepo.LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) GetByID(ctx context.Context, id uint) (*entity.Lead, error) {
	var lead entity.Lead
	err := r.db.WithContext(ctx).First(&lead, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &lead, err
}
