package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/entity"
	domainRepo "github.com/sangkips/rfp-api/internal/domain/repository"
	"gorm.io/gorm"
)

type workOrderRepository struct {
	db *gorm.DB
}

// NewWorkOrderRepository creates a new work order repository
func NewWorkOrderRepository(db *gorm.DB) domainRepo.WorkOrderRepository {
	return &workOrderRepository{db: db}
}

// Create runs in a nested transaction so that, inside an outer transaction, a
// unique violation only rolls back to the savepoint.
func (r *workOrderRepository) Create(ctx context.Context, workOrder *entity.WorkOrder) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(workOrder).Error
	})
	return translateError(err)
}

func (r *workOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.WorkOrder, error) {
	var workOrder entity.WorkOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&workOrder, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &workOrder, err
}

func (r *workOrderRepository) GetByQuotationNumber(ctx context.Context, quotationNumber string) (*entity.WorkOrder, error) {
	var workOrder entity.WorkOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&workOrder, "quotation_number = ?", quotationNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &workOrder, err
}

func (r *workOrderRepository) LatestNumber(ctx context.Context) (string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).
		Model(&entity.WorkOrder{}).
		Where("work_order_number LIKE ?", "WO-%").
		Order("LENGTH(work_order_number) DESC, work_order_number DESC").
		Limit(1).
		Pluck("work_order_number", &numbers).Error
	if err != nil || len(numbers) == 0 {
		return "", err
	}
	return numbers[0], nil
}

func (r *workOrderRepository) CountByQuotationNumber(ctx context.Context, quotationNumber string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.WorkOrder{}).
		Where("quotation_number = ?", quotationNumber).
		Count(&count).Error
	return count, err
}
