package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WorkOrder is the production order dispatched once a quotation is cleared.
// At most one exists per quotation number.
type WorkOrder struct {
	ID              uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	WorkOrderNumber string               `gorm:"size:100;uniqueIndex;not null" json:"work_order_number"`
	QuotationID     uuid.UUID            `gorm:"type:uuid;not null;index" json:"quotation_id"`
	QuotationNumber string               `gorm:"size:100;uniqueIndex;not null" json:"quotation_number"`
	RfpRequestID    *uuid.UUID           `gorm:"type:uuid;index" json:"rfp_request_id,omitempty"`
	LeadID          uint                 `gorm:"index" json:"lead_id"`
	CustomerName    string               `gorm:"size:255" json:"customer_name"`
	ContactName     string               `gorm:"size:255" json:"contact_name"`
	CustomerPhone   *string              `gorm:"size:50" json:"customer_phone,omitempty"`
	CustomerAddress *string              `gorm:"type:text" json:"customer_address,omitempty"`
	TotalAmount     decimal.Decimal      `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	Status          enum.WorkOrderStatus `gorm:"size:30;not null" json:"status"`
	CreatedBy       uuid.UUID            `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`

	// Relationships
	Items []WorkOrderItem `gorm:"foreignKey:WorkOrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new work order
func (w *WorkOrder) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the WorkOrder model
func (WorkOrder) TableName() string {
	return "work_orders"
}

// WorkOrderItem is a line copied from the quotation
type WorkOrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	WorkOrderID uuid.UUID       `gorm:"type:uuid;not null;index" json:"work_order_id"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	LengthUnit  string          `gorm:"size:20" json:"length_unit"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new work order item
func (i *WorkOrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the WorkOrderItem model
func (WorkOrderItem) TableName() string {
	return "work_order_items"
}
