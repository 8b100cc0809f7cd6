package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Quotation represents a customer-facing price quotation
type Quotation struct {
	ID              uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	RfpRequestID    *uuid.UUID           `gorm:"type:uuid;uniqueIndex" json:"rfp_request_id,omitempty"`
	LeadID          uint                 `gorm:"index" json:"lead_id"`
	CreatedBy       uuid.UUID            `gorm:"type:uuid;not null;index" json:"created_by"`
	Date            time.Time            `gorm:"type:date;not null" json:"date"`
	Reference       string               `gorm:"size:100;uniqueIndex;not null" json:"reference"`
	CustomerName    string               `gorm:"size:255" json:"customer_name"`
	ContactName     string               `gorm:"size:255" json:"contact_name"`
	CustomerEmail   *string              `gorm:"size:255" json:"customer_email,omitempty"`
	CustomerPhone   *string              `gorm:"size:50" json:"customer_phone,omitempty"`
	CustomerAddress *string              `gorm:"type:text" json:"customer_address,omitempty"`
	CustomerGSTIN   *string              `gorm:"size:20;column:customer_gstin" json:"customer_gstin,omitempty"`
	TaxableAmount   decimal.Decimal      `gorm:"type:decimal(15,2);not null" json:"taxable_amount"`
	TaxPercentage   decimal.Decimal      `gorm:"type:decimal(5,2);not null" json:"tax_percentage"`
	TaxAmount       decimal.Decimal      `gorm:"type:decimal(15,2);not null" json:"tax_amount"`
	TotalAmount     decimal.Decimal      `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	ValidUntil      *time.Time           `json:"valid_until,omitempty"`
	Status          enum.QuotationStatus `gorm:"size:20;not null" json:"status"`
	Note            *string              `gorm:"type:text" json:"note,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	DeletedAt       gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	Details []QuotationDetail `gorm:"foreignKey:QuotationID" json:"details,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quotation
func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quotation model
func (Quotation) TableName() string {
	return "quotations"
}

// QuotationDetail represents a line item in a quotation
type QuotationDetail struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	QuotationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"quotation_id"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	LengthUnit  string          `gorm:"size:20" json:"length_unit"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	SubTotal    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"sub_total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new quotation detail
func (qd *QuotationDetail) BeforeCreate(tx *gorm.DB) error {
	if qd.ID == uuid.Nil {
		qd.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuotationDetail model
func (QuotationDetail) TableName() string {
	return "quotation_details"
}
