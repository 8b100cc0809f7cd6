package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrAppendOnly is returned by hooks when code tries to rewrite ledger history
var ErrAppendOnly = errors.New("record is append-only")

// PriceRevision is one pricing proposal made by accounts. Revisions are never
// mutated; the RFP mirrors the most recent one.
type PriceRevision struct {
	ID               uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	RfpRequestID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"rfp_request_id"`
	RawMaterialPrice decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"raw_material_price"`
	ProcessingCost   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"processing_cost"`
	Margin           decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"margin"`
	CalculatedPrice  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"calculated_price"`
	ValidityDate     time.Time       `gorm:"not null" json:"validity_date"`
	CreatedBy        uuid.UUID       `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt        time.Time       `gorm:"not null;index" json:"created_at"`
}

// TableName returns the table name for the PriceRevision model
func (PriceRevision) TableName() string {
	return "rfp_price_revisions"
}

func (PriceRevision) BeforeUpdate(tx *gorm.DB) error { return ErrAppendOnly }
func (PriceRevision) BeforeDelete(tx *gorm.DB) error { return ErrAppendOnly }

// AuditLogEntry records one workflow transition of an RFP
type AuditLogEntry struct {
	ID              uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	RfpRequestID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"rfp_request_id"`
	Action          string            `gorm:"size:50;not null;index" json:"action"`
	PerformedBy     uuid.UUID         `gorm:"type:uuid;not null" json:"performed_by"`
	PerformedByName string            `gorm:"size:255" json:"performed_by_name,omitempty"`
	PerformedByRole string            `gorm:"size:100" json:"performed_by_role"`
	Notes           *string           `gorm:"type:text" json:"notes,omitempty"`
	Metadata        datatypes.JSONMap `json:"metadata"`
	CreatedAt       time.Time         `gorm:"not null;index" json:"created_at"`
}

// TableName returns the table name for the AuditLogEntry model
func (AuditLogEntry) TableName() string {
	return "rfp_audit_logs"
}

func (AuditLogEntry) BeforeUpdate(tx *gorm.DB) error { return ErrAppendOnly }
func (AuditLogEntry) BeforeDelete(tx *gorm.DB) error { return ErrAppendOnly }
