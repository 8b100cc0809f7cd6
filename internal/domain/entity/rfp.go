package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultLengthUnit is applied to product lines that do not state a unit
const DefaultLengthUnit = "Mtr"

// RfpRequest is the RFP aggregate: workflow status, product lines and the
// denormalized projection of the latest price revision
type RfpRequest struct {
	ID                   uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	RfpID                *WorkflowRfpID      `gorm:"size:50;uniqueIndex" json:"rfp_id"`
	MasterRfpID          *DecisionSnapshotID `gorm:"size:50;index" json:"master_rfp_id,omitempty"`
	PricingDecisionRfpID *DecisionSnapshotID `gorm:"size:50" json:"pricing_decision_rfp_id,omitempty"`
	LeadID               uint                `gorm:"not null;index" json:"lead_id"`
	SalespersonID        *uuid.UUID          `gorm:"type:uuid;index" json:"salesperson_id,omitempty"`
	CreatedBy            uuid.UUID           `gorm:"type:uuid;not null" json:"created_by"`
	DepartmentType       string              `gorm:"size:100" json:"department_type"`
	CompanyName          string              `gorm:"size:255;index" json:"company_name"`
	Status               enum.RfpStatus      `gorm:"size:30;not null;index" json:"status"`
	DeliveryTimeline     *string             `gorm:"type:text" json:"delivery_timeline,omitempty"`
	SpecialRequirements  *string             `gorm:"type:text" json:"special_requirements,omitempty"`

	// Mirror of the latest PriceRevision
	RawMaterialPrice decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"raw_material_price"`
	ProcessingCost   decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"processing_cost"`
	Margin           decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"margin"`
	CalculatedPrice  decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"calculated_price"`
	PriceValidUntil  *time.Time          `json:"price_valid_until,omitempty"`

	// Head's calculator total recorded at approval
	CalculatorTotalPrice decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"calculator_total_price"`
	CalculatorDetail     *string             `gorm:"type:text" json:"calculator_detail,omitempty"`

	QuotationID     *uuid.UUID `gorm:"type:uuid" json:"quotation_id,omitempty"`
	QuotationNumber *string    `gorm:"size:100" json:"quotation_number,omitempty"`
	WorkOrderID     *uuid.UUID `gorm:"type:uuid" json:"work_order_id,omitempty"`
	WorkOrderNumber *string    `gorm:"size:100" json:"work_order_number,omitempty"`
	PiID            *string    `gorm:"size:100" json:"pi_id,omitempty"`
	PaymentID       *string    `gorm:"size:100" json:"payment_id,omitempty"`

	ApprovedBy      *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedBy      *uuid.UUID `gorm:"type:uuid" json:"rejected_by,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason,omitempty"`

	AccountsApprovalStatus *enum.AccountsApprovalStatus `gorm:"size:30" json:"accounts_approval_status,omitempty"`
	AccountsApprovedBy     *uuid.UUID                   `gorm:"type:uuid" json:"accounts_approved_by,omitempty"`
	AccountsApprovedAt     *time.Time                   `json:"accounts_approved_at,omitempty"`
	AccountsNotes          *string                      `gorm:"type:text" json:"accounts_notes,omitempty"`

	SeniorApprovalStatus *enum.SeniorApprovalStatus `gorm:"size:30" json:"senior_approval_status,omitempty"`
	SeniorApprovedBy     *uuid.UUID                 `gorm:"type:uuid" json:"senior_approved_by,omitempty"`
	SeniorApprovedAt     *time.Time                 `json:"senior_approved_at,omitempty"`
	SeniorNotes          *string                    `gorm:"type:text" json:"senior_notes,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []RfpProduct `gorm:"foreignKey:RfpRequestID;constraint:OnDelete:CASCADE" json:"products"`
}

// BeforeCreate generates a UUID before creating a new RFP
func (r *RfpRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RfpRequest model
func (RfpRequest) TableName() string {
	return "rfp_requests"
}

// ProductBySpec returns the product line whose spec matches, ignoring surrounding whitespace
func (r *RfpRequest) ProductBySpec(spec string) *RfpProduct {
	spec = strings.TrimSpace(spec)
	for i := range r.Products {
		if strings.TrimSpace(r.Products[i].ProductSpec) == spec {
			return &r.Products[i]
		}
	}
	return nil
}

// TotalQuantity sums the quantities of all product lines
func (r *RfpRequest) TotalQuantity() int {
	total := 0
	for _, p := range r.Products {
		total += p.Quantity
	}
	return total
}

// RfpProduct is one product line of an RFP
type RfpProduct struct {
	ID                 uuid.UUID               `gorm:"type:uuid;primary_key" json:"id"`
	RfpRequestID       uuid.UUID               `gorm:"type:uuid;not null;index" json:"rfp_request_id"`
	Position           int                     `gorm:"not null;default:0" json:"position"`
	ProductSpec        string                  `gorm:"type:text;not null" json:"product_spec"`
	Quantity           int                     `gorm:"not null;default:1" json:"quantity"`
	Length             *float64                `json:"length,omitempty"`
	LengthUnit         string                  `gorm:"size:20;not null;default:'Mtr'" json:"length_unit"`
	TargetPrice        decimal.NullDecimal     `gorm:"type:decimal(15,2)" json:"target_price"`
	AvailabilityStatus enum.AvailabilityStatus `gorm:"size:50;not null" json:"availability_status"`
	CalculatorPrice    decimal.NullDecimal     `gorm:"type:decimal(15,2)" json:"calculator_price"`
	CalculatorDetail   *string                 `gorm:"type:text" json:"calculator_detail,omitempty"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

// BeforeCreate generates a UUID and defaults the length unit
func (p *RfpProduct) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.LengthUnit == "" {
		p.LengthUnit = DefaultLengthUnit
	}
	return nil
}

// TableName returns the table name for the RfpProduct model
func (RfpProduct) TableName() string {
	return "rfp_products"
}
