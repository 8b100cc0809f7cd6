package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DecisionProduct is a product line frozen into a pricing decision
type DecisionProduct struct {
	ProductSpec        string                  `json:"product_spec"`
	Quantity           int                     `json:"quantity"`
	Length             *float64                `json:"length,omitempty"`
	LengthUnit         string                  `json:"length_unit"`
	TargetPrice        *decimal.Decimal        `json:"target_price,omitempty"`
	Price              *decimal.Decimal        `json:"price,omitempty"`
	AvailabilityStatus enum.AvailabilityStatus `json:"availability_status,omitempty"`
	CalculatorPrice    *decimal.Decimal        `json:"calculator_price,omitempty"`
	CalculatorDetail   *string                 `json:"calculator_detail,omitempty"`
}

// PricingDecision is a point-in-time copy of the commercial terms agreed for a
// lead. It is a document, not a workflow: a lead may accumulate several.
type PricingDecision struct {
	ID                   uuid.UUID                            `gorm:"type:uuid;primary_key" json:"id"`
	RfpID                DecisionSnapshotID                   `gorm:"size:50;uniqueIndex;not null" json:"rfp_id"`
	LeadID               uint                                 `gorm:"not null;index" json:"lead_id"`
	SalespersonID        *uuid.UUID                           `gorm:"type:uuid;index" json:"salesperson_id,omitempty"`
	SourceRfpRequestID   *uuid.UUID                           `gorm:"type:uuid;index" json:"source_rfp_request_id,omitempty"`
	CreatedBy            uuid.UUID                            `gorm:"type:uuid;not null" json:"created_by"`
	CompanyName          string                               `gorm:"size:255" json:"company_name"`
	Products             datatypes.JSONSlice[DecisionProduct] `json:"products"`
	DeliveryTimeline     *string                              `gorm:"type:text" json:"delivery_timeline,omitempty"`
	SpecialRequirements  *string                              `gorm:"type:text" json:"special_requirements,omitempty"`
	CalculatorTotalPrice decimal.NullDecimal                  `gorm:"type:decimal(15,2)" json:"calculator_total_price"`
	Status               enum.PricingDecisionStatus           `gorm:"size:30;not null;index" json:"status"`
	RfpCreated           bool                                 `gorm:"not null;default:false" json:"rfp_created"`
	RfpCreatedAt         *time.Time                           `json:"rfp_created_at,omitempty"`
	CreatedAt            time.Time                            `gorm:"index" json:"created_at"`
	UpdatedAt            time.Time                            `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new pricing decision
func (d *PricingDecision) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PricingDecision model
func (PricingDecision) TableName() string {
	return "pricing_decisions"
}

// DecisionProductsFromRfp freezes an RFP's product lines
func DecisionProductsFromRfp(lines []RfpProduct) []DecisionProduct {
	out := make([]DecisionProduct, 0, len(lines))
	for _, l := range lines {
		p := DecisionProduct{
			ProductSpec:        l.ProductSpec,
			Quantity:           l.Quantity,
			Length:             l.Length,
			LengthUnit:         l.LengthUnit,
			AvailabilityStatus: l.AvailabilityStatus,
			CalculatorDetail:   l.CalculatorDetail,
		}
		if l.TargetPrice.Valid {
			v := l.TargetPrice.Decimal
			p.TargetPrice = &v
		}
		if l.CalculatorPrice.Valid {
			v := l.CalculatorPrice.Decimal
			p.CalculatorPrice = &v
		}
		out = append(out, p)
	}
	return out
}
