package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductLineRequest is one requested product line
type ProductLineRequest struct {
	ProductSpec        string           `json:"product_spec"`
	Quantity           int              `json:"quantity"`
	Length             *float64         `json:"length"`
	LengthUnit         string           `json:"length_unit"`
	TargetPrice        *decimal.Decimal `json:"target_price"`
	AvailabilityStatus string           `json:"availability_status"`
}

// CreateRfpRequest accepts either a products list or the older single
// product_spec/availability_status pair. Field rules are enforced by the service
// so the first failing rule is reported with its field.
type CreateRfpRequest struct {
	LeadID               uint                 `json:"lead_id"`
	Products             []ProductLineRequest `json:"products"`
	ProductSpec          string               `json:"product_spec"`
	AvailabilityStatus   string               `json:"availability_status"`
	DeliveryTimeline     *string              `json:"delivery_timeline"`
	SpecialRequirements  *string              `json:"special_requirements"`
	SalespersonID        *uuid.UUID           `json:"salesperson_id"`
	PricingDecisionRfpID *string              `json:"pricing_decision_rfp_id"`
}

// HasProducts reports whether the request uses the products list shape
func (r *CreateRfpRequest) HasProducts() bool {
	return r.Products != nil
}

// HasLegacyProduct reports whether the request uses the single product shape
func (r *CreateRfpRequest) HasLegacyProduct() bool {
	return strings.TrimSpace(r.ProductSpec) != "" || strings.TrimSpace(r.AvailabilityStatus) != ""
}

// ApproveRfpRequest represents the head's approval
type ApproveRfpRequest struct {
	CalculatorTotalPrice *decimal.Decimal `json:"calculator_total_price"`
	CalculatorDetail     *string          `json:"calculator_detail"`
}

// RejectRfpRequest represents the head's rejection
type RejectRfpRequest struct {
	Reason *string `json:"reason" binding:"omitempty,max=2000"`
}

// SetProductPriceRequest overrides one product line's calculator price
type SetProductPriceRequest struct {
	ProductSpec      string          `json:"product_spec" binding:"required"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	CalculatorDetail *string         `json:"calculator_detail"`
}

// ClearProductPriceRequest clears one product line's calculator price
type ClearProductPriceRequest struct {
	ProductSpec string `json:"product_spec" binding:"required"`
}

// AddPriceRequest represents one pricing proposal from accounts
type AddPriceRequest struct {
	RawMaterialPrice decimal.Decimal `json:"raw_material_price"`
	ProcessingCost   decimal.Decimal `json:"processing_cost"`
	Margin           decimal.Decimal `json:"margin"`
	ValidityDate     string          `json:"validity_date" binding:"required"`
}

// ParseValidityDate accepts a calendar date or an RFC 3339 timestamp
func (r *AddPriceRequest) ParseValidityDate() (time.Time, error) {
	if t, err := time.Parse("2006-01-02", r.ValidityDate); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, r.ValidityDate)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// SubmitToAccountsRequest carries the proforma invoice and payment references
type SubmitToAccountsRequest struct {
	PiID      *string `json:"pi_id" binding:"omitempty,max=100"`
	PaymentID *string `json:"payment_id" binding:"omitempty,max=100"`
}

// DecisionRequest is an accounts or senior verdict
type DecisionRequest struct {
	Decision string  `json:"decision" binding:"required"`
	Notes    *string `json:"notes" binding:"omitempty,max=2000"`
}

// RfpFilterRequest represents RFP list filter parameters
type RfpFilterRequest struct {
	Status         string `form:"status"`
	Search         string `form:"search"`
	SalespersonID  string `form:"salesperson_id"`
	CompanyName    string `form:"company_name"`
	DepartmentType string `form:"department_type"`
}
