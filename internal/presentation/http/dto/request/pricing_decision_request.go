package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreatePricingDecisionRequest represents a pricing decision saved directly by sales
type CreatePricingDecisionRequest struct {
	LeadID               uint                     `json:"lead_id" binding:"required"`
	SalespersonID        *uuid.UUID               `json:"salesperson_id"`
	Products             []entity.DecisionProduct `json:"products"`
	DeliveryTimeline     *string                  `json:"delivery_timeline"`
	SpecialRequirements  *string                  `json:"special_requirements"`
	CalculatorTotalPrice *decimal.Decimal         `json:"calculator_total_price"`
}

// UpdatePricingDecisionRequest is a partial update; omitted fields are left alone
type UpdatePricingDecisionRequest struct {
	Products            *[]entity.DecisionProduct `json:"products"`
	DeliveryTimeline    *string                   `json:"delivery_timeline"`
	SpecialRequirements *string                   `json:"special_requirements"`
}
