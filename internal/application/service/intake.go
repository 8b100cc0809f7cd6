package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/actor"
	"github.com/sangkips/rfp-api/internal/domain/entity"
	"github.com/sangkips/rfp-api/internal/domain/enum"
	"github.com/sangkips/rfp-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Intake is the product section of a creation request. It is either
// IntakeProducts or the older single-product IntakeLegacy.
type Intake interface {
	isIntake()
}

// ProductLineInput is one requested product line
type ProductLineInput struct {
	ProductSpec        string
	Quantity           int
	Length             *float64
	LengthUnit         string
	TargetPrice        *decimal.Decimal
	AvailabilityStatus string
}

// IntakeProducts carries a list of product lines
type IntakeProducts struct {
	Lines []ProductLineInput
}

// IntakeLegacy carries a single product spec with its availability
type IntakeLegacy struct {
	ProductSpec        string
	AvailabilityStatus string
}

func (IntakeProducts) isIntake() {}
func (IntakeLegacy) isIntake()   {}

// CreateRfpInput represents the input for raising an RFP
type CreateRfpInput struct {
	LeadID               uint
	Intake               Intake
	DeliveryTimeline     *string
	SpecialRequirements  *string
	SalespersonID        *uuid.UUID
	PricingDecisionRfpID *entity.DecisionSnapshotID
}

// ValidateIntake checks the caller and the request shape and returns the
// canonical product lines. The first failing rule wins.
func ValidateIntake(by actor.Actor, input *CreateRfpInput) ([]entity.RfpProduct, error) {
	if !by.Can(actor.CanCreateRfp) {
		return nil, apperror.NewPermissionError("Only sales department users can create RFPs")
	}
	if input == nil || input.LeadID == 0 {
		return nil, apperror.NewFieldError("lead_id", "lead_id is required")
	}

	switch in := input.Intake.(type) {
	case IntakeProducts:
		return normalizeLines(in.Lines)
	case *IntakeProducts:
		if in == nil {
			break
		}
		return normalizeLines(in.Lines)
	case IntakeLegacy:
		return normalizeLegacy(in)
	case *IntakeLegacy:
		if in == nil {
			break
		}
		return normalizeLegacy(*in)
	}
	return nil, apperror.NewFieldError("products", "products is required")
}

func normalizeLines(lines []ProductLineInput) ([]entity.RfpProduct, error) {
	if len(lines) == 0 {
		return nil, apperror.NewFieldError("products", "at least one product is required")
	}

	products := make([]entity.RfpProduct, 0, len(lines))
	for i, line := range lines {
		spec := strings.TrimSpace(line.ProductSpec)
		if spec == "" {
			return nil, apperror.NewFieldError(indexedField("products", i, "product_spec"), "product_spec is required")
		}
		status := enum.AvailabilityStatus(strings.TrimSpace(line.AvailabilityStatus))
		if !status.IsValid() {
			return nil, apperror.NewFieldError(indexedField("products", i, "availability_status"), "availability_status is invalid")
		}
		if line.Quantity < 0 {
			return nil, apperror.NewFieldError(indexedField("products", i, "quantity"), "quantity must be positive")
		}
		if line.TargetPrice != nil && line.TargetPrice.IsNegative() {
			return nil, apperror.NewFieldError(indexedField("products", i, "target_price"), "target_price must not be negative")
		}

		product := entity.RfpProduct{
			Position:           i,
			ProductSpec:        spec,
			Quantity:           line.Quantity,
			Length:             line.Length,
			LengthUnit:         strings.TrimSpace(line.LengthUnit),
			AvailabilityStatus: status,
		}
		if product.Quantity == 0 {
			product.Quantity = 1
		}
		if product.LengthUnit == "" {
			product.LengthUnit = entity.DefaultLengthUnit
		}
		if line.TargetPrice != nil {
			product.TargetPrice = decimal.NewNullDecimal(*line.TargetPrice)
		}
		products = append(products, product)
	}
	return products, nil
}

func normalizeLegacy(in IntakeLegacy) ([]entity.RfpProduct, error) {
	spec := strings.TrimSpace(in.ProductSpec)
	if spec == "" {
		return nil, apperror.NewFieldError("product_spec", "product_spec is required")
	}
	raw := strings.TrimSpace(in.AvailabilityStatus)
	if raw == "" {
		return nil, apperror.NewFieldError("availability_status", "availability_status is required")
	}
	status := enum.AvailabilityStatus(raw)
	if status == enum.AvailabilityInStock {
		return nil, apperror.NewConflictError("Product is in stock with a known price; use direct quotation")
	}
	if !status.IsValid() {
		return nil, apperror.NewFieldError("availability_status", "availability_status is invalid")
	}

	return []entity.RfpProduct{{
		ProductSpec:        spec,
		Quantity:           1,
		LengthUnit:         entity.DefaultLengthUnit,
		AvailabilityStatus: status,
	}}, nil
}

func indexedField(list string, i int, name string) string {
	return fmt.Sprintf("%s[%d].%s", list, i, name)
}
