package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/actor"
	"github.com/sangkips/rfp-api/internal/domain/entity"
	"github.com/sangkips/rfp-api/internal/domain/enum"
	"github.com/sangkips/rfp-api/internal/domain/repository"
	"github.com/sangkips/rfp-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ProductPriceInput overrides one product line's calculator price
type ProductPriceInput struct {
	ProductSpec      string
	TotalPrice       decimal.Decimal
	CalculatorDetail *string
}

// AddPriceInput represents one pricing proposal from accounts
type AddPriceInput struct {
	RawMaterialPrice decimal.Decimal
	ProcessingCost   decimal.Decimal
	Margin           decimal.Decimal
	ValidityDate     time.Time
}

// PriceRevisionResult is the appended revision with the updated RFP
type PriceRevisionResult struct {
	Revision *entity.PriceRevision `json:"revision"`
	Rfp      *entity.RfpRequest    `json:"rfp"`
}

// QuotationResult is the generated quotation with the updated RFP
type QuotationResult struct {
	Quotation *entity.Quotation  `json:"quotation"`
	Rfp       *entity.RfpRequest `json:"rfp"`
}

// SetProductCalculatorPrice stores the head's calculator price on one product line
func (s *RfpService) SetProductCalculatorPrice(ctx context.Context, by actor.Actor, id uuid.UUID, input *ProductPriceInput) (*entity.RfpRequest, error) {
	if !by.Can(actor.CanApproveRfp) {
		return s.refuse(ActionSetProductPrice, id, by, apperror.NewPermissionError("You are not allowed to "+describeCapability(actor.CanApproveRfp)))
	}
	if input == nil || strings.TrimSpace(input.ProductSpec) == "" {
		return s.refuse(ActionSetProductPrice, id, by, apperror.NewFieldError("product_spec", "product_spec is required"))
	}
	if input.TotalPrice.IsNegative() {
		return s.refuse(ActionSetProductPrice, id, by, apperror.NewFieldError("total_price", "total_price must not be negative"))
	}

	return s.transition(ctx, ActionSetProductPrice, id, by, actor.CanApproveRfp, func(repos *repository.Repositories, rfp *entity.RfpRequest, now time.Time) error {
		product, err := productForCalculator(rfp, input.ProductSpec)
		if err != nil {
			return err
		}
		product.CalculatorPrice = decimal.NewNullDecimal(input.TotalPrice)
		product.CalculatorDetail = input.CalculatorDetail
		if err := repos.Rfps.UpdateProduct(ctx, product); err != nil {
			return err
		}
		return logAction(ctx, repos.AuditLogs, now, rfp.ID, AuditProductPriceSet, by, nil, map[string]interface{}{
			"product_spec":     product.ProductSpec,
			"calculator_price": input.TotalPrice.String(),
		})
	})
}

// ClearProductCalculatorPrice removes a product line's calculator override
func (s *RfpService) ClearProductCalculatorPrice(ctx context.Context, by actor.Actor, id uuid.UUID, productSpec string) (*entity.RfpRequest, error) {
	if !by.Can(actor.CanApproveRfp) {
		return s.refuse(ActionClearProductPrice, id, by, apperror.NewPermissionError("You are not allowed to "+describeCapability(actor.CanApproveRfp)))
	}
	if strings.TrimSpace(productSpec) == "" {
		return s.refuse(ActionClearProductPrice, id, by, apperror.NewFieldError("product_spec", "product_spec is required"))
	}

	return s.transition(ctx, ActionClearProductPrice, id, by, actor.CanApproveRfp, func(repos *repository.Repositories, rfp *entity.RfpRequest, now time.Time) error {
		product, err := productForCalculator(rfp, productSpec)
		if err != nil {
			return err
		}
		product.CalculatorPrice = decimal.NullDecimal{}
		product.CalculatorDetail = nil
		if err := repos.Rfps.UpdateProduct(ctx, product); err != nil {
			return err
		}
		return logAction(ctx, repos.AuditLogs, now, rfp.ID, AuditProductPriceCleared, by, nil, map[string]interface{}{
			"product_spec": product.ProductSpec,
		})
	})
}

func productForCalculator(rfp *entity.RfpRequest, spec string) (*entity.RfpProduct, error) {
	if rfp.Status != enum.RfpStatusPendingDH && rfp.Status != enum.RfpStatusApproved {
		return nil, apperror.NewConflictError("Calculator prices can only be changed before pricing starts")
	}
	product := rfp.ProductBySpec(spec)
	if product == nil {
		return nil, apperror.NewNotFoundError("Product line")
	}
	return product, nil
}

// AddPriceRevision appends a revision and mirrors it onto the RFP
func (s *RfpService) AddPriceRevision(ctx context.Context, by actor.Actor, id uuid.UUID, input *AddPriceInput) (*PriceRevisionResult, error) {
	if !by.Can(actor.CanPriceRfp) {
		_, err := s.refuse(ActionAddPrice, id, by, apperror.NewPermissionError("You are not allowed to "+describeCapability(actor.CanPriceRfp)))
		return nil, err
	}
	if err := validatePrice(input); err != nil {
		_, err = s.refuse(ActionAddPrice, id, by, err)
		return nil, err
	}

	var revision *entity.PriceRevision
	rfp, err := s.transition(ctx, ActionAddPrice, id, by, actor.CanPriceRfp, func(repos *repository.Repositories, rfp *entity.RfpRequest, now time.Time) error {
		if err := requireTransition(rfp, enum.RfpStatusPricingReady); err != nil {
			return err
		}
		if rfp.RfpID == nil {
			return apperror.NewConflictError("RFP has not been approved yet")
		}

		revision = &entity.PriceRevision{
			RfpRequestID:     rfp.ID,
			RawMaterialPrice: input.RawMaterialPrice,
			ProcessingCost:   input.ProcessingCost,
			Margin:           input.Margin,
			CalculatedPrice:  input.RawMaterialPrice.Add(input.ProcessingCost).Add(input.Margin),
			ValidityDate:     input.ValidityDate,
			CreatedBy:        by.ID,
			CreatedAt:        now,
		}
		if err := repos.PriceRevisions.Append(ctx, revision); err != nil {
			return err
		}

		rfp.RawMaterialPrice = decimal.NewNullDecimal(revision.RawMaterialPrice)
		rfp.ProcessingCost = decimal.NewNullDecimal(revision.ProcessingCost)
		rfp.Margin = decimal.NewNullDecimal(revision.Margin)
		rfp.CalculatedPrice = decimal.NewNullDecimal(revision.CalculatedPrice)
		rfp.PriceValidUntil = ptr(revision.ValidityDate)
		rfp.Status = enum.RfpStatusPricingReady
		if err := repos.Rfps.Update(ctx, rfp); err != nil {
			return err
		}

		return logAction(ctx, repos.AuditLogs, now, rfp.ID, AuditPriceUpdated, by, nil, map[string]interface{}{
			"revision_id":        revision.ID,
			"raw_material_price": revision.RawMaterialPrice.String(),
			"processing_cost":    revision.ProcessingCost.String(),
			"margin":             revision.Margin.String(),
			"calculated_price":   revision.CalculatedPrice.String(),
			"validity_date":      revision.ValidityDate.Format("2006-01-02"),
		})
	})
	if err != nil {
		return nil, err
	}
	return &PriceRevisionResult{Revision: revision, Rfp: rfp}, nil
}

func validatePrice(input *AddPriceInput) error {
	if input == nil {
		return apperror.NewFieldError("raw_material_price", "raw_material_price is required")
	}
	if input.RawMaterialPrice.IsNegative() {
		return apperror.NewFieldError("raw_material_price", "raw_material_price must not be negative")
	}
	if input.ProcessingCost.IsNegative() {
		return apperror.NewFieldError("processing_cost", "processing_cost must not be negative")
	}
	if input.Margin.IsNegative() {
		return apperror.NewFieldError("margin", "margin must not be negative")
	}
	if input.ValidityDate.IsZero() {
		return apperror.NewFieldError("validity_date", "validity_date is required")
	}
	return nil
}

// GenerateQuotation derives the RFP's one quotation. A second call, concurrent
// or not, fails with a conflict.
func (s *RfpService) GenerateQuotation(ctx context.Context, by actor.Actor, id uuid.UUID) (*QuotationResult, error) {
	var quotation *entity.Quotation
	rfp, err := s.transition(ctx, ActionQuote, id, by, actor.CanQuoteRfp, func(repos *repository.Repositories, rfp *entity.RfpRequest, now time.Time) error {
		if rfp.QuotationID != nil {
			return apperror.NewConflictError("Quotation already exists for this RFP")
		}
		if rfp.Status != enum.RfpStatusPricingReady {
			return apperror.NewConflictError("RFP must be pricing_ready to generate a quotation")
		}
		if !rfp.CalculatedPrice.Valid {
			return apperror.NewBadRequestError("RFP has no calculated price")
		}

		var err error
		quotation, err = s.quotations.Generate(ctx, repos, rfp, by, now)
		if err != nil {
			return err
		}

		rfp.QuotationID = ptr(quotation.ID)
		rfp.QuotationNumber = ptr(quotation.Reference)
		rfp.Status = enum.RfpStatusQuotationCreated
		if err := repos.Rfps.Update(ctx, rfp); err != nil {
			return err
		}

		return logAction(ctx, repos.AuditLogs, now, rfp.ID, AuditQuotationCreated, by, nil, map[string]interface{}{
			"quotation_id":     quotation.ID.String(),
			"quotation_number": quotation.Reference,
			"taxable_amount":   quotation.TaxableAmount.String(),
			"tax_amount":       quotation.TaxAmount.String(),
			"total_amount":     quotation.TotalAmount.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	return &QuotationResult{Quotation: quotation, Rfp: rfp}, nil
}
