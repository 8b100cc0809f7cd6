package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sangkips/rfp-api/internal/domain/actor"
	"github.com/sangkips/rfp-api/internal/domain/entity"
	"github.com/sangkips/rfp-api/internal/domain/enum"
	"github.com/sangkips/rfp-api/internal/domain/repository"
	"github.com/sangkips/rfp-api/pkg/apperror"
	"github.com/sangkips/rfp-api/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	quotationPrefix   = "QT"
	quotationSeqWidth = 6
)

var hundred = decimal.NewFromInt(100)

// QuotationSettings holds the commercial constants used when quoting
type QuotationSettings struct {
	GSTPercentage decimal.Decimal
	ValidityDays  int
}

// DefaultQuotationSettings returns 18% GST and 30 day validity
func DefaultQuotationSettings() QuotationSettings {
	return QuotationSettings{GSTPercentage: decimal.NewFromInt(18), ValidityDays: 30}
}

// QuotationGenerator derives a customer-facing quotation from a priced RFP
type QuotationGenerator struct {
	settings QuotationSettings
	log      *zap.Logger
}

// NewQuotationGenerator creates a new quotation generator
func NewQuotationGenerator(settings QuotationSettings, log *zap.Logger) *QuotationGenerator {
	return &QuotationGenerator{settings: settings, log: log.Named("quotation.generator")}
}

// QuotationAmounts is the tax breakdown of a quotation
type QuotationAmounts struct {
	Taxable decimal.Decimal
	Tax     decimal.Decimal
	Total   decimal.Decimal
}

// Amounts computes quantity x unit price plus GST
func (g *QuotationGenerator) Amounts(quantity int, unitPrice decimal.Decimal) QuotationAmounts {
	taxable := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	tax := taxable.Mul(g.settings.GSTPercentage).Div(hundred).Round(2)
	return QuotationAmounts{Taxable: taxable, Tax: tax, Total: taxable.Add(tax)}
}

// Generate persists the quotation and its single line item. Preconditions on the
// RFP are checked by the caller under the row lock.
func (g *QuotationGenerator) Generate(
	ctx context.Context,
	repos *repository.Repositories,
	rfp *entity.RfpRequest,
	by actor.Actor,
	now time.Time,
) (*entity.Quotation, error) {
	lead, err := repos.Leads.GetByID(ctx, rfp.LeadID)
	if err != nil {
		return nil, apperror.NewCollaboratorError("load lead", err)
	}

	last, err := repos.Quotations.LatestReference(ctx)
	if err != nil {
		return nil, apperror.NewCollaboratorError("create quotation", err)
	}
	reference, err := utils.NextSequence(last, quotationPrefix, quotationSeqWidth)
	if err != nil {
		return nil, apperror.NewCollaboratorError("create quotation", err)
	}

	quantity := rfp.TotalQuantity()
	unitPrice := rfp.CalculatedPrice.Decimal
	amounts := g.Amounts(quantity, unitPrice)

	validUntil := now.AddDate(0, 0, g.settings.ValidityDays)
	if rfp.PriceValidUntil != nil {
		validUntil = *rfp.PriceValidUntil
	}

	rfpID := rfp.ID
	quotation := &entity.Quotation{
		RfpRequestID:  &rfpID,
		LeadID:        rfp.LeadID,
		CreatedBy:     by.ID,
		Date:          now.Truncate(24 * time.Hour),
		Reference:     reference,
		CustomerName:  rfp.CompanyName,
		TaxableAmount: amounts.Taxable,
		TaxPercentage: g.settings.GSTPercentage,
		TaxAmount:     amounts.Tax,
		TotalAmount:   amounts.Total,
		ValidUntil:    &validUntil,
		Status:        enum.QuotationStatusPending,
		Details: []entity.QuotationDetail{{
			Description: describeProducts(rfp.Products),
			Quantity:    quantity,
			LengthUnit:  lengthUnit(rfp.Products),
			UnitPrice:   unitPrice,
			SubTotal:    amounts.Taxable,
		}},
	}
	if lead != nil {
		quotation.CustomerName = lead.CompanyName
		quotation.ContactName = lead.ContactName
		quotation.CustomerEmail = lead.Email
		quotation.CustomerPhone = lead.Phone
		quotation.CustomerAddress = lead.Address
		quotation.CustomerGSTIN = lead.GSTIN
	}

	if err := repos.Quotations.Create(ctx, quotation); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, err
		}
		g.log.Error("quotation insert failed", zap.String("rfp", rfp.ID.String()), zap.Error(err))
		return nil, apperror.NewCollaboratorError("create quotation", err)
	}
	return quotation, nil
}

func describeProducts(products []entity.RfpProduct) string {
	specs := make([]string, 0, len(products))
	for _, p := range products {
		specs = append(specs, p.ProductSpec)
	}
	return strings.Join(specs, "; ")
}

func lengthUnit(products []entity.RfpProduct) string {
	if len(products) > 0 && products[0].LengthUnit != "" {
		return products[0].LengthUnit
	}
	return entity.DefaultLengthUnit
}
