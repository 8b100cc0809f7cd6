package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
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
	decisionIDPrefix = "RFP"
	decisionSeqWidth = 4
)

// PricingDecisionService manages pricing decision snapshots
type PricingDecisionService struct {
	uow   repository.UnitOfWork
	clock Clock
	log   *zap.Logger
}

// NewPricingDecisionService creates a new pricing decision service
func NewPricingDecisionService(uow repository.UnitOfWork, clock Clock, log *zap.Logger) *PricingDecisionService {
	if clock == nil {
		clock = SystemClock()
	}
	return &PricingDecisionService{uow: uow, clock: clock, log: log.Named("pricing_decision.service")}
}

// CreatePricingDecisionInput represents a pricing decision saved directly by sales
type CreatePricingDecisionInput struct {
	LeadID               uint
	SalespersonID        *uuid.UUID
	Products             []entity.DecisionProduct
	DeliveryTimeline     *string
	SpecialRequirements  *string
	CalculatorTotalPrice *decimal.Decimal
}

// UpdatePricingDecisionInput is a partial update; nil fields are left alone
type UpdatePricingDecisionInput struct {
	Products            *[]entity.DecisionProduct
	DeliveryTimeline    *string
	SpecialRequirements *string
}

// Create saves a pricing decision for a lead that never needed an RFP
func (s *PricingDecisionService) Create(ctx context.Context, by actor.Actor, input *CreatePricingDecisionInput) (*entity.PricingDecision, error) {
	if !by.Can(actor.CanManagePricingDecision) {
		return nil, apperror.NewPermissionError("Only sales can save pricing decisions")
	}
	if input == nil || input.LeadID == 0 {
		return nil, apperror.NewFieldError("lead_id", "lead_id is required")
	}
	products, err := validateDecisionProducts(input.Products)
	if err != nil {
		return nil, err
	}

	lead, err := s.uow.Repositories().Leads.GetByID(ctx, input.LeadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, apperror.NewNotFoundError("Lead")
	}

	salesperson := input.SalespersonID
	if salesperson == nil {
		salesperson = lead.SalespersonID
	}
	if salesperson == nil && by.Kind == actor.KindHuman {
		salesperson = ptr(by.ID)
	}

	var decision *entity.PricingDecision
	err = inTransaction(ctx, s.uow, "save pricing decision", func(repos *repository.Repositories) error {
		decision = &entity.PricingDecision{
			LeadID:              input.LeadID,
			SalespersonID:       salesperson,
			CreatedBy:           by.ID,
			CompanyName:         lead.CompanyName,
			Products:            products,
			DeliveryTimeline:    input.DeliveryTimeline,
			SpecialRequirements: input.SpecialRequirements,
			Status:              enum.PricingDecisionSaved,
		}
		if input.CalculatorTotalPrice != nil {
			decision.CalculatorTotalPrice = decimal.NewNullDecimal(*input.CalculatorTotalPrice)
		}
		return s.insert(ctx, repos.PricingDecisions, decision, s.clock.Now())
	})
	if err != nil {
		s.log.Debug("pricing decision not saved", zap.Uint("lead_id", input.LeadID), zap.Error(err))
		return nil, err
	}

	s.log.Info("pricing decision saved",
		zap.String("decision_id", decision.RfpID.String()),
		zap.Uint("lead_id", decision.LeadID),
	)
	return decision, nil
}

// GetLatestByLead returns the most recent snapshot for a lead
func (s *PricingDecisionService) GetLatestByLead(ctx context.Context, by actor.Actor, leadID uint) (*entity.PricingDecision, error) {
	if !by.Can(actor.CanViewRfp) {
		return nil, apperror.NewPermissionError("You are not allowed to view pricing decisions")
	}
	decision, err := s.uow.Repositories().PricingDecisions.GetLatestByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if decision == nil {
		return nil, apperror.NewNotFoundError("Pricing decision")
	}
	return decision, nil
}

// GetByDecisionID returns the snapshot numbered id
func (s *PricingDecisionService) GetByDecisionID(ctx context.Context, by actor.Actor, id entity.DecisionSnapshotID) (*entity.PricingDecision, error) {
	if !by.Can(actor.CanViewRfp) {
		return nil, apperror.NewPermissionError("You are not allowed to view pricing decisions")
	}
	decision, err := s.uow.Repositories().PricingDecisions.GetByDecisionID(ctx, id)
	if err != nil {
		return nil, err
	}
	if decision == nil {
		return nil, apperror.NewNotFoundError("Pricing decision")
	}
	return decision, nil
}

// Update applies a partial update. Snapshots that already produced an RFP are frozen.
func (s *PricingDecisionService) Update(ctx context.Context, by actor.Actor, id entity.DecisionSnapshotID, input *UpdatePricingDecisionInput) (*entity.PricingDecision, error) {
	if !by.Can(actor.CanManagePricingDecision) {
		return nil, apperror.NewPermissionError("Only sales can update pricing decisions")
	}
	if input == nil {
		input = &UpdatePricingDecisionInput{}
	}

	var products []entity.DecisionProduct
	if input.Products != nil {
		var err error
		if products, err = validateDecisionProducts(*input.Products); err != nil {
			return nil, err
		}
	}

	var decision *entity.PricingDecision
	err := s.uow.Transaction(ctx, func(repos *repository.Repositories) error {
		var err error
		decision, err = repos.PricingDecisions.GetByDecisionID(ctx, id)
		if err != nil {
			return err
		}
		if decision == nil {
			return apperror.NewNotFoundError("Pricing decision")
		}
		if decision.Status == enum.PricingDecisionRfpCreated {
			return apperror.NewConflictError("Pricing decision already has an RFP and can no longer be changed")
		}

		if input.Products != nil {
			decision.Products = products
		}
		if input.DeliveryTimeline != nil {
			decision.DeliveryTimeline = input.DeliveryTimeline
		}
		if input.SpecialRequirements != nil {
			decision.SpecialRequirements = input.SpecialRequirements
		}
		return repos.PricingDecisions.Update(ctx, decision)
	})
	if err != nil {
		return nil, err
	}
	return decision, nil
}

// snapshotApproved freezes an approved RFP into a new snapshot inside the
// approval transaction
func (s *PricingDecisionService) snapshotApproved(
	ctx context.Context,
	repos *repository.Repositories,
	rfp *entity.RfpRequest,
	by actor.Actor,
	now time.Time,
) (*entity.PricingDecision, error) {
	sourceID := rfp.ID
	decision := &entity.PricingDecision{
		LeadID:               rfp.LeadID,
		SalespersonID:        rfp.SalespersonID,
		SourceRfpRequestID:   &sourceID,
		CreatedBy:            by.ID,
		CompanyName:          rfp.CompanyName,
		Products:             entity.DecisionProductsFromRfp(rfp.Products),
		DeliveryTimeline:     rfp.DeliveryTimeline,
		SpecialRequirements:  rfp.SpecialRequirements,
		CalculatorTotalPrice: rfp.CalculatorTotalPrice,
		Status:               enum.PricingDecisionApproved,
	}
	if err := s.insert(ctx, repos.PricingDecisions, decision, now); err != nil {
		return nil, err
	}
	return decision, nil
}

// markRfpCreated flips a snapshot to rfp_created inside the RFP creation transaction
func (s *PricingDecisionService) markRfpCreated(
	ctx context.Context,
	repos *repository.Repositories,
	id entity.DecisionSnapshotID,
	now time.Time,
) (*entity.PricingDecision, error) {
	decision, err := repos.PricingDecisions.GetByDecisionID(ctx, id)
	if err != nil {
		return nil, err
	}
	if decision == nil {
		return nil, apperror.NewNotFoundError("Pricing decision")
	}
	if decision.RfpCreated {
		return nil, apperror.NewConflictError("An RFP was already raised from this pricing decision")
	}
	decision.RfpCreated = true
	decision.RfpCreatedAt = &now
	decision.Status = enum.PricingDecisionRfpCreated
	if err := repos.PricingDecisions.Update(ctx, decision); err != nil {
		return nil, err
	}
	return decision, nil
}

func (s *PricingDecisionService) insert(ctx context.Context, decisions repository.PricingDecisionRepository, decision *entity.PricingDecision, now time.Time) error {
	prefix := decisionIDPrefix + "-" + now.Format("200601")
	last, err := decisions.LatestIDWithPrefix(ctx, prefix)
	if err != nil {
		return err
	}
	next, err := utils.NextSequence(last, prefix, decisionSeqWidth)
	if err != nil {
		return err
	}
	decision.RfpID = entity.DecisionSnapshotID(next)
	decision.CreatedAt = now
	decision.UpdatedAt = now
	return decisions.Create(ctx, decision)
}

func validateDecisionProducts(in []entity.DecisionProduct) ([]entity.DecisionProduct, error) {
	if len(in) == 0 {
		return nil, apperror.NewFieldError("products", "at least one product is required")
	}
	out := make([]entity.DecisionProduct, 0, len(in))
	for i, p := range in {
		p.ProductSpec = strings.TrimSpace(p.ProductSpec)
		if p.ProductSpec == "" {
			return nil, apperror.NewFieldError(indexedField("products", i, "product_spec"), "product_spec is required")
		}
		if p.Quantity < 0 {
			return nil, apperror.NewFieldError(indexedField("products", i, "quantity"), "quantity must be positive")
		}
		if p.Quantity == 0 {
			p.Quantity = 1
		}
		if p.AvailabilityStatus != "" && !p.AvailabilityStatus.IsValid() && p.AvailabilityStatus != enum.AvailabilityInStock {
			return nil, apperror.NewFieldError(indexedField("products", i, "availability_status"), "availability_status is invalid")
		}
		if p.LengthUnit == "" {
			p.LengthUnit = entity.DefaultLengthUnit
		}
		out = append(out, p)
	}
	return out, nil
}

const maxTxAttempts = 3

// inTransaction runs fn in a transaction, retrying when a generated identifier
// collided with a concurrent writer
func inTransaction(ctx context.Context, uow repository.UnitOfWork, op string, fn func(repos *repository.Repositories) error) error {
	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err = uow.Transaction(ctx, fn)
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return err
		}
	}
	return apperror.NewCollaboratorError(op, err)
}
