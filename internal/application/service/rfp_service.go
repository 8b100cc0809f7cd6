package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/actor"
	"github.com/sangkips/rfp-api/internal/domain/entity"
	"github.com/sangkips/rfp-api/internal/domain/enum"
	"github.com/sangkips/rfp-api/internal/domain/repository"
	"github.com/sangkips/rfp-api/pkg/apperror"
	"github.com/sangkips/rfp-api/pkg/pagination"
	"github.com/sangkips/rfp-api/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	rfpIDPrefix       = "RFP"
	rfpSeqWidth       = 3
	salespersonKeyLen = 6
	genericKey        = "GEN"
)

// Transition names, used for metrics and logs
const (
	ActionCreate            = "create"
	ActionApprove           = "approve"
	ActionReject            = "reject"
	ActionSetProductPrice   = "set_product_price"
	ActionClearProductPrice = "clear_product_price"
	ActionAddPrice          = "add_price"
	ActionQuote             = "generate_quotation"
	ActionSubmitAccounts    = "submit_to_accounts"
	ActionDecideAccounts    = "decide_accounts"
	ActionDecideSenior      = "decide_senior"
)

// RfpService drives the RFP workflow
type RfpService struct {
	uow        repository.UnitOfWork
	decisions  *PricingDecisionService
	quotations *QuotationGenerator
	workOrders *WorkOrderEnsurer
	clock      Clock
	observer   TransitionObserver
	log        *zap.Logger
}

// NewRfpService creates a new RFP service
func NewRfpService(
	uow repository.UnitOfWork,
	decisions *PricingDecisionService,
	quotations *QuotationGenerator,
	workOrders *WorkOrderEnsurer,
	clock Clock,
	observer TransitionObserver,
	log *zap.Logger,
) *RfpService {
	if clock == nil {
		clock = SystemClock()
	}
	if observer == nil {
		observer = noopObserver{}
	}
	return &RfpService{
		uow:        uow,
		decisions:  decisions,
		quotations: quotations,
		workOrders: workOrders,
		clock:      clock,
		observer:   observer,
		log:        log.Named("rfp.service"),
	}
}

// RfpDetail is an RFP with its price history and audit trail
type RfpDetail struct {
	Rfp            *entity.RfpRequest     `json:"rfp"`
	PriceRevisions []entity.PriceRevision `json:"price_revisions"`
	AuditLog       []entity.AuditLogEntry `json:"audit_log"`
}

// ListRfpsInput represents the input for listing RFPs
type ListRfpsInput struct {
	Pagination     *pagination.PaginationParams
	Status         *enum.RfpStatus
	Search         string
	SalespersonID  *uuid.UUID
	CompanyName    string
	DepartmentType string
}

// Create validates the intake and raises a new RFP in pending_dh
func (s *RfpService) Create(ctx context.Context, by actor.Actor, input *CreateRfpInput) (rfp *entity.RfpRequest, err error) {
	started := time.Now()
	defer func() { s.finish(ActionCreate, uuid.Nil, by, started, err) }()

	products, err := ValidateIntake(by, input)
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
	if salesperson == nil && by.Kind == actor.KindHuman && by.Role == actor.RoleDepartmentUser {
		salesperson = ptr(by.ID)
	}
	if salesperson == nil {
		salesperson = lead.SalespersonID
	}

	err = s.uow.Transaction(ctx, func(repos *repository.Repositories) error {
		now := s.clock.Now()
		rfp = &entity.RfpRequest{
			LeadID:              lead.ID,
			SalespersonID:       salesperson,
			CreatedBy:           by.ID,
			DepartmentType:      string(by.Department),
			CompanyName:         lead.CompanyName,
			Status:              enum.RfpStatusPendingDH,
			DeliveryTimeline:    input.DeliveryTimeline,
			SpecialRequirements: input.SpecialRequirements,
			Products:            products,
			CreatedAt:           now,
			UpdatedAt:           now,
		}

		metadata := map[string]interface{}{
			"lead_id":       lead.ID,
			"product_count": len(products),
		}
		if input.PricingDecisionRfpID != nil {
			decision, err := s.decisions.markRfpCreated(ctx, repos, *input.PricingDecisionRfpID, now)
			if err != nil {
				return err
			}
			rfp.MasterRfpID = ptr(decision.RfpID)
			rfp.PricingDecisionRfpID = ptr(decision.RfpID)
			metadata["pricing_decision_rfp_id"] = decision.RfpID.String()
		}

		if err := repos.Rfps.Create(ctx, rfp); err != nil {
			return err
		}
		return logAction(ctx, repos.AuditLogs, now, rfp.ID, AuditRfpCreated, by, nil, metadata)
	})
	if err != nil {
		return nil, err
	}
	return rfp, nil
}

// ApproveInput carries the head's optional calculator total
type ApproveInput struct {
	CalculatorTotalPrice *decimal.Decimal
	CalculatorDetail     *string
}

// Approve assigns the workflow id and freezes a pricing decision snapshot
func (s *RfpService) Approve(ctx context.Context, by actor.Actor, id uuid.UUID, input *ApproveInput) (*entity.RfpRequest, error) {
	if !by.Can(actor.CanApproveRfp) {
		return s.refuse(ActionApprove, id, by, apperror.NewPermissionError("You are not allowed to "+describeCapability(actor.CanApproveRfp)))
	}
	if input == nil {
		input = &ApproveInput{}
	}
	if input.CalculatorTotalPrice != nil && input.CalculatorTotalPrice.IsNegative() {
		return s.refuse(ActionApprove, id, by, apperror.NewFieldError("calculator_total_price", "calculator_total_price must not be negative"))
	}

	return s.transition(ctx, ActionApprove, id, by, actor.CanApproveRfp, func(repos *repository.Repositories, rfp *entity.RfpRequest, now time.Time) error {
		if err := requireTransition(rfp, enum.RfpStatusApproved); err != nil {
			return err
		}
		if len(rfp.Products) == 0 {
			return apperror.NewFieldError("products", "At least one product is required to approve an RFP")
		}

		rfpID, err := s.nextRfpID(ctx, repos.Rfps, rfp.SalespersonID, now)
		if err != nil {
			return err
		}
		rfp.RfpID = &rfpID
		if input.CalculatorTotalPrice != nil {
			rfp.CalculatorTotalPrice = decimal.NewNullDecimal(*input.CalculatorTotalPrice)
		}
		if input.CalculatorDetail != nil {
			rfp.CalculatorDetail = input.CalculatorDetail
		}

		decision, err := s.decisions.snapshotApproved(ctx, repos, rfp, by, now)
		if err != nil {
			return collaboratorFailure("create pricing decision", err)
		}
		rfp.PricingDecisionRfpID = ptr(decision.RfpID)

		rfp.Status = enum.RfpStatusApproved
		rfp.ApprovedBy = ptr(by.ID)
		rfp.ApprovedAt = ptr(now)
		if err := repos.Rfps.Update(ctx, rfp); err != nil {
			return err
		}

		metadata := map[string]interface{}{
			"rfp_id":                  rfpID.String(),
			"product_count":           len(rfp.Products),
			"pricing_decision_rfp_id": decision.RfpID.String(),
		}
		if rfp.CalculatorTotalPrice.Valid {
			metadata["calculator_total_price"] = rfp.CalculatorTotalPrice.Decimal.String()
		}
		return logAction(ctx, repos.AuditLogs, now, rfp.ID, AuditRfpApproved, by, nil, metadata)
	})
}

// Reject closes the RFP; it cannot be reopened
func (s *RfpService) Reject(ctx context.Context, by actor.Actor, id uuid.UUID, reason *string) (*entity.RfpRequest, error) {
	return s.transition(ctx, ActionReject, id, by, actor.CanApproveRfp, func(repos *repository.Repositories, rfp *entity.RfpRequest, now time.Time) error {
		if err := requireTransition(rfp, enum.RfpStatusRejected); err != nil {
			return err
		}
		rfp.Status = enum.RfpStatusRejected
		rfp.RejectedBy = ptr(by.ID)
		rfp.RejectedAt = ptr(now)
		rfp.RejectionReason = reason
		if err := repos.Rfps.Update(ctx, rfp); err != nil {
			return err
		}
		return logAction(ctx, repos.AuditLogs, now, rfp.ID, AuditRfpRejected, by, reason, nil)
	})
}

// List returns RFPs newest first
func (s *RfpService) List(ctx context.Context, by actor.Actor, input *ListRfpsInput) (*pagination.PaginatedResult[entity.RfpRequest], error) {
	if !by.Can(actor.CanViewRfp) {
		return nil, apperror.NewPermissionError("You are not allowed to view RFPs")
	}
	if input == nil {
		input = &ListRfpsInput{}
	}
	if input.Pagination == nil {
		input.Pagination = pagination.DefaultPagination()
	}
	input.Pagination.Validate()
	if input.Status != nil && !input.Status.IsValid() {
		return nil, apperror.NewFieldError("status", "status is invalid")
	}

	rfps, total, err := s.uow.Repositories().Rfps.List(ctx, &repository.RfpFilterParams{
		Pagination:     input.Pagination,
		Status:         input.Status,
		Search:         input.Search,
		SalespersonID:  input.SalespersonID,
		CompanyName:    input.CompanyName,
		DepartmentType: input.DepartmentType,
	})
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(rfps, pag), nil
}

// Get returns the RFP with its price revisions and audit log, both oldest first
func (s *RfpService) Get(ctx context.Context, by actor.Actor, id uuid.UUID) (*RfpDetail, error) {
	if !by.Can(actor.CanViewRfp) {
		return nil, apperror.NewPermissionError("You are not allowed to view RFPs")
	}
	repos := s.uow.Repositories()
	rfp, err := repos.Rfps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rfp == nil {
		return nil, apperror.NewNotFoundError("RFP")
	}
	revisions, err := repos.PriceRevisions.ListByRfp(ctx, id)
	if err != nil {
		return nil, err
	}
	entries, err := repos.AuditLogs.ListByRfp(ctx, id)
	if err != nil {
		return nil, err
	}
	return &RfpDetail{Rfp: rfp, PriceRevisions: revisions, AuditLog: entries}, nil
}

// ListPriceRevisions returns the RFP's price history oldest first
func (s *RfpService) ListPriceRevisions(ctx context.Context, by actor.Actor, id uuid.UUID) ([]entity.PriceRevision, error) {
	detail, err := s.Get(ctx, by, id)
	if err != nil {
		return nil, err
	}
	return detail.PriceRevisions, nil
}

type transitionFunc func(repos *repository.Repositories, rfp *entity.RfpRequest, now time.Time) error

// transition checks the capability, then runs fn against the RFP locked for
// update. Identifier collisions retry the whole transaction.
func (s *RfpService) transition(
	ctx context.Context,
	action string,
	id uuid.UUID,
	by actor.Actor,
	capability actor.Capability,
	fn transitionFunc,
) (rfp *entity.RfpRequest, err error) {
	started := time.Now()
	defer func() { s.finish(action, id, by, started, err) }()

	if !by.Can(capability) {
		return nil, apperror.NewPermissionError("You are not allowed to " + describeCapability(capability))
	}

	err = inTransaction(ctx, s.uow, action, func(repos *repository.Repositories) error {
		locked, err := repos.Rfps.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if locked == nil {
			return apperror.NewNotFoundError("RFP")
		}
		now := s.clock.Now()
		if err := fn(repos, locked, now); err != nil {
			return err
		}
		rfp = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rfp, nil
}

// refuse reports a request rejected before any transaction was opened
func (s *RfpService) refuse(action string, id uuid.UUID, by actor.Actor, err error) (*entity.RfpRequest, error) {
	s.finish(action, id, by, time.Now(), err)
	return nil, err
}

func (s *RfpService) finish(action string, id uuid.UUID, by actor.Actor, started time.Time, err error) {
	s.observer.ObserveTransition(action, started, err)

	fields := []zap.Field{
		zap.String("action", action),
		zap.String("actor", by.ID.String()),
		zap.String("actor_role", by.RoleLabel()),
	}
	if id != uuid.Nil {
		fields = append(fields, zap.String("rfp", id.String()))
	}

	switch {
	case err == nil:
		s.log.Info("rfp transition", fields...)
	case apperror.IsKind(err, apperror.KindCollaborator):
		s.log.Error("rfp transition failed", append(fields, zap.Error(err))...)
	case apperror.IsAppError(err) && apperror.GetAppError(err).Kind != apperror.KindInternal:
		// expected outcomes such as double submission
		s.log.Debug("rfp transition refused", append(fields, zap.Error(err))...)
	default:
		s.log.Error("rfp transition failed", append(fields, zap.Error(err))...)
	}
}

func (s *RfpService) nextRfpID(ctx context.Context, rfps repository.RfpRepository, salesperson *uuid.UUID, now time.Time) (entity.WorkflowRfpID, error) {
	key := genericKey
	if salesperson != nil && *salesperson != uuid.Nil {
		key = utils.KeyFragment(salesperson.String(), salespersonKeyLen, genericKey)
	}
	prefix := rfpIDPrefix + "-" + key + "-" + now.Format("200601")

	last, err := rfps.LatestRfpIDWithPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	next, err := utils.NextSequence(last, prefix, rfpSeqWidth)
	if err != nil {
		return "", err
	}
	return entity.WorkflowRfpID(next), nil
}

func requireTransition(rfp *entity.RfpRequest, to enum.RfpStatus) error {
	if rfp.Status.CanTransitionTo(to) {
		return nil
	}
	return apperror.NewConflictError("RFP in status " + rfp.Status.String() + " cannot move to " + to.String())
}

// collaboratorFailure wraps a downstream failure unless it is an identifier
// collision, which the transaction retry handles, or already classified
func collaboratorFailure(op string, err error) error {
	if errors.Is(err, repository.ErrDuplicateKey) || apperror.IsAppError(err) {
		return err
	}
	return apperror.NewCollaboratorError(op, err)
}

func describeCapability(c actor.Capability) string {
	switch c {
	case actor.CanCreateRfp:
		return "create RFPs"
	case actor.CanApproveRfp:
		return "approve RFPs"
	case actor.CanPriceRfp:
		return "price RFPs"
	case actor.CanQuoteRfp:
		return "generate quotations"
	case actor.CanSubmitToAccounts:
		return "submit RFPs to accounts"
	case actor.CanDecideAccounts:
		return "record accounts decisions"
	case actor.CanDecideSenior:
		return "record senior decisions"
	case actor.CanManagePricingDecision:
		return "manage pricing decisions"
	default:
		return "view RFPs"
	}
}
