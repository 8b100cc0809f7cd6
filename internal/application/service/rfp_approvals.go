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
)

// SubmitToAccountsInput carries the proforma invoice and payment references
type SubmitToAccountsInput struct {
	PiID      *string
	PaymentID *string
}

// DecisionInput is an accounts or senior verdict
type DecisionInput struct {
	Decision string
	Notes    *string
}

// SubmitToAccounts hands a quoted RFP to accounts
func (s *RfpService) SubmitToAccounts(ctx context.Context, by actor.Actor, id uuid.UUID, input *SubmitToAccountsInput) (*entity.RfpRequest, error) {
	if input == nil {
		input = &SubmitToAccountsInput{}
	}
	return s.transition(ctx, ActionSubmitAccounts, id, by, actor.CanSubmitToAccounts, func(repos *repository.Repositories, rfp *entity.RfpRequest, now time.Time) error {
		if err := requireTransition(rfp, enum.RfpStatusAccountsPending); err != nil {
			return err
		}
		rfp.PiID = trimmed(input.PiID)
		rfp.PaymentID = trimmed(input.PaymentID)
		rfp.AccountsApprovalStatus = ptr(enum.AccountsApprovalPending)
		rfp.Status = enum.RfpStatusAccountsPending
		if err := repos.Rfps.Update(ctx, rfp); err != nil {
			return err
		}

		metadata := map[string]interface{}{}
		if rfp.PiID != nil {
			metadata["pi_id"] = *rfp.PiID
		}
		if rfp.PaymentID != nil {
			metadata["payment_id"] = *rfp.PaymentID
		}
		return logAction(ctx, repos.AuditLogs, now, rfp.ID, AuditAccountsSubmitted, by, nil, metadata)
	})
}

// DecideAccounts records the accounts verdict. Approval dispatches the work
// order; a credit case escalates to senior management.
func (s *RfpService) DecideAccounts(ctx context.Context, by actor.Actor, id uuid.UUID, input *DecisionInput) (*entity.RfpRequest, error) {
	if !by.Can(actor.CanDecideAccounts) {
		return s.refuse(ActionDecideAccounts, id, by, apperror.NewPermissionError("You are not allowed to "+describeCapability(actor.CanDecideAccounts)))
	}
	if input == nil {
		input = &DecisionInput{}
	}
	decision := enum.AccountsApprovalStatus(strings.TrimSpace(input.Decision))
	if !decision.IsDecision() {
		return s.refuse(ActionDecideAccounts, id, by, apperror.NewFieldError("decision", "decision must be approved or credit_case"))
	}

	return s.transition(ctx, ActionDecideAccounts, id, by, actor.CanDecideAccounts, func(repos *repository.Repositories, rfp *entity.RfpRequest, now time.Time) error {
		if rfp.Status != enum.RfpStatusAccountsPending {
			return apperror.NewConflictError("RFP is not awaiting an accounts decision")
		}

		rfp.AccountsApprovalStatus = ptr(decision)
		rfp.AccountsApprovedBy = ptr(by.ID)
		rfp.AccountsApprovedAt = ptr(now)
		rfp.AccountsNotes = input.Notes

		metadata := map[string]interface{}{"decision": string(decision)}
		switch decision {
		case enum.AccountsApprovalApproved:
			rfp.Status = enum.RfpStatusAccountsApproved
			rfp.SeniorApprovalStatus = ptr(enum.SeniorApprovalNotRequired)
			if err := s.dispatch(ctx, repos, rfp, by, metadata); err != nil {
				return err
			}
		case enum.AccountsApprovalCreditCase:
			rfp.Status = enum.RfpStatusCreditCase
			rfp.SeniorApprovalStatus = ptr(enum.SeniorApprovalPending)
		}

		if err := repos.Rfps.Update(ctx, rfp); err != nil {
			return err
		}
		return logAction(ctx, repos.AuditLogs, now, rfp.ID, AuditAccountsDecision, by, input.Notes, metadata)
	})
}

// DecideSenior records senior management's verdict on a credit case
func (s *RfpService) DecideSenior(ctx context.Context, by actor.Actor, id uuid.UUID, input *DecisionInput) (*entity.RfpRequest, error) {
	if !by.Can(actor.CanDecideSenior) {
		return s.refuse(ActionDecideSenior, id, by, apperror.NewPermissionError("You are not allowed to "+describeCapability(actor.CanDecideSenior)))
	}
	if input == nil {
		input = &DecisionInput{}
	}
	decision := enum.SeniorApprovalStatus(strings.TrimSpace(input.Decision))
	if !decision.IsDecision() {
		return s.refuse(ActionDecideSenior, id, by, apperror.NewFieldError("decision", "decision must be approved or rejected"))
	}

	return s.transition(ctx, ActionDecideSenior, id, by, actor.CanDecideSenior, func(repos *repository.Repositories, rfp *entity.RfpRequest, now time.Time) error {
		if rfp.Status != enum.RfpStatusCreditCase {
			return apperror.NewConflictError("RFP is not awaiting a senior decision")
		}

		rfp.SeniorApprovalStatus = ptr(decision)
		rfp.SeniorApprovedBy = ptr(by.ID)
		rfp.SeniorApprovedAt = ptr(now)
		rfp.SeniorNotes = input.Notes

		metadata := map[string]interface{}{"decision": string(decision)}
		switch decision {
		case enum.SeniorApprovalApproved:
			rfp.Status = enum.RfpStatusSeniorApproved
			if err := s.dispatch(ctx, repos, rfp, by, metadata); err != nil {
				return err
			}
		case enum.SeniorApprovalRejected:
			rfp.Status = enum.RfpStatusSeniorRejected
		}

		if err := repos.Rfps.Update(ctx, rfp); err != nil {
			return err
		}
		return logAction(ctx, repos.AuditLogs, now, rfp.ID, AuditSeniorDecision, by, input.Notes, metadata)
	})
}

// dispatch ensures the work order for the RFP's quotation, links it and moves
// the RFP to sent_to_operations
func (s *RfpService) dispatch(ctx context.Context, repos *repository.Repositories, rfp *entity.RfpRequest, by actor.Actor, metadata map[string]interface{}) error {
	if rfp.QuotationID == nil {
		return apperror.NewConflictError("RFP has no quotation to dispatch")
	}
	quotation, err := repos.Quotations.GetByID(ctx, *rfp.QuotationID)
	if err != nil {
		return apperror.NewCollaboratorError("load quotation", err)
	}
	if quotation == nil {
		return apperror.NewNotFoundError("Quotation")
	}

	workOrder, created, err := s.workOrders.Ensure(ctx, repos, quotation, by)
	if err != nil {
		return err
	}
	if !rfp.Status.CanTransitionTo(enum.RfpStatusSentToOperations) {
		return apperror.NewConflictError("RFP in status " + rfp.Status.String() + " cannot be sent to operations")
	}

	rfp.WorkOrderID = ptr(workOrder.ID)
	rfp.WorkOrderNumber = ptr(workOrder.WorkOrderNumber)
	rfp.Status = enum.RfpStatusSentToOperations

	metadata["work_order_id"] = workOrder.ID.String()
	metadata["work_order_number"] = workOrder.WorkOrderNumber
	metadata["work_order_created"] = created
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
