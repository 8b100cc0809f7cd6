package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/actor"
	"github.com/sangkips/rfp-api/internal/domain/entity"
	"github.com/sangkips/rfp-api/internal/domain/enum"
	"github.com/sangkips/rfp-api/pkg/apperror"
	"github.com/sangkips/rfp-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceInput(raw, processing, margin int64) *AddPriceInput {
	return &AddPriceInput{
		RawMaterialPrice: decimal.NewFromInt(raw),
		ProcessingCost:   decimal.NewFromInt(processing),
		Margin:           decimal.NewFromInt(margin),
		ValidityDate:     time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestRfpLifecycleEndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 42, nil)

	rfp := f.createRfp(t, 42)
	assert.Equal(t, enum.RfpStatusPendingDH, rfp.Status)
	assert.Nil(t, rfp.RfpID)
	require.Len(t, rfp.Products, 1)
	assert.Equal(t, 500, rfp.Products[0].Quantity)
	assert.Equal(t, entity.DefaultLengthUnit, rfp.Products[0].LengthUnit)

	approved, err := f.rfps.Approve(ctx, f.salesHead, rfp.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, enum.RfpStatusApproved, approved.Status)
	require.NotNil(t, approved.RfpID)
	key := utils.KeyFragment(f.salesUser.ID.String(), salespersonKeyLen, genericKey)
	assert.Equal(t, entity.WorkflowRfpID("RFP-"+key+"-202405-001"), *approved.RfpID)

	snapshot, err := f.decisions.GetLatestByLead(ctx, f.salesUser, 42)
	require.NoError(t, err)
	assert.Equal(t, enum.PricingDecisionApproved, snapshot.Status)
	assert.Equal(t, entity.DecisionSnapshotID("RFP-202405-0001"), snapshot.RfpID)
	require.NotNil(t, approved.PricingDecisionRfpID)
	assert.Equal(t, snapshot.RfpID, *approved.PricingDecisionRfpID)

	priced, err := f.rfps.AddPriceRevision(ctx, f.accounts, rfp.ID, priceInput(100, 20, 10))
	require.NoError(t, err)
	assert.Equal(t, enum.RfpStatusPricingReady, priced.Rfp.Status)
	assert.True(t, decimal.NewFromInt(130).Equal(priced.Revision.CalculatedPrice))
	assert.True(t, decimal.NewFromInt(130).Equal(priced.Rfp.CalculatedPrice.Decimal))

	quoted, err := f.rfps.GenerateQuotation(ctx, f.salesUser, rfp.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.RfpStatusQuotationCreated, quoted.Rfp.Status)
	assert.True(t, decimal.NewFromInt(76700).Equal(quoted.Quotation.TotalAmount), quoted.Quotation.TotalAmount.String())
	assert.True(t, decimal.NewFromInt(11700).Equal(quoted.Quotation.TaxAmount))
	assert.Equal(t, "QT-000001", quoted.Quotation.Reference)
	assert.Equal(t, "Acme Power Ltd", quoted.Quotation.CustomerName)

	pi := "PI-1"
	submitted, err := f.rfps.SubmitToAccounts(ctx, f.salesUser, rfp.ID, &SubmitToAccountsInput{PiID: &pi})
	require.NoError(t, err)
	assert.Equal(t, enum.RfpStatusAccountsPending, submitted.Status)
	require.NotNil(t, submitted.PiID)
	assert.Equal(t, "PI-1", *submitted.PiID)

	dispatched, err := f.rfps.DecideAccounts(ctx, f.accounts, rfp.ID, &DecisionInput{Decision: "approved"})
	require.NoError(t, err)
	assert.Equal(t, enum.RfpStatusSentToOperations, dispatched.Status)
	require.NotNil(t, dispatched.WorkOrderNumber)
	assert.Equal(t, "WO-000001", *dispatched.WorkOrderNumber)

	count, err := f.uow.Repositories().WorkOrders.CountByQuotationNumber(ctx, quoted.Quotation.Reference)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	entries, err := f.audits.ListByRfp(ctx, f.salesUser, rfp.ID)
	require.NoError(t, err)
	actions := make([]string, len(entries))
	for i, e := range entries {
		actions[i] = e.Action
	}
	assert.Equal(t, []string{
		string(AuditRfpCreated),
		string(AuditRfpApproved),
		string(AuditPriceUpdated),
		string(AuditQuotationCreated),
		string(AuditAccountsSubmitted),
		string(AuditAccountsDecision),
	}, actions)
	assert.Equal(t, "WO-000001", entries[5].Metadata["work_order_number"])
	assert.Equal(t, "approved", entries[5].Metadata["decision"])
}

func TestApproveNumbersSequentiallyPerSalesperson(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 7, nil)

	key := utils.KeyFragment(f.salesUser.ID.String(), salespersonKeyLen, genericKey)
	for i, want := range []string{"001", "002", "003"} {
		rfp := f.createRfp(t, 7)
		approved, err := f.rfps.Approve(ctx, f.salesHead, rfp.ID, nil)
		require.NoError(t, err, "approval %d", i)
		assert.Equal(t, entity.WorkflowRfpID("RFP-"+key+"-202405-"+want), *approved.RfpID)
	}

	f.clock.now = f.clock.now.AddDate(0, 1, 0)
	rfp := f.createRfp(t, 7)
	approved, err := f.rfps.Approve(ctx, f.salesHead, rfp.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.WorkflowRfpID("RFP-"+key+"-202406-001"), *approved.RfpID)
}

func TestApproveUsesGenericKeyWithoutSalesperson(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 8, nil)

	rfp := &entity.RfpRequest{
		LeadID:      8,
		CreatedBy:   f.salesUser.ID,
		CompanyName: "Acme Power Ltd",
		Status:      enum.RfpStatusPendingDH,
		Products: []entity.RfpProduct{{
			ProductSpec:        "LT cable",
			Quantity:           1,
			AvailabilityStatus: enum.AvailabilityCustomPricingNeeded,
		}},
	}
	require.NoError(t, f.uow.Repositories().Rfps.Create(ctx, rfp))

	approved, err := f.rfps.Approve(ctx, f.salesHead, rfp.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.WorkflowRfpID("RFP-GEN-202405-001"), *approved.RfpID)
}

func TestApproveTwiceIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 9, nil)
	rfp := f.createRfp(t, 9)

	_, err := f.rfps.Approve(ctx, f.salesHead, rfp.ID, nil)
	require.NoError(t, err)
	_, err = f.rfps.Approve(ctx, f.salesHead, rfp.ID, nil)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict), "got %v", err)
}

func TestApproveWithoutProductsFailsValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 10, nil)

	rfp := &entity.RfpRequest{
		LeadID:      10,
		CreatedBy:   f.salesUser.ID,
		CompanyName: "Acme Power Ltd",
		Status:      enum.RfpStatusPendingDH,
	}
	require.NoError(t, f.uow.Repositories().Rfps.Create(ctx, rfp))

	_, err := f.rfps.Approve(ctx, f.salesHead, rfp.ID, nil)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t, "products", appErr.Field)

	stored, err := f.uow.Repositories().Rfps.GetByID(ctx, rfp.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.RfpStatusPendingDH, stored.Status)
	assert.Nil(t, stored.RfpID)
}

func TestPermissionIsCheckedBeforeState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// the RFP does not exist, yet the caller is refused for lack of permission
	_, err := f.rfps.Approve(ctx, f.salesUser, uuid.New(), nil)
	assert.True(t, apperror.IsKind(err, apperror.KindPermission))

	negative := decimal.NewFromInt(-1)
	_, err = f.rfps.Approve(ctx, f.production, uuid.New(), &ApproveInput{CalculatorTotalPrice: &negative})
	assert.True(t, apperror.IsKind(err, apperror.KindPermission))

	_, err = f.rfps.AddPriceRevision(ctx, f.salesHead, uuid.New(), priceInput(1, 1, 1))
	assert.True(t, apperror.IsKind(err, apperror.KindPermission))

	_, err = f.rfps.DecideSenior(ctx, f.accounts, uuid.New(), &DecisionInput{Decision: "approved"})
	assert.True(t, apperror.IsKind(err, apperror.KindPermission))

	_, err = f.rfps.Approve(ctx, f.salesHead, uuid.New(), nil)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestRejectIsTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 11, nil)
	rfp := f.createRfp(t, 11)

	reason := "Out of scope"
	rejected, err := f.rfps.Reject(ctx, f.salesHead, rfp.ID, &reason)
	require.NoError(t, err)
	assert.Equal(t, enum.RfpStatusRejected, rejected.Status)
	assert.Equal(t, &reason, rejected.RejectionReason)

	_, err = f.rfps.Approve(ctx, f.salesHead, rfp.ID, nil)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	_, err = f.rfps.AddPriceRevision(ctx, f.accounts, rfp.ID, priceInput(1, 1, 1))
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	_, err = f.rfps.Reject(ctx, f.salesHead, rfp.ID, nil)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestAddPriceBeforeApprovalIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 12, nil)
	rfp := f.createRfp(t, 12)

	_, err := f.rfps.AddPriceRevision(ctx, f.accounts, rfp.ID, priceInput(100, 20, 10))
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	revisions, err := f.uow.Repositories().PriceRevisions.ListByRfp(ctx, rfp.ID)
	require.NoError(t, err)
	assert.Empty(t, revisions)
}

func TestRepricingKeepsHistoryAndMirrorsLatest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 13, nil)
	rfp := f.pricedRfp(t, 13)

	f.clock.now = f.clock.now.Add(time.Hour)
	second, err := f.rfps.AddPriceRevision(ctx, f.accounts, rfp.ID, priceInput(110, 25, 15))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150).Equal(second.Rfp.CalculatedPrice.Decimal))

	revisions, err := f.rfps.ListPriceRevisions(ctx, f.accounts, rfp.ID)
	require.NoError(t, err)
	require.Len(t, revisions, 2)
	assert.True(t, decimal.NewFromInt(130).Equal(revisions[0].CalculatedPrice))
	assert.True(t, decimal.NewFromInt(150).Equal(revisions[1].CalculatedPrice))

	latest, err := f.uow.Repositories().PriceRevisions.Latest(ctx, rfp.ID)
	require.NoError(t, err)
	assert.Equal(t, revisions[1].ID, latest.ID)
}

func TestNegativePriceComponentIsFieldError(t *testing.T) {
	f := newFixture(t)
	_, err := f.rfps.AddPriceRevision(context.Background(), f.accounts, uuid.New(), priceInput(-1, 0, 0))
	appErr := apperror.GetAppError(err)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t, "raw_material_price", appErr.Field)
}

func TestNegativeMarginIsFieldError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 77, nil)
	rfp := f.pricedRfp(t, 77)

	_, err := f.rfps.AddPriceRevision(ctx, f.accounts, rfp.ID, priceInput(10, 5, -100))
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t, "margin", appErr.Field)

	revisions, err := f.rfps.ListPriceRevisions(ctx, f.accounts, rfp.ID)
	require.NoError(t, err)
	assert.Len(t, revisions, 1)
	assert.True(t, revisions[0].CalculatedPrice.IsPositive())
}

func TestGenerateQuotationTwiceIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 14, nil)
	rfp := f.pricedRfp(t, 14)

	first, err := f.rfps.GenerateQuotation(ctx, f.salesUser, rfp.ID)
	require.NoError(t, err)

	_, err = f.rfps.GenerateQuotation(ctx, f.salesUser, rfp.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	count, err := f.uow.Repositories().Quotations.CountByRfpRequestID(ctx, rfp.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	stored, err := f.uow.Repositories().Rfps.GetByID(ctx, rfp.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Quotation.ID, *stored.QuotationID)
}

func TestGenerateQuotationBeforePricingIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 15, nil)
	rfp := f.createRfp(t, 15)
	_, err := f.rfps.Approve(ctx, f.salesHead, rfp.ID, nil)
	require.NoError(t, err)

	_, err = f.rfps.GenerateQuotation(ctx, f.salesUser, rfp.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestRepricingAfterQuotationIsRefused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 16, nil)
	rfp := f.pricedRfp(t, 16)
	_, err := f.rfps.GenerateQuotation(ctx, f.salesUser, rfp.ID)
	require.NoError(t, err)

	_, err = f.rfps.AddPriceRevision(ctx, f.accounts, rfp.ID, priceInput(1, 1, 1))
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestCreditCaseSeniorApprovalDispatches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 17, nil)
	rfp := f.quotedRfp(t, 17)

	notes := "Customer on 60 day terms"
	credit, err := f.rfps.DecideAccounts(ctx, f.accounts, rfp.ID, &DecisionInput{Decision: "credit_case", Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, enum.RfpStatusCreditCase, credit.Status)
	assert.Equal(t, enum.SeniorApprovalPending, *credit.SeniorApprovalStatus)
	assert.Nil(t, credit.WorkOrderID)

	dispatched, err := f.rfps.DecideSenior(ctx, f.senior, rfp.ID, &DecisionInput{Decision: "approved"})
	require.NoError(t, err)
	assert.Equal(t, enum.RfpStatusSentToOperations, dispatched.Status)
	assert.Equal(t, enum.SeniorApprovalApproved, *dispatched.SeniorApprovalStatus)
	require.NotNil(t, dispatched.WorkOrderID)

	workOrder, err := f.documents.GetWorkOrder(ctx, f.senior, *dispatched.WorkOrderID)
	require.NoError(t, err)
	assert.Equal(t, enum.WorkOrderStatusSentToOperations, workOrder.Status)
	assert.Equal(t, *dispatched.QuotationNumber, workOrder.QuotationNumber)
	require.Len(t, workOrder.Items, 1)
	assert.Equal(t, 500, workOrder.Items[0].Quantity)
}

func TestSeniorRejectionIsTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 18, nil)
	rfp := f.quotedRfp(t, 18)

	_, err := f.rfps.DecideAccounts(ctx, f.accounts, rfp.ID, &DecisionInput{Decision: "credit_case"})
	require.NoError(t, err)
	rejected, err := f.rfps.DecideSenior(ctx, f.senior, rfp.ID, &DecisionInput{Decision: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, enum.RfpStatusSeniorRejected, rejected.Status)
	assert.Nil(t, rejected.WorkOrderID)

	_, err = f.rfps.DecideSenior(ctx, f.senior, rfp.ID, &DecisionInput{Decision: "approved"})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestDecisionValuesAreValidated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.rfps.DecideAccounts(ctx, f.accounts, uuid.New(), &DecisionInput{Decision: "rejected"})
	assert.Equal(t, "decision", apperror.GetAppError(err).Field)

	_, err = f.rfps.DecideSenior(ctx, f.senior, uuid.New(), &DecisionInput{Decision: "credit_case"})
	assert.Equal(t, "decision", apperror.GetAppError(err).Field)
}

func TestSecondAccountsDecisionIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 19, nil)
	rfp := f.quotedRfp(t, 19)

	_, err := f.rfps.DecideAccounts(ctx, f.accounts, rfp.ID, &DecisionInput{Decision: "approved"})
	require.NoError(t, err)
	_, err = f.rfps.DecideAccounts(ctx, f.accounts, rfp.ID, &DecisionInput{Decision: "approved"})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	stored, err := f.uow.Repositories().Rfps.GetByID(ctx, rfp.ID)
	require.NoError(t, err)
	count, err := f.uow.Repositories().WorkOrders.CountByQuotationNumber(ctx, *stored.QuotationNumber)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestProductCalculatorPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 20, nil)
	rfp := f.createRfp(t, 20)

	detail := "copper 3x16 @ 98"
	updated, err := f.rfps.SetProductCalculatorPrice(ctx, f.salesHead, rfp.ID, &ProductPriceInput{
		ProductSpec:      "  3-core 16mm XLPE cable ",
		TotalPrice:       decimal.NewFromInt(49000),
		CalculatorDetail: &detail,
	})
	require.NoError(t, err)
	require.True(t, updated.Products[0].CalculatorPrice.Valid)
	assert.True(t, decimal.NewFromInt(49000).Equal(updated.Products[0].CalculatorPrice.Decimal))
	assert.Equal(t, enum.RfpStatusPendingDH, updated.Status)

	_, err = f.rfps.SetProductCalculatorPrice(ctx, f.salesHead, rfp.ID, &ProductPriceInput{ProductSpec: "unknown", TotalPrice: decimal.NewFromInt(1)})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	cleared, err := f.rfps.ClearProductCalculatorPrice(ctx, f.salesHead, rfp.ID, "3-core 16mm XLPE cable")
	require.NoError(t, err)
	assert.False(t, cleared.Products[0].CalculatorPrice.Valid)
	assert.Nil(t, cleared.Products[0].CalculatorDetail)
}

func TestCreateFromPricingDecisionMarksSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 21, nil)

	decision, err := f.decisions.Create(ctx, f.salesUser, &CreatePricingDecisionInput{
		LeadID:   21,
		Products: []entity.DecisionProduct{{ProductSpec: "HT cable", Quantity: 10}},
	})
	require.NoError(t, err)

	id := decision.RfpID
	rfp, err := f.rfps.Create(ctx, f.salesUser, &CreateRfpInput{LeadID: 21, Intake: cableIntake(), PricingDecisionRfpID: &id})
	require.NoError(t, err)
	require.NotNil(t, rfp.MasterRfpID)
	assert.Equal(t, id, *rfp.MasterRfpID)

	marked, err := f.decisions.GetByDecisionID(ctx, f.salesUser, id)
	require.NoError(t, err)
	assert.True(t, marked.RfpCreated)
	assert.Equal(t, enum.PricingDecisionRfpCreated, marked.Status)

	_, err = f.rfps.Create(ctx, f.salesUser, &CreateRfpInput{LeadID: 21, Intake: cableIntake(), PricingDecisionRfpID: &id})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestCreateUnknownLeadIsNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.rfps.Create(context.Background(), f.salesUser, &CreateRfpInput{LeadID: 999, Intake: cableIntake()})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestListFiltersAndSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 22, nil)

	first := f.createRfp(t, 22)
	f.clock.now = f.clock.now.Add(time.Minute)
	second, err := f.rfps.Create(ctx, f.salesUser, &CreateRfpInput{LeadID: 22, Intake: IntakeLegacy{
		ProductSpec:        "Aluminium busbar",
		AvailabilityStatus: "custom_product_pricing_needed",
	}})
	require.NoError(t, err)
	_, err = f.rfps.Approve(ctx, f.salesHead, first.ID, nil)
	require.NoError(t, err)

	status := enum.RfpStatusApproved
	result, err := f.rfps.List(ctx, f.accounts, &ListRfpsInput{Status: &status})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, first.ID, result.Items[0].ID)

	result, err = f.rfps.List(ctx, f.accounts, &ListRfpsInput{Search: "busbar"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, second.ID, result.Items[0].ID)

	result, err = f.rfps.List(ctx, f.accounts, &ListRfpsInput{CompanyName: "acme"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Pagination.Total)

	bad := enum.RfpStatus("archived")
	_, err = f.rfps.List(ctx, f.accounts, &ListRfpsInput{Status: &bad})
	assert.Equal(t, "status", apperror.GetAppError(err).Field)

	_, err = f.rfps.List(ctx, f.production, nil)
	assert.True(t, apperror.IsKind(err, apperror.KindPermission))
}

func TestTransitionsReachObserver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 23, nil)
	rfp := f.createRfp(t, 23)
	_, _ = f.rfps.Approve(ctx, f.salesUser, rfp.ID, nil)

	require.Len(t, f.observer.actions, 2)
	assert.Equal(t, []string{ActionCreate, ActionApprove}, f.observer.actions)
	assert.NoError(t, f.observer.errs[0])
	assert.True(t, apperror.IsKind(f.observer.errs[1], apperror.KindPermission))
}

func TestSystemActorSubmitsToAccounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 1, nil)
	rfp := f.quotedRfp(t, 1)

	webhook := actor.System("payment-webhook", actor.CanSubmitToAccounts)
	_, err := f.rfps.SubmitToAccounts(ctx, actor.System("payment-webhook"), rfp.ID, nil)
	assert.True(t, apperror.IsKind(err, apperror.KindPermission))

	updated, err := f.rfps.SubmitToAccounts(ctx, webhook, rfp.ID, &SubmitToAccountsInput{PaymentID: ptr("PAY-881")})
	require.NoError(t, err)
	assert.Equal(t, enum.RfpStatusAccountsPending, updated.Status)

	entries, err := f.audits.ListByRfp(ctx, f.salesHead, rfp.ID)
	require.NoError(t, err)
	last := entries[len(entries)-1]
	assert.Equal(t, string(AuditAccountsSubmitted), last.Action)
	assert.Equal(t, webhook.ID, last.PerformedBy)
	assert.Equal(t, "system:payment-webhook", last.PerformedByRole)
	assert.Equal(t, "PAY-881", last.Metadata["payment_id"])
}
