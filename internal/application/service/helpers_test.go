package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/actor"
	"github.com/sangkips/rfp-api/internal/domain/entity"
	"github.com/sangkips/rfp-api/internal/domain/repository"
	"github.com/sangkips/rfp-api/internal/infrastructure/authz"
	"github.com/sangkips/rfp-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/rfp-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type recordingObserver struct {
	actions []string
	errs    []error
}

func (o *recordingObserver) ObserveTransition(action string, _ time.Time, err error) {
	o.actions = append(o.actions, action)
	o.errs = append(o.errs, err)
}

type fixture struct {
	db        *gorm.DB
	uow       repository.UnitOfWork
	clock     *fixedClock
	observer  *recordingObserver
	decisions *PricingDecisionService
	rfps      *RfpService
	audits    *AuditService
	documents *DocumentService

	salesUser  actor.Actor
	salesHead  actor.Actor
	accounts   actor.Actor
	senior     actor.Actor
	production actor.Actor
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewSQLiteDB("file:"+name+"?mode=memory&cache=shared", zap.NewNop())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db, zap.NewNop()))
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	uow := infraRepo.NewUnitOfWork(db)
	clock := &fixedClock{now: time.Date(2024, time.May, 14, 9, 30, 0, 0, time.UTC)}
	observer := &recordingObserver{}
	log := zap.NewNop()

	decisions := NewPricingDecisionService(uow, clock, log)
	rfps := NewRfpService(uow, decisions, NewQuotationGenerator(DefaultQuotationSettings(), log), NewWorkOrderEnsurer(log), clock, observer, log)

	authorizer, err := authz.NewAuthorizer(log)
	require.NoError(t, err)
	resolve := func(name, role, department string) actor.Actor {
		return authorizer.Resolve(uuid.New(), name, role, department)
	}

	return &fixture{
		db:         db,
		uow:        uow,
		clock:      clock,
		observer:   observer,
		decisions:  decisions,
		rfps:       rfps,
		audits:     NewAuditService(uow),
		documents:  NewDocumentService(uow),
		salesUser:  resolve("Sita", "department_user", "sales"),
		salesHead:  resolve("Harish", "department_head", "sales"),
		accounts:   resolve("Anil", "department_user", "accounts"),
		senior:     resolve("Meera", "superadmin", ""),
		production: resolve("Ravi", "department_user", "production"),
	}
}

func (f *fixture) seedLead(t *testing.T, id uint, salesperson *uuid.UUID) *entity.Lead {
	t.Helper()
	email := "buyer@acme.example"
	lead := &entity.Lead{
		ID:             id,
		CompanyName:    "Acme Power Ltd",
		ContactName:    "R. Iyer",
		Email:          &email,
		SalespersonID:  salesperson,
		DepartmentType: "sales",
	}
	require.NoError(t, f.db.Create(lead).Error)
	return lead
}

func cableIntake() Intake {
	return IntakeProducts{Lines: []ProductLineInput{{
		ProductSpec:        "3-core 16mm XLPE cable",
		Quantity:           500,
		AvailabilityStatus: "not_in_stock_price_unavailable",
	}}}
}

func (f *fixture) createRfp(t *testing.T, leadID uint) *entity.RfpRequest {
	t.Helper()
	rfp, err := f.rfps.Create(context.Background(), f.salesUser, &CreateRfpInput{LeadID: leadID, Intake: cableIntake()})
	require.NoError(t, err)
	return rfp
}

// pricedRfp drives a new RFP to pricing_ready at 100+20+10
func (f *fixture) pricedRfp(t *testing.T, leadID uint) *entity.RfpRequest {
	t.Helper()
	ctx := context.Background()
	rfp := f.createRfp(t, leadID)
	_, err := f.rfps.Approve(ctx, f.salesHead, rfp.ID, nil)
	require.NoError(t, err)
	result, err := f.rfps.AddPriceRevision(ctx, f.accounts, rfp.ID, priceInput(100, 20, 10))
	require.NoError(t, err)
	return result.Rfp
}

// quotedRfp drives a new RFP to accounts_pending
func (f *fixture) quotedRfp(t *testing.T, leadID uint) *entity.RfpRequest {
	t.Helper()
	ctx := context.Background()
	rfp := f.pricedRfp(t, leadID)
	_, err := f.rfps.GenerateQuotation(ctx, f.salesUser, rfp.ID)
	require.NoError(t, err)
	pi := "PI-1"
	submitted, err := f.rfps.SubmitToAccounts(ctx, f.salesUser, rfp.ID, &SubmitToAccountsInput{PiID: &pi})
	require.NoError(t, err)
	return submitted
}
