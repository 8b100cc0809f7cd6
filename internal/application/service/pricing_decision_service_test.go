package service

import (
	"context"
	"testing"

	"github.com/sangkips/rfp-api/internal/domain/entity"
	"github.com/sangkips/rfp-api/internal/domain/enum"
	"github.com/sangkips/rfp-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingDecisionCreateNumbersGlobally(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 30, nil)
	f.seedLead(t, 31, nil)

	total := decimal.NewFromInt(1200)
	first, err := f.decisions.Create(ctx, f.salesUser, &CreatePricingDecisionInput{
		LeadID:               30,
		Products:             []entity.DecisionProduct{{ProductSpec: " LT cable "}},
		CalculatorTotalPrice: &total,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DecisionSnapshotID("RFP-202405-0001"), first.RfpID)
	assert.Equal(t, enum.PricingDecisionSaved, first.Status)
	assert.Equal(t, "LT cable", first.Products[0].ProductSpec)
	assert.Equal(t, 1, first.Products[0].Quantity)
	assert.Equal(t, entity.DefaultLengthUnit, first.Products[0].LengthUnit)
	assert.Equal(t, "Acme Power Ltd", first.CompanyName)

	second, err := f.decisions.Create(ctx, f.salesUser, &CreatePricingDecisionInput{
		LeadID:   31,
		Products: []entity.DecisionProduct{{ProductSpec: "HT cable", Quantity: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DecisionSnapshotID("RFP-202405-0002"), second.RfpID)
}

func TestPricingDecisionLatestByLead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 32, nil)

	_, err := f.decisions.Create(ctx, f.salesUser, &CreatePricingDecisionInput{
		LeadID:   32,
		Products: []entity.DecisionProduct{{ProductSpec: "first"}},
	})
	require.NoError(t, err)
	f.clock.now = f.clock.now.AddDate(0, 0, 1)
	latest, err := f.decisions.Create(ctx, f.salesUser, &CreatePricingDecisionInput{
		LeadID:   32,
		Products: []entity.DecisionProduct{{ProductSpec: "second"}},
	})
	require.NoError(t, err)

	got, err := f.decisions.GetLatestByLead(ctx, f.accounts, 32)
	require.NoError(t, err)
	assert.Equal(t, latest.RfpID, got.RfpID)
	assert.Equal(t, "second", got.Products[0].ProductSpec)

	_, err = f.decisions.GetLatestByLead(ctx, f.accounts, 99)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestPricingDecisionPartialUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 33, nil)

	timeline := "4 weeks"
	decision, err := f.decisions.Create(ctx, f.salesUser, &CreatePricingDecisionInput{
		LeadID:           33,
		Products:         []entity.DecisionProduct{{ProductSpec: "LT cable"}},
		DeliveryTimeline: &timeline,
	})
	require.NoError(t, err)

	requirements := "ISI marked"
	updated, err := f.decisions.Update(ctx, f.salesUser, decision.RfpID, &UpdatePricingDecisionInput{SpecialRequirements: &requirements})
	require.NoError(t, err)
	assert.Equal(t, "ISI marked", *updated.SpecialRequirements)
	assert.Equal(t, "4 weeks", *updated.DeliveryTimeline)
	assert.Equal(t, "LT cable", updated.Products[0].ProductSpec)

	empty := []entity.DecisionProduct{}
	_, err = f.decisions.Update(ctx, f.salesUser, decision.RfpID, &UpdatePricingDecisionInput{Products: &empty})
	assert.Equal(t, "products", apperror.GetAppError(err).Field)

	_, err = f.decisions.Update(ctx, f.salesUser, "RFP-202405-9999", &UpdatePricingDecisionInput{})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestPricingDecisionFrozenOnceRfpCreated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 34, nil)

	decision, err := f.decisions.Create(ctx, f.salesUser, &CreatePricingDecisionInput{
		LeadID:   34,
		Products: []entity.DecisionProduct{{ProductSpec: "LT cable"}},
	})
	require.NoError(t, err)
	id := decision.RfpID
	_, err = f.rfps.Create(ctx, f.salesUser, &CreateRfpInput{LeadID: 34, Intake: cableIntake(), PricingDecisionRfpID: &id})
	require.NoError(t, err)

	timeline := "now"
	_, err = f.decisions.Update(ctx, f.salesUser, id, &UpdatePricingDecisionInput{DeliveryTimeline: &timeline})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestPricingDecisionPermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.decisions.Create(ctx, f.accounts, &CreatePricingDecisionInput{LeadID: 1})
	assert.True(t, apperror.IsKind(err, apperror.KindPermission))

	_, err = f.decisions.GetByDecisionID(ctx, f.production, "RFP-202405-0001")
	assert.True(t, apperror.IsKind(err, apperror.KindPermission))

	_, err = f.decisions.Create(ctx, f.salesUser, &CreatePricingDecisionInput{LeadID: 1, Products: []entity.DecisionProduct{{ProductSpec: "x"}}})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
