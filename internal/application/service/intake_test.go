package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/actor"
	"github.com/sangkips/rfp-api/internal/domain/entity"
	"github.com/sangkips/rfp-api/internal/domain/enum"
	"github.com/sangkips/rfp-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var intakeCaller = actor.New(uuid.New(), "Sita", actor.RoleDepartmentUser, actor.DepartmentSales, actor.CanCreateRfp)

func TestValidateIntakeFieldErrors(t *testing.T) {
	negative := decimal.NewFromInt(-5)
	tests := []struct {
		name  string
		input *CreateRfpInput
		field string
	}{
		{
			name:  "missing lead",
			input: &CreateRfpInput{Intake: cableIntake()},
			field: "lead_id",
		},
		{
			name:  "no product shape",
			input: &CreateRfpInput{LeadID: 1},
			field: "products",
		},
		{
			name:  "empty products",
			input: &CreateRfpInput{LeadID: 1, Intake: IntakeProducts{}},
			field: "products",
		},
		{
			name: "blank spec on second line",
			input: &CreateRfpInput{LeadID: 1, Intake: IntakeProducts{Lines: []ProductLineInput{
				{ProductSpec: "LT cable", AvailabilityStatus: "custom_product_pricing_needed"},
				{ProductSpec: "  ", AvailabilityStatus: "custom_product_pricing_needed"},
			}}},
			field: "products[1].product_spec",
		},
		{
			name: "unknown availability",
			input: &CreateRfpInput{LeadID: 1, Intake: IntakeProducts{Lines: []ProductLineInput{
				{ProductSpec: "LT cable", AvailabilityStatus: "maybe"},
			}}},
			field: "products[0].availability_status",
		},
		{
			name: "first failure wins",
			input: &CreateRfpInput{LeadID: 1, Intake: IntakeProducts{Lines: []ProductLineInput{
				{ProductSpec: "", AvailabilityStatus: "maybe", Quantity: -1},
			}}},
			field: "products[0].product_spec",
		},
		{
			name: "negative quantity",
			input: &CreateRfpInput{LeadID: 1, Intake: IntakeProducts{Lines: []ProductLineInput{
				{ProductSpec: "LT cable", AvailabilityStatus: "custom_product_pricing_needed", Quantity: -1},
			}}},
			field: "products[0].quantity",
		},
		{
			name: "negative target price",
			input: &CreateRfpInput{LeadID: 1, Intake: IntakeProducts{Lines: []ProductLineInput{
				{ProductSpec: "LT cable", AvailabilityStatus: "custom_product_pricing_needed", TargetPrice: &negative},
			}}},
			field: "products[0].target_price",
		},
		{
			name:  "legacy without spec",
			input: &CreateRfpInput{LeadID: 1, Intake: IntakeLegacy{AvailabilityStatus: "custom_product_pricing_needed"}},
			field: "product_spec",
		},
		{
			name:  "legacy without availability",
			input: &CreateRfpInput{LeadID: 1, Intake: IntakeLegacy{ProductSpec: "LT cable"}},
			field: "availability_status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateIntake(intakeCaller, tt.input)
			require.Error(t, err)
			appErr := apperror.GetAppError(err)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			assert.Equal(t, tt.field, appErr.Field)
			assert.Len(t, appErr.Errors, 1)
		})
	}
}

func TestValidateIntakeChecksPermissionFirst(t *testing.T) {
	head := actor.New(uuid.New(), "Harish", actor.RoleDepartmentHead, actor.DepartmentSales, actor.CanApproveRfp)
	_, err := ValidateIntake(head, &CreateRfpInput{})
	assert.True(t, apperror.IsKind(err, apperror.KindPermission))
}

func TestValidateIntakeNormalizesLines(t *testing.T) {
	length := 250.0
	products, err := ValidateIntake(intakeCaller, &CreateRfpInput{LeadID: 1, Intake: &IntakeProducts{Lines: []ProductLineInput{
		{ProductSpec: " LT cable ", AvailabilityStatus: "in_stock_price_unavailable"},
		{ProductSpec: "HT cable", AvailabilityStatus: "custom_product_pricing_needed", Quantity: 3, Length: &length, LengthUnit: "Km"},
	}}})
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "LT cable", products[0].ProductSpec)
	assert.Equal(t, 1, products[0].Quantity)
	assert.Equal(t, entity.DefaultLengthUnit, products[0].LengthUnit)
	assert.Equal(t, 0, products[0].Position)

	assert.Equal(t, 3, products[1].Quantity)
	assert.Equal(t, "Km", products[1].LengthUnit)
	assert.Equal(t, 1, products[1].Position)
}

func TestValidateIntakeLegacyShape(t *testing.T) {
	products, err := ValidateIntake(intakeCaller, &CreateRfpInput{LeadID: 1, Intake: IntakeLegacy{
		ProductSpec:        "Aluminium busbar",
		AvailabilityStatus: "not_in_stock_price_unavailable",
	}})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, enum.AvailabilityNotInStockPriceUnknown, products[0].AvailabilityStatus)
	assert.Equal(t, 1, products[0].Quantity)
}

func TestValidateIntakeLegacyInStockIsRedirected(t *testing.T) {
	_, err := ValidateIntake(intakeCaller, &CreateRfpInput{LeadID: 1, Intake: IntakeLegacy{
		ProductSpec:        "Aluminium busbar",
		AvailabilityStatus: "in_stock",
	}})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}
