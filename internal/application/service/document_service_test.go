package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentServiceReadsQuotation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedLead(t, 50, nil)
	rfp := f.pricedRfp(t, 50)
	quoted, err := f.rfps.GenerateQuotation(ctx, f.salesUser, rfp.ID)
	require.NoError(t, err)

	quotation, err := f.documents.GetQuotation(ctx, f.accounts, quoted.Quotation.ID)
	require.NoError(t, err)
	assert.Equal(t, quoted.Quotation.Reference, quotation.Reference)
	require.Len(t, quotation.Details, 1)
	assert.Equal(t, "3-core 16mm XLPE cable", quotation.Details[0].Description)
	require.NotNil(t, quotation.CustomerEmail)
	assert.Equal(t, "buyer@acme.example", *quotation.CustomerEmail)

	_, err = f.documents.GetQuotation(ctx, f.production, quoted.Quotation.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindPermission))

	byRfp, err := f.documents.GetQuotationForRfp(ctx, f.salesUser, rfp.ID)
	require.NoError(t, err)
	assert.Equal(t, quoted.Quotation.ID, byRfp.ID)
	require.Len(t, byRfp.Details, 1)

	_, err = f.documents.GetQuotationForRfp(ctx, f.production, rfp.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindPermission))
}

func TestDocumentServiceNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.documents.GetQuotation(ctx, f.salesUser, uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	_, err = f.documents.GetWorkOrder(ctx, f.salesUser, uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	f.seedLead(t, 51, nil)
	unquoted := f.pricedRfp(t, 51)
	_, err = f.documents.GetQuotationForRfp(ctx, f.salesUser, unquoted.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
