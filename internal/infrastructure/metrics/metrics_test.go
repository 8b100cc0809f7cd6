package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	domainRepo "github.com/sangkips/rfp-api/internal/domain/repository"
	"github.com/sangkips/rfp-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func TestClassifyOutcome(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "ok", err: nil, want: OutcomeOK},
		{name: "permission", err: apperror.NewPermissionError("no"), want: OutcomePermission},
		{name: "field", err: apperror.NewFieldError("lead_id", "lead_id is required"), want: OutcomeValidation},
		{name: "bad_request", err: apperror.NewBadRequestError("price missing"), want: OutcomeValidation},
		{name: "conflict", err: apperror.NewConflictError("already approved"), want: OutcomeConflict},
		{name: "duplicate", err: fmt.Errorf("insert: %w", domainRepo.ErrDuplicateKey), want: OutcomeConflict},
		{name: "not_found", err: apperror.NewNotFoundError("RFP"), want: OutcomeNotFound},
		{name: "collaborator", err: apperror.NewCollaboratorError("create quotation", errors.New("down")), want: OutcomeCollaborator},
		{name: "unknown", err: errors.New("boom"), want: OutcomeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyOutcome(tc.err))
		})
	}
}

func TestObserveTransitionCountsByOutcome(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveTransition("approve", time.Now(), nil)
	m.ObserveTransition("approve", time.Now(), apperror.NewConflictError("RFP is not pending approval"))
	m.ObserveTransition("approve", time.Now(), nil)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Transitions().WithLabelValues("approve", OutcomeOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Transitions().WithLabelValues("approve", OutcomeConflict)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveTransition("approve", time.Now(), nil) })
}
