package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	domainRepo "github.com/sangkips/rfp-api/internal/domain/repository"
	"github.com/sangkips/rfp-api/pkg/apperror"
)

// Outcome labels for RFP transitions
const (
	OutcomeOK           = "ok"
	OutcomePermission   = "permission"
	OutcomeValidation   = "validation"
	OutcomeConflict     = "conflict"
	OutcomeNotFound     = "not_found"
	OutcomeCollaborator = "collaborator"
	OutcomeInternal     = "internal"
)

// Metrics records RFP pipeline signals
type Metrics struct {
	transitions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// New registers the pipeline collectors on registerer. A nil registerer falls
// back to the default one.
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rfp_transitions_total",
		Help: "RFP workflow transitions by action and outcome.",
	}, []string{"action", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rfp_transition_duration_seconds",
		Help:    "RFP workflow transition latency including the database transaction.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"action"})

	registerer.MustRegister(transitions, duration)

	return &Metrics{transitions: transitions, duration: duration}
}

// ObserveTransition counts one attempt of action
func (m *Metrics) ObserveTransition(action string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action, ClassifyOutcome(err)).Inc()
	m.duration.WithLabelValues(action).Observe(time.Since(started).Seconds())
}

// Transitions exposes the counter for tests
func (m *Metrics) Transitions() *prometheus.CounterVec {
	return m.transitions
}

// ClassifyOutcome maps an error onto a low-cardinality outcome label
func ClassifyOutcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if errors.Is(err, domainRepo.ErrDuplicateKey) {
		return OutcomeConflict
	}
	if !apperror.IsAppError(err) {
		return OutcomeInternal
	}
	switch apperror.GetAppError(err).Kind {
	case apperror.KindPermission:
		return OutcomePermission
	case apperror.KindValidation, apperror.KindBadRequest:
		return OutcomeValidation
	case apperror.KindConflict:
		return OutcomeConflict
	case apperror.KindNotFound:
		return OutcomeNotFound
	case apperror.KindCollaborator:
		return OutcomeCollaborator
	default:
		return OutcomeInternal
	}
}
