package authtoken

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/tokenkit/pkg/jwt"
	"github.com/dmitrymomot/tokenkit/pkg/revocation"
)

// Verification results used as the "result" label.
const (
	ResultAccepted         = "accepted"
	ResultAcceptedFailOpen = "accepted_fail_open"
	ResultMissing          = "missing"
	ResultMalformed        = "malformed"
	ResultExpired          = "expired"
	ResultInvalid          = "invalid"
	ResultUnknownTenant    = "unknown_tenant"
	ResultRevoked          = "revoked"
	ResultStoreUnavailable = "store_unavailable"
	ResultError            = "error"
)

// Metrics counts verification and revocation outcomes. A nil *Metrics
// records nothing.
type Metrics struct {
	Verifications       *prometheus.CounterVec
	VerificationLatency prometheus.Histogram
	Revocations         *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authtoken_verifications_total",
			Help: "Total number of token verifications by result",
		}, []string{"result"}),

		VerificationLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "authtoken_verification_duration_seconds",
			Help:    "Token verification latency including the revocation lookup",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),

		Revocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authtoken_revocations_total",
			Help: "Total number of token revocations by result",
		}, []string{"result"}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.Verifications, m.VerificationLatency, m.Revocations} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) observeVerification(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Verifications.WithLabelValues(result).Inc()
	m.VerificationLatency.Observe(elapsed.Seconds())
}

// countVerification records a result that never reached the codec.
func (m *Metrics) countVerification(result string) {
	if m == nil {
		return
	}
	m.Verifications.WithLabelValues(result).Inc()
}

func (m *Metrics) observeRevocation(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = ResultError
		if errors.Is(err, revocation.ErrStoreUnavailable) {
			result = ResultStoreUnavailable
		}
	}
	m.Revocations.WithLabelValues(result).Inc()
}

// ResultOf maps a Verify error to its metrics result label.
func ResultOf(err error) string {
	switch {
	case err == nil:
		return ResultAccepted
	case errors.Is(err, jwt.ErrMissingToken):
		return ResultMissing
	case errors.Is(err, jwt.ErrMalformedToken):
		return ResultMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return ResultExpired
	case errors.Is(err, jwt.ErrTokenInvalid):
		return ResultInvalid
	case errors.Is(err, ErrUnknownTenant):
		return ResultUnknownTenant
	case errors.Is(err, revocation.ErrTokenRevoked):
		return ResultRevoked
	case errors.Is(err, revocation.ErrStoreUnavailable):
		return ResultStoreUnavailable
	}
	return ResultError
}
