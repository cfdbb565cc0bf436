package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the client.
type Metrics struct {
	Logins            *prometheus.CounterVec
	Registrations     prometheus.Counter
	AuthFailures      prometheus.Counter
	SessionActive     prometheus.Gauge
	IdleWarnings      prometheus.Counter
	IdleLogouts       prometheus.Counter
	SessionsExpired   prometheus.Counter
	ProviderFallbacks prometheus.Counter
}

// New creates and registers all Prometheus metrics on the given registerer.
// Passing a fresh registry keeps tests isolated from the default one.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loanlink_logins_total",
			Help: "Total number of successful logins, labeled by method",
		}, []string{"method"}),
		Registrations: factory.NewCounter(prometheus.CounterOpts{
			Name: "loanlink_registrations_total",
			Help: "Total number of successful registrations",
		}),
		AuthFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "loanlink_auth_failures_total",
			Help: "Total number of authentication failures",
		}),
		SessionActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "loanlink_session_active",
			Help: "Whether an authoritative session is currently held (0 or 1)",
		}),
		IdleWarnings: factory.NewCounter(prometheus.CounterOpts{
			Name: "loanlink_idle_warnings_total",
			Help: "Total number of idle-timeout warnings raised",
		}),
		IdleLogouts: factory.NewCounter(prometheus.CounterOpts{
			Name: "loanlink_idle_logouts_total",
			Help: "Total number of forced logouts from idle timeout",
		}),
		SessionsExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "loanlink_sessions_expired_total",
			Help: "Total number of sessions expired by a mid-session 401",
		}),
		ProviderFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "loanlink_provider_fallbacks_total",
			Help: "Total number of swallowed secondary identity provider failures",
		}),
	}
}

// IncrementLogin records a successful login for the given method ("password" or "social").
func (m *Metrics) IncrementLogin(method string) {
	if m != nil {
		m.Logins.WithLabelValues(method).Inc()
	}
}

// IncrementRegistration records a successful registration.
func (m *Metrics) IncrementRegistration() {
	if m != nil {
		m.Registrations.Inc()
	}
}

// IncrementAuthFailure records a failed authentication attempt.
func (m *Metrics) IncrementAuthFailure() {
	if m != nil {
		m.AuthFailures.Inc()
	}
}

// SetSessionActive flips the active-session gauge.
func (m *Metrics) SetSessionActive(active bool) {
	if m == nil {
		return
	}
	if active {
		m.SessionActive.Set(1)
		return
	}
	m.SessionActive.Set(0)
}

// IncrementIdleWarning records an idle warning being raised.
func (m *Metrics) IncrementIdleWarning() {
	if m != nil {
		m.IdleWarnings.Inc()
	}
}

// IncrementIdleLogout records a forced logout from idle timeout.
func (m *Metrics) IncrementIdleLogout() {
	if m != nil {
		m.IdleLogouts.Inc()
	}
}

// IncrementSessionExpired records a session ended by a mid-session 401.
func (m *Metrics) IncrementSessionExpired() {
	if m != nil {
		m.SessionsExpired.Inc()
	}
}

// IncrementProviderFallback records a swallowed secondary provider failure.
func (m *Metrics) IncrementProviderFallback() {
	if m != nil {
		m.ProviderFallbacks.Inc()
	}
}
