package session

import (
	"log/slog"
	"time"

	"loanlink/internal/platform/metrics"
	"loanlink/internal/session/tracer"
)

// Option configures optional Manager dependencies.
type Option func(*Manager)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(collector *metrics.Metrics) Option {
	return func(m *Manager) {
		m.metrics = collector
	}
}

// WithTracer sets the tracer for session operations.
func WithTracer(t tracer.Tracer) Option {
	return func(m *Manager) {
		m.tracer = t
	}
}

// WithClock injects a clock, for tests that simulate idle time.
func WithClock(c Clock) Option {
	return func(m *Manager) {
		m.clock = c
	}
}

// WithTickerFactory injects the ticker constructor used by the idle monitor.
func WithTickerFactory(f TickerFactory) Option {
	return func(m *Manager) {
		m.newTicker = f
	}
}

// WithIdleWarningHandler registers the callback fired once per warning window
// when the session approaches its idle timeout. The remaining time until
// forced logout is passed along.
func WithIdleWarningHandler(fn func(remaining time.Duration)) Option {
	return func(m *Manager) {
		m.onIdleWarning = fn
	}
}

// WithExpiryHandler registers the callback fired once when an active session
// ends without an explicit logout. Reason is "idle_timeout" or "unauthorized".
func WithExpiryHandler(fn func(reason string)) Option {
	return func(m *Manager) {
		m.onExpired = fn
	}
}
