package session

import "context"

// startIdleMonitorLocked launches the goroutine that watches for inactivity.
// Caller holds m.mu. A previous monitor, if any, is stopped first.
func (m *Manager) startIdleMonitorLocked() {
	m.stopIdleMonitorLocked()
	if m.cfg.IdleTimeout <= 0 {
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	m.stopIdle = stop
	m.idleDone = done

	ticker := m.newTicker(m.cfg.TickInterval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.Chan():
				if m.checkIdle() {
					return
				}
			}
		}
	}()
}

// stopIdleMonitorLocked signals the monitor to exit. Caller holds m.mu.
// It does not wait for the goroutine; the monitor re-checks state under the
// lock before acting, so a late tick is harmless.
func (m *Manager) stopIdleMonitorLocked() {
	if m.stopIdle != nil {
		close(m.stopIdle)
		m.stopIdle = nil
		m.idleDone = nil
	}
}

// checkIdle evaluates the idle policy on each tick. It raises the warning
// once when the remaining time drops inside the warning window, and forces
// expiry once the full timeout elapses. Returns true when the session ended
// and the monitor should exit.
func (m *Manager) checkIdle() bool {
	m.mu.Lock()
	if !m.state.active() || m.session == nil {
		m.mu.Unlock()
		return true
	}

	idle := m.clock.Now().Sub(m.session.LastActivity)
	remaining := m.cfg.IdleTimeout - idle

	if remaining <= 0 {
		m.session = nil
		m.state = StateExpired
		m.stopIdle = nil
		m.idleDone = nil
		notify := !m.notified
		m.notified = true
		m.mu.Unlock()
		m.expireIdle(notify)
		return true
	}

	if remaining <= m.cfg.IdleWarning && !m.warned {
		m.warned = true
		m.state = StateIdleWarning
		m.mu.Unlock()
		m.metrics.IncrementIdleWarning()
		m.logger.Info("session idle warning", "remaining", remaining)
		if m.onIdleWarning != nil {
			m.onIdleWarning(remaining)
		}
		return false
	}

	m.mu.Unlock()
	return false
}

// expireIdle finishes a forced idle logout outside the lock: it clears the
// stored credential, records the explicit-logout marker so the next start
// does not silently restore the timed-out session, and best-effort revokes
// the remote sessions.
func (m *Manager) expireIdle(notify bool) {
	if err := m.creds.SetLogoutMarker(); err != nil {
		m.logger.Warn("failed to record logout marker", "error", err)
	}
	if err := m.creds.ClearToken(); err != nil {
		m.logger.Warn("failed to clear stored credential", "error", err)
	}
	m.metrics.SetSessionActive(false)
	m.metrics.IncrementIdleLogout()
	m.logger.Info("session expired from inactivity")
	m.revokeRemote(context.Background())
	if notify && m.onExpired != nil {
		m.onExpired(ExpiryReasonIdle)
	}
}
