package services

import (
	"log"
	"sync"
	"time"

	"softmatrices_site_go/config"
)

const (
	relayFailureWindow    = 10 * time.Minute
	relayFailureThreshold = 5
	relayAlertCooldown    = 1 * time.Hour
	maxRelayAlerts        = 100
)

// RelayAlert represents a triggered relay alert
type RelayAlert struct {
	Timestamp time.Time
	Kind      RelayOutcome
	Count     int
	Message   string
}

// RelayMonitor aggregates relay failures and alerts operators
type RelayMonitor struct {
	mu        sync.Mutex
	cfg       *config.Config
	failures  map[RelayOutcome][]time.Time // Kind -> failure timestamps within the window
	alertedAt map[RelayOutcome]time.Time   // Kind -> last alert time
	alerts    []RelayAlert                 // Newest first
	now       func() time.Time
	notify    func(cfg *config.Config, email *Email)
}

// NewRelayMonitor creates a monitor that emails cfg.AdminEmail when set
func NewRelayMonitor(cfg *config.Config) *RelayMonitor {
	return &RelayMonitor{
		cfg:       cfg,
		failures:  make(map[RelayOutcome][]time.Time),
		alertedAt: make(map[RelayOutcome]time.Time),
		now:       time.Now,
		notify:    SendEmailAsync,
	}
}

func thresholdFor(kind RelayOutcome) int {
	switch kind {
	case OutcomeConfigurationMissing:
		return 1
	case OutcomeUpstreamRejected, OutcomeTransportFailure:
		return relayFailureThreshold
	default:
		return 0
	}
}

// Observe records a relay result and triggers an alert once a failure threshold is reached
func (m *RelayMonitor) Observe(result RelayResult) {
	kind := result.Outcome()
	threshold := thresholdFor(kind)
	if threshold == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	windowStart := now.Add(-relayFailureWindow)

	recent := make([]time.Time, 0, len(m.failures[kind])+1)
	for _, t := range m.failures[kind] {
		if t.After(windowStart) {
			recent = append(recent, t)
		}
	}
	recent = append(recent, now)
	m.failures[kind] = recent

	if len(recent) >= threshold {
		detail := ""
		if result.Failure != nil {
			detail = result.Failure.Message
		}
		m.triggerAlertLocked(kind, len(recent), detail)
	}
}

// triggerAlertLocked logs and emails an alert - called from within lock
func (m *RelayMonitor) triggerAlertLocked(kind RelayOutcome, count int, detail string) {
	now := m.now()
	if last, ok := m.alertedAt[kind]; ok && now.Sub(last) < relayAlertCooldown {
		return
	}
	m.alertedAt[kind] = now

	alert := RelayAlert{
		Timestamp: now,
		Kind:      kind,
		Count:     count,
		Message:   detail,
	}
	m.alerts = append([]RelayAlert{alert}, m.alerts...)
	if len(m.alerts) > maxRelayAlerts {
		m.alerts = m.alerts[:maxRelayAlerts]
	}

	log.Printf("[RELAY ALERT] %s: %d occurrence(s) in %s (%s)", kind, count, relayFailureWindow, detail)

	if m.cfg != nil && m.cfg.AdminEmail != "" && m.notify != nil {
		m.notify(m.cfg, BuildRelayAlertEmail(m.cfg.AdminEmail, alert))
	}
}

// RecentAlerts returns a copy of recent alerts, newest first
func (m *RelayMonitor) RecentAlerts() []RelayAlert {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	alertsCopy := make([]RelayAlert, len(m.alerts))
	copy(alertsCopy, m.alerts)
	return alertsCopy
}

// Prune drops failure timestamps and cooldowns that no longer matter
func (m *RelayMonitor) Prune() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for kind, times := range m.failures {
		if len(times) == 0 || now.Sub(times[len(times)-1]) > relayFailureWindow {
			delete(m.failures, kind)
		}
	}
	for kind, last := range m.alertedAt {
		if now.Sub(last) > relayAlertCooldown {
			delete(m.alertedAt, kind)
		}
	}
}
