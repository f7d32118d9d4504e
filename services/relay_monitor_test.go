package services

import (
	"net/http"
	"testing"
	"time"

	"softmatrices_site_go/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func newTestMonitor(cfg *config.Config) (*RelayMonitor, *clock, *[]*Email) {
	c := &clock{t: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	sent := []*Email{}
	m := NewRelayMonitor(cfg)
	m.now = c.now
	m.notify = func(_ *config.Config, email *Email) { sent = append(sent, email) }
	return m, c, &sent
}

func failureResult(kind RelayOutcome, message string) RelayResult {
	return RelayResult{
		StatusCode: http.StatusInternalServerError,
		Failure:    &RelayFailure{Kind: kind, Message: message},
	}
}

func TestRelayMonitorConfigurationMissingAlertsImmediately(t *testing.T) {
	m, _, sent := newTestMonitor(&config.Config{AdminEmail: "ops@softmatrices.com"})

	m.Observe(failureResult(OutcomeConfigurationMissing, "Server configuration error"))

	alerts := m.RecentAlerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, OutcomeConfigurationMissing, alerts[0].Kind)
	assert.Equal(t, 1, alerts[0].Count)
	require.Len(t, *sent, 1)
	assert.Equal(t, []string{"ops@softmatrices.com"}, (*sent)[0].To)
}

func TestRelayMonitorThreshold(t *testing.T) {
	m, c, _ := newTestMonitor(&config.Config{})

	for i := 0; i < relayFailureThreshold-1; i++ {
		m.Observe(failureResult(OutcomeTransportFailure, "timeout"))
		c.t = c.t.Add(time.Second)
	}
	assert.Empty(t, m.RecentAlerts())

	m.Observe(failureResult(OutcomeTransportFailure, "timeout"))
	alerts := m.RecentAlerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, relayFailureThreshold, alerts[0].Count)
}

func TestRelayMonitorWindowExpires(t *testing.T) {
	m, c, _ := newTestMonitor(&config.Config{})

	for i := 0; i < relayFailureThreshold-1; i++ {
		m.Observe(failureResult(OutcomeUpstreamRejected, "upstream status 403"))
	}
	c.t = c.t.Add(relayFailureWindow + time.Second)
	m.Observe(failureResult(OutcomeUpstreamRejected, "upstream status 403"))

	assert.Empty(t, m.RecentAlerts())
}

func TestRelayMonitorCooldown(t *testing.T) {
	m, c, sent := newTestMonitor(&config.Config{AdminEmail: "ops@softmatrices.com"})

	m.Observe(failureResult(OutcomeConfigurationMissing, ""))
	c.t = c.t.Add(30 * time.Minute)
	m.Observe(failureResult(OutcomeConfigurationMissing, ""))
	assert.Len(t, m.RecentAlerts(), 1)

	c.t = c.t.Add(31 * time.Minute)
	m.Observe(failureResult(OutcomeConfigurationMissing, ""))
	assert.Len(t, m.RecentAlerts(), 2)
	assert.Len(t, *sent, 2)
}

func TestRelayMonitorIgnoresNonFailures(t *testing.T) {
	m, _, _ := newTestMonitor(&config.Config{})

	m.Observe(RelayResult{StatusCode: http.StatusOK})
	m.Observe(RelayResult{StatusCode: http.StatusMethodNotAllowed, Failure: &RelayFailure{Kind: OutcomeMethodNotAllowed}})

	assert.Empty(t, m.RecentAlerts())
	assert.Empty(t, m.failures)
}

func TestRelayMonitorNoEmailWithoutAdmin(t *testing.T) {
	m, _, sent := newTestMonitor(&config.Config{})
	m.Observe(failureResult(OutcomeConfigurationMissing, ""))
	assert.Len(t, m.RecentAlerts(), 1)
	assert.Empty(t, *sent)
}

func TestRelayMonitorPrune(t *testing.T) {
	m, c, _ := newTestMonitor(&config.Config{})
	m.Observe(failureResult(OutcomeConfigurationMissing, ""))
	m.Observe(failureResult(OutcomeTransportFailure, ""))

	c.t = c.t.Add(2 * time.Hour)
	m.Prune()

	assert.Empty(t, m.failures)
	assert.Empty(t, m.alertedAt)
	assert.Len(t, m.RecentAlerts(), 1, "alert history is kept")
}
