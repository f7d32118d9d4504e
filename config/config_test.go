package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "")
		t.Setenv("WEB3FORMS_ACCESS_KEY", "")
		t.Setenv("WEB3FORMS_URL", "")
		t.Setenv("RELAY_TIMEOUT", "")
		t.Setenv("RELAY_VERBOSE_ERRORS", "")
		t.Setenv("CONTACT_RATE_LIMIT", "")
		t.Setenv("IP_HASH_SECRET", "")
		t.Setenv("APP_URL", "")
		t.Setenv("DB_PATH", "relay_events.db")

		cfg := Load()
		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, DefaultWeb3FormsURL, cfg.Web3FormsURL)
		assert.Equal(t, DefaultRelayTimeout, cfg.RelayTimeout)
		assert.True(t, cfg.RelayVerboseErrors)
		assert.Equal(t, 5, cfg.ContactRateLimit)
		assert.Equal(t, "http://localhost:8080", cfg.AppURL)
		assert.False(t, cfg.RelayConfigured())
		assert.NotEmpty(t, cfg.IPHashSecret, "development should generate a secret")
		assert.True(t, cfg.EmailTestMode)
	})

	t.Run("FromEnvironment", func(t *testing.T) {
		t.Setenv("WEB3FORMS_ACCESS_KEY", "  SECRET123 ")
		t.Setenv("RELAY_TIMEOUT", "3s")
		t.Setenv("RELAY_VERBOSE_ERRORS", "off")
		t.Setenv("CONTACT_RATE_LIMIT", "12")
		t.Setenv("APP_URL", "https://softmatrices.com/")
		t.Setenv("ALLOWED_ORIGINS", "https://a.com,https://b.com")

		cfg := Load()
		assert.Equal(t, "SECRET123", cfg.Web3FormsAccessKey)
		assert.True(t, cfg.RelayConfigured())
		assert.Equal(t, 3*time.Second, cfg.RelayTimeout)
		assert.False(t, cfg.RelayVerboseErrors)
		assert.Equal(t, 12, cfg.ContactRateLimit)
		assert.Equal(t, "https://softmatrices.com", cfg.AppURL)
		assert.Equal(t, []string{"https://a.com", "https://b.com"}, cfg.AllowedOrigins)
	})
}

func TestEnvParsers(t *testing.T) {
	t.Run("Bool", func(t *testing.T) {
		t.Setenv("TEST_BOOL", "yes")
		assert.True(t, getEnvBool("TEST_BOOL", false))
		t.Setenv("TEST_BOOL", "0")
		assert.False(t, getEnvBool("TEST_BOOL", true))
		t.Setenv("TEST_BOOL", "maybe")
		assert.True(t, getEnvBool("TEST_BOOL", true))
	})

	t.Run("Int", func(t *testing.T) {
		t.Setenv("TEST_INT", "abc")
		assert.Equal(t, 7, getEnvInt("TEST_INT", 7))
		t.Setenv("TEST_INT", "-3")
		assert.Equal(t, 7, getEnvInt("TEST_INT", 7))
		t.Setenv("TEST_INT", "42")
		assert.Equal(t, 42, getEnvInt("TEST_INT", 7))
	})

	t.Run("Duration", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "soon")
		assert.Equal(t, time.Minute, getEnvDuration("TEST_DURATION", time.Minute))
		t.Setenv("TEST_DURATION", "250ms")
		assert.Equal(t, 250*time.Millisecond, getEnvDuration("TEST_DURATION", time.Minute))
	})
}

func TestGenerateSecureSecret(t *testing.T) {
	a := GenerateSecureSecret()
	b := GenerateSecureSecret()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestLoadProductionWithoutEventLog(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("WEB3FORMS_ACCESS_KEY", "k")
	t.Setenv("DB_PATH", "")
	t.Setenv("IP_HASH_SECRET", "")

	cfg := Load()
	assert.Equal(t, "production", cfg.Environment)
	assert.True(t, cfg.RelayConfigured())
	assert.Empty(t, cfg.DBPath)
	assert.Empty(t, cfg.IPHashSecret, "no secret is needed or generated without an event log")
	assert.False(t, cfg.RelayVerboseErrors)
}

func TestValidateIPHashSecret(t *testing.T) {
	assert.NoError(t, ValidateIPHashSecret("test", "development"))
	assert.NoError(t, ValidateIPHashSecret("", "development"))
	assert.NoError(t, ValidateIPHashSecret("a-long-enough-secret-for-production-use!", "production"))

	err := ValidateIPHashSecret("", "production")
	assert.ErrorContains(t, err, "at least 32 characters")

	err = ValidateIPHashSecret("short", "production")
	assert.ErrorContains(t, err, "(current: 5)")

	err = ValidateIPHashSecret("Change-Me", "production")
	assert.ErrorContains(t, err, "insecure default")
}
