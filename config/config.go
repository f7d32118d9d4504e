package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultWeb3FormsURL is the Web3Forms submission endpoint
	DefaultWeb3FormsURL = "https://api.web3forms.com/submit"

	// DefaultRelayTimeout bounds the outbound call to the form-delivery API
	DefaultRelayTimeout = 10 * time.Second

	// MinIPHashSecretLength is the minimum required length for the IP hash secret in production
	MinIPHashSecretLength = 32
)

type Config struct {
	ServerPort     string
	Environment    string
	AppURL         string
	AllowedOrigins []string
	// Contact relay (Web3Forms)
	Web3FormsAccessKey string
	Web3FormsURL       string
	RelayTimeout       time.Duration
	RelayVerboseErrors bool
	ContactRateLimit   int
	// Relay events
	DBPath                  string
	IPHashSecret            string
	RelayEventRetention     time.Duration
	RelayEventRetentionCron string
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged to console instead of sent
	AdminEmail    string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")
	dbPath := getEnv("DB_PATH", "")
	ipHashSecret := getSecretEnv("IP_HASH_SECRET")

	// The secret only keys client IP hashes, which exist only when the event log is enabled
	if dbPath != "" {
		if err := ValidateIPHashSecret(ipHashSecret, environment); err != nil {
			log.Fatalf("[CRITICAL] %v. Generate a secure random secret with: openssl rand -base64 32", err)
		}

		// In development, generate a secret if none provided; hashes won't survive restarts
		if ipHashSecret == "" && environment != "production" {
			ipHashSecret = GenerateSecureSecret()
			log.Println("[INFO] Generated temporary IP hash secret for development. Set IP_HASH_SECRET env var for persistence.")
		}
	}

	accessKey := getSecretEnv("WEB3FORMS_ACCESS_KEY")
	if accessKey == "" {
		log.Println("[WARNING] WEB3FORMS_ACCESS_KEY is not set; contact submissions will fail with a configuration error.")
	}

	return &Config{
		ServerPort:              getEnv("SERVER_PORT", "8080"),
		Environment:             environment,
		AppURL:                  strings.TrimRight(getEnv("APP_URL", "http://localhost:8080"), "/"),
		AllowedOrigins:          strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		Web3FormsAccessKey:      accessKey,
		Web3FormsURL:            getEnv("WEB3FORMS_URL", DefaultWeb3FormsURL),
		RelayTimeout:            getEnvDuration("RELAY_TIMEOUT", DefaultRelayTimeout),
		RelayVerboseErrors:      getEnvBool("RELAY_VERBOSE_ERRORS", environment != "production"),
		ContactRateLimit:        getEnvInt("CONTACT_RATE_LIMIT", 5),
		DBPath:                  dbPath,
		IPHashSecret:            ipHashSecret,
		RelayEventRetention:     getEnvDuration("RELAY_EVENT_RETENTION", 90*24*time.Hour),
		RelayEventRetentionCron: getEnv("RELAY_EVENT_RETENTION_CRON", "0 3 * * *"),
		ResendAPIKey:            getSecretEnv("RESEND_API_KEY"),
		EmailFrom:               getEnv("EMAIL_FROM", "noreply@softmatrices.com"),
		EmailFromName:           getEnv("EMAIL_FROM_NAME", "Softmatrices Website"),
		EmailTestMode:           getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		AdminEmail:              getEnv("ADMIN_EMAIL", ""),
	}
}

// RelayConfigured reports whether the access key is present, without exposing it
func (c *Config) RelayConfigured() bool {
	return c.Web3FormsAccessKey != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// getSecretEnv reads a secret without ever logging its value
func getSecretEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("[WARNING] Invalid value for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("[WARNING] Invalid duration for %s: %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

// ValidateIPHashSecret validates the IP hash secret meets security requirements.
// Outside production only a warning is logged for weak secrets.
func ValidateIPHashSecret(secret string, environment string) error {
	insecureDefaults := []string{
		"change-me",
		"secret",
		"development",
		"test",
	}

	for _, insecure := range insecureDefaults {
		if strings.EqualFold(secret, insecure) {
			if environment == "production" {
				return errors.New("IP_HASH_SECRET is set to an insecure default value")
			}
			log.Printf("[WARNING] IP_HASH_SECRET is set to an insecure default value. This is acceptable only in development.")
			return nil
		}
	}

	if environment == "production" && len(secret) < MinIPHashSecretLength {
		return fmt.Errorf("IP_HASH_SECRET must be at least %d characters in production (current: %d)", MinIPHashSecretLength, len(secret))
	}

	return nil
}

// GenerateSecureSecret generates a cryptographically secure random secret
// This is used only for development when no secret is provided
func GenerateSecureSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Printf("[WARNING] Failed to generate secure secret: %v", err)
		return ""
	}
	return base64.StdEncoding.EncodeToString(bytes)
}
