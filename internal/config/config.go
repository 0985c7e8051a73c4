package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	// Appointment token signing
	TokenSigningSecret string
	TokenMaxAge        time.Duration

	// Appointment record persistence: "file" or "postgres"
	AppointmentsBackend string
	AppointmentsDir     string
	DatabaseURL         string

	// Patient session store
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	SessionTTL    time.Duration

	// Uploaded medical reports
	UploadsDir       string
	TimezoneLocation string

	// Gemini (intake chat + report analysis)
	GeminiAPIKey     string
	GeminiModelID    string
	ReportModelID    string
	LLMRequestBudget time.Duration

	// Google Calendar meeting links
	CalendarCredentialsFile string
	CalendarID              string
	FallbackMeetLink        string

	// SendGrid Email Configuration
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		TokenSigningSecret: getEnv("TOKEN_SIGNING_SECRET", ""),
		TokenMaxAge:        getEnvAsDuration("TOKEN_MAX_AGE", time.Hour),

		AppointmentsBackend: strings.ToLower(strings.TrimSpace(getEnv("APPOINTMENTS_BACKEND", "file"))),
		AppointmentsDir:     getEnv("APPOINTMENTS_DIR", "appointments"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 24*time.Hour),

		UploadsDir:       getEnv("UPLOADS_DIR", "uploads"),
		TimezoneLocation: getEnv("TIMEZONE", "Asia/Kolkata"),

		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModelID:    getEnv("GEMINI_MODEL_ID", "gemini-2.5-flash"),
		ReportModelID:    getEnv("REPORT_MODEL_ID", "gemini-2.5-flash"),
		LLMRequestBudget: getEnvAsDuration("LLM_REQUEST_BUDGET", 30*time.Second),

		CalendarCredentialsFile: getEnv("CALENDAR_CREDENTIALS_FILE", ""),
		CalendarID:              getEnv("CALENDAR_ID", "primary"),
		FallbackMeetLink:        getEnv("FALLBACK_MEET_LINK", "https://meet.google.com/abc-defg-hij"),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Aarogya Health"),

		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}
}

// Validate enforces the startup-fatal settings. A process without the token
// signing secret or the Gemini key must not come up at all; per-request
// degradation is reserved for the calendar and email collaborators.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TokenSigningSecret) == "" {
		return errors.New("config: TOKEN_SIGNING_SECRET is required")
	}
	if strings.TrimSpace(c.GeminiAPIKey) == "" {
		return errors.New("config: GEMINI_API_KEY is required")
	}
	if c.AppointmentsBackend != "file" && c.AppointmentsBackend != "postgres" {
		return errors.New("config: APPOINTMENTS_BACKEND must be \"file\" or \"postgres\"")
	}
	if c.AppointmentsBackend == "postgres" && strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("config: DATABASE_URL is required when APPOINTMENTS_BACKEND=postgres")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
