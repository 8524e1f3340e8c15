package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/nfrund/sigboard/internal/session"
)

// Provider exposes configuration to the rest of the application.
type Provider interface {
	GetAppAddr() string
	GetAppBaseURL() string
	GetAPIBaseURL() string
	GetSessionSecret() string
	GetSessionMaxAge() int
	GetLogFormat() string
	GetLogLevel() string
	GetTokenFile() string
	GetExportDir() string
	GetTracingEnabled() bool
	GetTracingServiceName() string
	GetTracingZipkinURL() string
}

// Config holds all configuration for the application.
type Config struct {
	AppAddr            string
	AppBaseURL         string
	APIBaseURL         string
	SessionSecret      string
	SessionMaxAge      int
	LogFormat          string
	LogLevel           string
	TokenFile          string
	ExportDir          string
	TracingEnabled     bool
	TracingServiceName string
	TracingZipkinURL   string
}

const (
	defaultAppAddr       = ":8080"
	defaultSessionMaxAge = 86400 * 7 // 7 days
	defaultServiceName   = "sigboard"
	defaultZipkinURL     = "http://localhost:9411/api/v2/spans"
)

// New loads configuration from environment variables, reading a .env file
// first when one exists.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() *Config {
	return &Config{
		AppAddr:            getenv("APP_ADDR", defaultAppAddr),
		AppBaseURL:         getenv("APP_BASE_URL", "http://localhost:8080"),
		APIBaseURL:         os.Getenv("API_BASE_URL"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		SessionMaxAge:      getenvInt("SESSION_MAX_AGE", defaultSessionMaxAge),
		LogFormat:          getenv("LOG_FORMAT", "text"),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		TokenFile:          getenv("SIGBOARD_TOKEN_FILE", session.DefaultTokenPath()),
		ExportDir:          getenv("SIGBOARD_EXPORT_DIR", "."),
		TracingEnabled:     getenvBool("TRACING_ENABLED", false),
		TracingServiceName: getenv("TRACING_SERVICE_NAME", defaultServiceName),
		TracingZipkinURL:   getenv("TRACING_ZIPKIN_URL", defaultZipkinURL),
	}
}

// Validate reports missing required settings. The CLI needs only the API
// address; the server also needs a session secret.
func (c *Config) Validate(server bool) error {
	var errs []error
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("API_BASE_URL is not set"))
	}
	if server {
		if c.SessionSecret == "" {
			errs = append(errs, errors.New("SESSION_SECRET is not set"))
		} else if len(c.SessionSecret) < 32 {
			errs = append(errs, errors.New("SESSION_SECRET must be at least 32 characters"))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) GetAppAddr() string            { return c.AppAddr }
func (c *Config) GetAppBaseURL() string         { return c.AppBaseURL }
func (c *Config) GetAPIBaseURL() string         { return c.APIBaseURL }
func (c *Config) GetSessionSecret() string      { return c.SessionSecret }
func (c *Config) GetSessionMaxAge() int         { return c.SessionMaxAge }
func (c *Config) GetLogFormat() string          { return c.LogFormat }
func (c *Config) GetLogLevel() string           { return c.LogLevel }
func (c *Config) GetTokenFile() string          { return c.TokenFile }
func (c *Config) GetExportDir() string          { return c.ExportDir }
func (c *Config) GetTracingEnabled() bool       { return c.TracingEnabled }
func (c *Config) GetTracingServiceName() string { return c.TracingServiceName }
func (c *Config) GetTracingZipkinURL() string   { return c.TracingZipkinURL }

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func getenvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}
