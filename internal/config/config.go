package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultGPSURL is the card-management backend the gateway was built against.
const DefaultGPSURL = "https://10.6.101.233:2001/Manager/ServicesGps.svc"

// Config holds application configuration
type Config struct {
	Port     string
	LogLevel string

	GPSURL                string
	GPSTimeout            time.Duration
	GPSInsecureSkipVerify bool
	GPSProbeSchedule      string

	// JWTSecret enables bearer auth on /api routes when non-empty.
	JWTSecret string
}

// NewConfig loads configuration from environment variables, reading a .env file first if present
func NewConfig() (*Config, error) {
	// .env is optional; real environment variables always win
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("GPS_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GPS_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("GPS_TIMEOUT must be positive, got %s", timeout)
	}

	insecure, err := strconv.ParseBool(getEnv("GPS_INSECURE_SKIP_VERIFY", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid GPS_INSECURE_SKIP_VERIFY: %w", err)
	}

	cfg := &Config{
		Port:                  getEnv("PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "INFO"),
		GPSURL:                getEnv("GPS_URL", DefaultGPSURL),
		GPSTimeout:            timeout,
		GPSInsecureSkipVerify: insecure,
		GPSProbeSchedule:      getEnv("GPS_PROBE_SCHEDULE", "@every 1m"),
		JWTSecret:             getEnv("JWT_SECRET", ""),
	}

	if cfg.GPSURL == "" {
		return nil, fmt.Errorf("GPS_URL is required")
	}
	u, err := url.Parse(cfg.GPSURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("GPS_URL is not a valid absolute URL: %q", cfg.GPSURL)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
