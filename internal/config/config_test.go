package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, DefaultGPSURL, cfg.GPSURL)
	require.Equal(t, 10*time.Second, cfg.GPSTimeout)
	require.True(t, cfg.GPSInsecureSkipVerify)
	require.Equal(t, "@every 1m", cfg.GPSProbeSchedule)
	require.Empty(t, cfg.JWTSecret)
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GPS_URL", "https://gps.internal:2001/Manager/ServicesGps.svc")
	t.Setenv("GPS_TIMEOUT", "3s")
	t.Setenv("GPS_INSECURE_SKIP_VERIFY", "false")
	t.Setenv("GPS_PROBE_SCHEDULE", "")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := NewConfig()
	require.NoError(t, err)

	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, "https://gps.internal:2001/Manager/ServicesGps.svc", cfg.GPSURL)
	require.Equal(t, 3*time.Second, cfg.GPSTimeout)
	require.False(t, cfg.GPSInsecureSkipVerify)
	require.Empty(t, cfg.GPSProbeSchedule)
	require.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestNewConfig_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad timeout":    {"GPS_TIMEOUT": "soon"},
		"zero timeout":   {"GPS_TIMEOUT": "0s"},
		"bad tls toggle": {"GPS_INSECURE_SKIP_VERIFY": "maybe"},
		"empty url":      {"GPS_URL": ""},
		"relative url":   {"GPS_URL": "/Manager/ServicesGps.svc"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := NewConfig()
			require.Error(t, err)
		})
	}
}
