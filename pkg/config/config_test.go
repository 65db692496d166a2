package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("INTERVALS_ICU_ATHLETE_ID", "i12345")
	t.Setenv("INTERVALS_ICU_API_KEY", "secret")
	t.Setenv("INTERVALS_ICU_BASE_URL", "")
	t.Setenv("INTERVALS_ICU_TIMEOUT_SECONDS", "")

	cfg := LoadConfig()

	assert.Equal(t, "i12345", cfg.AthleteID)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("INTERVALS_ICU_ATHLETE_ID", "i12345")
	t.Setenv("INTERVALS_ICU_API_KEY", "secret")
	t.Setenv("INTERVALS_ICU_BASE_URL", "http://localhost:8080/api/v1")
	t.Setenv("INTERVALS_ICU_TIMEOUT_SECONDS", "5")

	cfg := LoadConfig()

	assert.Equal(t, "http://localhost:8080/api/v1", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoadConfigBadTimeout(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not a number", value: "soon"},
		{name: "zero", value: "0"},
		{name: "negative", value: "-3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("INTERVALS_ICU_TIMEOUT_SECONDS", tc.value)
			cfg := LoadConfig()
			assert.Equal(t, DefaultTimeout, cfg.Timeout)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		athleteID string
		apiKey    string
		wantErr   bool
	}{
		{name: "valid", athleteID: "i12345", apiKey: "secret", wantErr: false},
		{name: "missing athlete id", athleteID: "", apiKey: "secret", wantErr: true},
		{name: "missing api key", athleteID: "i12345", apiKey: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{AthleteID: tc.athleteID, APIKey: tc.apiKey}
			err := cfg.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
