package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWorseOf(t *testing.T) {
	tests := []struct {
		name     string
		a, b     MetricStatus
		expected MetricStatus
	}{
		{"healthy vs warning", MetricStatusHealthy, MetricStatusWarning, MetricStatusWarning},
		{"warning vs critical", MetricStatusWarning, MetricStatusCritical, MetricStatusCritical},
		{"critical vs healthy", MetricStatusCritical, MetricStatusHealthy, MetricStatusCritical},
		{"equal", MetricStatusWarning, MetricStatusWarning, MetricStatusWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WorseOf(tt.a, tt.b))
		})
	}
}

func TestServiceStatusImpliedSeverity(t *testing.T) {
	assert.Equal(t, MetricStatusHealthy, ServiceOnline.ImpliedSeverity())
	assert.Equal(t, MetricStatusWarning, ServiceDegraded.ImpliedSeverity())
	assert.Equal(t, MetricStatusCritical, ServiceOffline.ImpliedSeverity())
}

func TestValidLogLevel(t *testing.T) {
	for _, l := range KnownLogLevels() {
		assert.True(t, ValidLogLevel(l))
	}

	assert.False(t, ValidLogLevel("debug"))
	assert.False(t, ValidLogLevel(""))
}

func TestDurationUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"duration string", `"30s"`, 30 * time.Second, false},
		{"nanosecond count", `5000000000`, 5 * time.Second, false},
		{"bad string", `"not-a-duration"`, 0, true},
		{"bool", `true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration

			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, time.Duration(d))
		})
	}
}

func TestDurationMarshalJSON(t *testing.T) {
	out, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(out))
}

func TestDurationUnmarshalYAML(t *testing.T) {
	var cfg struct {
		Interval Duration `yaml:"interval"`
	}

	require.NoError(t, yaml.Unmarshal([]byte("interval: 45s\n"), &cfg))
	assert.Equal(t, 45*time.Second, time.Duration(cfg.Interval))

	err := yaml.Unmarshal([]byte("interval: nope\n"), &cfg)
	require.Error(t, err)
}

func TestErrorResponseShape(t *testing.T) {
	resp := ErrorResponse{
		Error: ErrorDetail{
			Code:      ErrCodeValidation,
			Message:   "invalid limit: must be between 1 and 1000",
			Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	out, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.Contains(t, string(out), `"code":"VALIDATION_ERROR"`)
	assert.NotContains(t, string(out), `"details"`)
}

func TestDegradedDataErrorUnwrap(t *testing.T) {
	cause := assert.AnError
	err := &DegradedDataError{Cause: cause, Fallback: "snapshot"}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "degraded")
}
