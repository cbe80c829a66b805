package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Valid(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   bool
	}{
		{"processing", StatusProcessing, true},
		{"ready", StatusReady, true},
		{"failed", StatusFailed, true},
		{"empty", Status(""), false},
		{"legacy lowercase", Status("processed"), false},
		{"arbitrary", Status("DONE"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Valid())
		})
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusProcessing.Terminal())
	assert.True(t, StatusReady.Terminal())
	assert.True(t, StatusFailed.Terminal())
}

func TestNormaliseStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Status
	}{
		{"canonical processing", "PROCESSING", StatusProcessing},
		{"canonical ready", "READY", StatusReady},
		{"canonical failed", "FAILED", StatusFailed},
		{"legacy uploaded", "uploaded", StatusProcessing},
		{"legacy processed", "processed", StatusReady},
		{"legacy error", "error", StatusFailed},
		{"lowercase ready", "ready", StatusReady},
		{"unknown maps to failed", "half-done", StatusFailed},
		{"empty maps to failed", "", StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormaliseStatus(tt.raw))
		})
	}
}
