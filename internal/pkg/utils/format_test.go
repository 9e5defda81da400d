package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		name     string
		meters   float64
		expected string
	}{
		{"zero", 0, "0 m"},
		{"meters rounded", 450.4, "450 m"},
		{"meters rounded up", 999.6, "1000 m"},
		{"exactly one km", 1000, "1.0 km"},
		{"kilometers one decimal", 3240, "3.2 km"},
		{"long distance", 128500, "128.5 km"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDistance(tt.meters))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		seconds  float64
		expected string
	}{
		{"zero", 0, "0 min"},
		{"under a minute truncates", 59, "0 min"},
		{"minutes only", 2700, "45 min"},
		{"exactly one hour", 3600, "1h 0min"},
		{"hours and minutes", 7500, "2h 5min"},
		{"truncates seconds", 3659, "1h 0min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.seconds))
		})
	}
}
