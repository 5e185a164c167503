package style

import (
	"testing"

	"github.com/Yat-Muk/pulse/internal/domain/health"
	"github.com/stretchr/testify/assert"
)

func TestStatusBadge(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"OK", "✓ OK"},
		{"WARN", "! WARN"},
		{"FATAL", "✗ FATAL"},
		{"DEGRADED", "? DEGRADED"},
		{"", "?"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusBadge(tt.status))
		})
	}
}

func TestLevelColor(t *testing.T) {
	assert.Equal(t, Success, LevelColor(health.LevelOK))
	assert.Equal(t, Warning, LevelColor(health.LevelWarn))
	assert.Equal(t, Error, LevelColor(health.LevelFatal))
	assert.Equal(t, StatusOrange, LevelColor(health.LevelUnknown))
}
