package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Yat-Muk/pulse/internal/application"
	"github.com/Yat-Muk/pulse/internal/domain/health"
	apperrors "github.com/Yat-Muk/pulse/internal/pkg/errors"
	"github.com/Yat-Muk/pulse/internal/tui/msg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFetcher struct {
	snap  health.Snapshot
	err   error
	calls int
}

func (f *stubFetcher) Fetch(_ context.Context) (health.Snapshot, error) {
	f.calls++
	return f.snap, f.err
}

func newService(f application.Fetcher) *application.RefreshService {
	return application.NewRefreshService(health.NewStore(), f, zap.NewNop())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{"Zero", 0, "0ms"},
		{"Millis", 120 * time.Millisecond, "120ms"},
		{"Seconds", 1500 * time.Millisecond, "1.5s"},
		{"Minutes", 90*time.Second + 300*time.Millisecond, "1m30s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDuration(tt.input))
		})
	}
}

func TestRefreshCmd(t *testing.T) {
	f := &stubFetcher{snap: health.Snapshot{Groups: []health.Group{
		{Name: "sessions", Results: []health.CheckResult{{Message: "2 active", Status: "WARN"}}},
	}}}
	svc := newService(f)
	b := NewCommandBuilder(zap.NewNop(), svc)

	out := b.RefreshCmd()()
	done, ok := out.(msg.RefreshDoneMsg)
	require.True(t, ok)
	assert.True(t, done.Result.OK())
	assert.Equal(t, 1, done.Result.Rows)
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, uint64(1), svc.Store().Version())
}

func TestRefreshCmd_NilService(t *testing.T) {
	b := NewCommandBuilder(nil, nil)

	done := b.RefreshCmd()().(msg.RefreshDoneMsg)
	assert.False(t, done.Result.OK())
	assert.Equal(t, apperrors.CodeFetch, apperrors.CodeOf(done.Result.Err))
}

func TestRefreshStatus(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 5, 0, time.UTC)

	ok := application.RefreshResult{Rows: 6, At: at, Duration: 40 * time.Millisecond}
	assert.Equal(t, "Updated 10:00:05 · 6 rows · 40ms", RefreshStatus(ok))

	failed := application.RefreshResult{Err: errors.New("boom"), At: at}
	assert.Empty(t, RefreshStatus(failed))
}
