package mirror

import (
	"context"
	"testing"
	"time"

	domainConfig "github.com/Yat-Muk/pulse/internal/domain/config"
	"github.com/Yat-Muk/pulse/internal/domain/health"
	apperrors "github.com/Yat-Muk/pulse/internal/pkg/errors"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisMirror_Key(t *testing.T) {
	m := NewRedisMirror(domainConfig.RedisConfig{Addr: "127.0.0.1:6379"}, zap.NewNop())
	defer m.Close()
	assert.Equal(t, "pulse:snapshot:secondary_subcluster_1", m.Key("secondary_subcluster_1"))

	custom := NewRedisMirror(domainConfig.RedisConfig{Addr: "127.0.0.1:6379", KeyPrefix: "vertica:"}, zap.NewNop())
	defer custom.Close()
	assert.Equal(t, "vertica:primary", custom.Key("primary"))
	assert.Equal(t, "redis(127.0.0.1:6379)", custom.String())
}

// 端口 1 上沒有服務，用於驗證錯誤包裝
func TestRedisMirror_Unreachable(t *testing.T) {
	m := NewRedisMirror(domainConfig.RedisConfig{Addr: "127.0.0.1:1"}, zap.NewNop())
	defer m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := m.Publish(ctx, "s", health.DefaultSnapshot())
	assert.ErrorIs(t, err, apperrors.ErrMirrorFailed)

	assert.ErrorIs(t, m.Ping(ctx), apperrors.ErrMirrorFailed)
}

func TestRedisMirror_Publish(t *testing.T) {
	srv := miniredis.RunT(t)

	m := NewRedisMirror(domainConfig.RedisConfig{Addr: srv.Addr(), TTL: time.Hour}, zap.NewNop())
	defer m.Close()

	snap := health.Snapshot{
		Groups: []health.Group{
			{Name: "sessions", Results: []health.CheckResult{{Message: "2 active", Status: "WARN"}}},
			{Name: "error_messages", Results: nil},
		},
		LastUpdated: "2024-05-01 10:00:00",
	}

	ctx := context.Background()
	require.NoError(t, m.Ping(ctx))
	require.NoError(t, m.Publish(ctx, "secondary_subcluster_1", snap))

	key := "pulse:snapshot:secondary_subcluster_1"
	got, err := srv.Get(key)
	require.NoError(t, err)
	assert.Equal(t,
		`{"sessions":[{"message":"2 active","status":"WARN"}],"error_messages":[],"last_updated":"2024-05-01 10:00:00"}`,
		got)
	assert.Equal(t, time.Hour, srv.TTL(key))

	// 寫回的值能被同一解析器讀出
	parsed, err := health.ParseSnapshot([]byte(got))
	require.NoError(t, err)
	assert.Equal(t, []string{"sessions", "error_messages"}, parsed.Names())

	srv.FastForward(time.Hour)
	assert.False(t, srv.Exists(key))
}

// TTL 為 0 時鍵不過期，後一次寫入覆蓋前一次
func TestRedisMirror_PublishNoExpiry(t *testing.T) {
	srv := miniredis.RunT(t)

	m := NewRedisMirror(domainConfig.RedisConfig{Addr: srv.Addr(), KeyPrefix: "vertica:"}, zap.NewNop())
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Publish(ctx, "primary", health.DefaultSnapshot()))
	require.NoError(t, m.Publish(ctx, "primary", health.Snapshot{}))

	assert.Equal(t, time.Duration(0), srv.TTL("vertica:primary"))
	got, err := srv.Get("vertica:primary")
	require.NoError(t, err)
	assert.Equal(t, "{}", got)
}

func TestRedisMirror_ServerError(t *testing.T) {
	srv := miniredis.RunT(t)
	srv.SetError("READONLY replica")

	m := NewRedisMirror(domainConfig.RedisConfig{Addr: srv.Addr()}, zap.NewNop())
	defer m.Close()

	err := m.Publish(context.Background(), "s", health.DefaultSnapshot())
	assert.ErrorIs(t, err, apperrors.ErrMirrorFailed)
}
