package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	domainConfig "github.com/Yat-Muk/pulse/internal/domain/config"
	apperrors "github.com/Yat-Muk/pulse/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvEndpoint, "http://monitor:5500")
	t.Setenv(EnvSubcluster, "primary")
	t.Setenv(EnvTimeout, "20s")
	t.Setenv(EnvRefreshOnStart, "true")
	t.Setenv(EnvRedisAddr, "cache:6379")
	t.Setenv(EnvRedisDB, "2")
	t.Setenv(EnvLogLevel, "")

	cfg := domainConfig.DefaultConfig()
	require.NoError(t, ApplyEnv(cfg))

	assert.Equal(t, "http://monitor:5500", cfg.Endpoint.BaseURL)
	assert.Equal(t, "/globalrefresh", cfg.Endpoint.Path)
	assert.Equal(t, "primary", cfg.Endpoint.Subcluster)
	assert.Equal(t, 20*time.Second, cfg.Endpoint.Timeout)
	assert.True(t, cfg.Refresh.OnStart)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	// 空值不覆蓋
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, val string
	}{
		{EnvTimeout, "soon"},
		{EnvRefreshOnStart, "maybe"},
		{EnvRedisDB, "zero"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			err := ApplyEnv(domainConfig.DefaultConfig())
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrConfigParseFailed)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("文件不存在", func(t *testing.T) {
		assert.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env"), zap.NewNop()))
		assert.NoError(t, LoadEnvFile("", zap.NewNop()))
	})

	t.Run("加載並應用", func(t *testing.T) {
		t.Setenv(EnvSubcluster, "")
		os.Unsetenv(EnvSubcluster)

		envPath := filepath.Join(dir, ".env")
		require.NoError(t, os.WriteFile(envPath, []byte("PULSE_SUBCLUSTER=from_dotenv\n"), 0600))
		require.NoError(t, LoadEnvFile(envPath, zap.NewNop()))

		cfg := domainConfig.DefaultConfig()
		require.NoError(t, ApplyEnv(cfg))
		assert.Equal(t, "from_dotenv", cfg.Endpoint.Subcluster)
	})
}
