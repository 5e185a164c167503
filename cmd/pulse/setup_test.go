package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Yat-Muk/pulse/internal/pkg/appctx"
	apperrors "github.com/Yat-Muk/pulse/internal/pkg/errors"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupTestEnvironment 創建測試用的臨時環境
func setupTestEnvironment(t *testing.T) *appctx.Paths {
	t.Helper()

	for _, key := range []string{
		"PULSE_ENDPOINT", "PULSE_ENDPOINT_PATH", "PULSE_SUBCLUSTER", "PULSE_TIMEOUT",
		"PULSE_REFRESH_ON_START", "PULSE_LOG_LEVEL", "PULSE_REDIS_ADDR",
		"PULSE_REDIS_PASSWORD", "PULSE_REDIS_DB", "PULSE_LISTEN",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	paths, err := appctx.NewPaths(t.TempDir())
	require.NoError(t, err, "Failed to create test paths")
	return paths
}

func TestLoadConfig_Defaults(t *testing.T) {
	paths := setupTestEnvironment(t)

	cfg, err := loadConfig(context.Background(), options{}, paths, zap.NewNop())
	require.NoError(t, err)

	url, err := cfg.Endpoint.URL()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5500/globalrefresh?subcluster_name=secondary_subcluster_1", url)

	// 首次運行寫出默認配置
	_, err = os.Stat(paths.ConfigFile)
	assert.NoError(t, err)
}

func TestLoadConfig_Precedence(t *testing.T) {
	paths := setupTestEnvironment(t)

	require.NoError(t, os.WriteFile(paths.ConfigFile, []byte(`
endpoint:
  base_url: http://file:5500
  subcluster_name: from_file
log:
  level: warn
`), 0600))
	require.NoError(t, os.WriteFile(paths.EnvFile, []byte("PULSE_SUBCLUSTER=from_env\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("PULSE_SUBCLUSTER") })

	cfg, err := loadConfig(context.Background(), options{
		Endpoint: "http://flag:5500",
		Debug:    true,
	}, paths, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "http://flag:5500", cfg.Endpoint.BaseURL)
	assert.Equal(t, "from_env", cfg.Endpoint.Subcluster)
	assert.Equal(t, "debug", cfg.Log.Level)

	cfg, err = loadConfig(context.Background(), options{Subcluster: "from_flag"}, paths, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "from_flag", cfg.Endpoint.Subcluster)
	assert.Equal(t, "http://file:5500", cfg.Endpoint.BaseURL)
}

func TestLoadConfig_Invalid(t *testing.T) {
	paths := setupTestEnvironment(t)

	_, err := loadConfig(context.Background(), options{Endpoint: "ftp://nope"}, paths, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfigInvalid)
}

func TestInitializeDependencies(t *testing.T) {
	paths := setupTestEnvironment(t)

	deps, err := initializeDependencies(options{}, paths)
	require.NoError(t, err)
	defer deps.Close()

	assert.NotNil(t, deps.Service)
	assert.Nil(t, deps.Mirror)
	assert.Len(t, deps.Service.Rows(), 6)
	assert.Same(t, deps.Service, deps.HandlerConfig.Service)
	assert.Len(t, deps.HandlerConfig.StateMgr.Dashboard().Rows, 6)
}

func TestInitializeDependencies_WithMirror(t *testing.T) {
	paths := setupTestEnvironment(t)
	t.Setenv("PULSE_REDIS_ADDR", "127.0.0.1:1")

	// Redis 不可用不影響啟動
	deps, err := initializeDependencies(options{}, paths)
	require.NoError(t, err)
	defer deps.Close()

	assert.NotNil(t, deps.Mirror)
}

// Close 在斷開 Redis 前寫完待寫的快照
func TestAppDependencies_CloseFlushesMirror(t *testing.T) {
	paths := setupTestEnvironment(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"sessions":[{"message":"2 active","status":"WARN"}]}`))
	}))
	defer upstream.Close()

	rdb := miniredis.RunT(t)
	t.Setenv("PULSE_REDIS_ADDR", rdb.Addr())

	deps, err := initializeDependencies(options{Endpoint: upstream.URL}, paths)
	require.NoError(t, err)

	require.True(t, deps.Service.Refresh(context.Background()).OK())
	deps.Close()

	got, err := rdb.Get("pulse:snapshot:secondary_subcluster_1")
	require.NoError(t, err)
	assert.Equal(t, `{"sessions":[{"message":"2 active","status":"WARN"}]}`, got)
}
