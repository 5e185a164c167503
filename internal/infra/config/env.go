package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	domainConfig "github.com/Yat-Muk/pulse/internal/domain/config"
	apperrors "github.com/Yat-Muk/pulse/internal/pkg/errors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// 支持的環境變量
const (
	EnvEndpoint       = "PULSE_ENDPOINT"
	EnvEndpointPath   = "PULSE_ENDPOINT_PATH"
	EnvSubcluster     = "PULSE_SUBCLUSTER"
	EnvTimeout        = "PULSE_TIMEOUT"
	EnvRefreshOnStart = "PULSE_REFRESH_ON_START"
	EnvLogLevel       = "PULSE_LOG_LEVEL"
	EnvRedisAddr      = "PULSE_REDIS_ADDR"
	EnvRedisPassword  = "PULSE_REDIS_PASSWORD"
	EnvRedisDB        = "PULSE_REDIS_DB"
	EnvListen         = "PULSE_LISTEN"
)

// LoadEnvFile 加載 .env 文件，已存在的環境變量不會被覆蓋
func LoadEnvFile(path string, logger *zap.Logger) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return apperrors.Wrap(fmt.Errorf("%w: %v", apperrors.ErrConfigParseFailed, err), apperrors.CodeConfig, path)
	}
	logger.Debug("已加載 .env 文件", zap.String("path", path))
	return nil
}

// ApplyEnv 用 PULSE_* 環境變量覆蓋配置
func ApplyEnv(cfg *domainConfig.Config) error {
	setString(EnvEndpoint, &cfg.Endpoint.BaseURL)
	setString(EnvEndpointPath, &cfg.Endpoint.Path)
	setString(EnvSubcluster, &cfg.Endpoint.Subcluster)
	setString(EnvLogLevel, &cfg.Log.Level)
	setString(EnvRedisAddr, &cfg.Redis.Addr)
	setString(EnvRedisPassword, &cfg.Redis.Password)
	setString(EnvListen, &cfg.Server.Listen)

	if v, ok := lookup(EnvTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return envError(EnvTimeout, v, err)
		}
		cfg.Endpoint.Timeout = d
	}

	if v, ok := lookup(EnvRefreshOnStart); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError(EnvRefreshOnStart, v, err)
		}
		cfg.Refresh.OnStart = b
	}

	if v, ok := lookup(EnvRedisDB); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvRedisDB, v, err)
		}
		cfg.Redis.DB = n
	}

	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func setString(key string, dst *string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func envError(key, val string, err error) error {
	return apperrors.Wrap(fmt.Errorf("%w: %s=%q: %v", apperrors.ErrConfigParseFailed, key, val, err), apperrors.CodeConfig, "環境變量無效")
}
