package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Yat-Muk/pulse/internal/domain/validator"
	apperrors "github.com/Yat-Muk/pulse/internal/pkg/errors"
)

// Repository 配置倉庫接口
type Repository interface {
	// Load 加載配置
	Load(ctx context.Context) (*Config, error)

	// Save 保存配置
	Save(ctx context.Context, cfg *Config) error
}

// Config 主配置結構
type Config struct {
	Endpoint EndpointConfig `yaml:"endpoint"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	Log      LogConfig      `yaml:"log"`
	Redis    RedisConfig    `yaml:"redis"`
	Server   ServerConfig   `yaml:"server"`
}

// EndpointConfig 監控端點
type EndpointConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Path       string        `yaml:"path"`
	Subcluster string        `yaml:"subcluster_name"`
	Timeout    time.Duration `yaml:"timeout"` // 0 表示一直等待
}

// RefreshConfig 刷新行為
type RefreshConfig struct {
	OnStart bool `yaml:"on_start"` // 啟動時自動刷新一次
}

// LogConfig 日誌配置
type LogConfig struct {
	Level      string `yaml:"level"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// RedisConfig 快照鏡像，Addr 為空時關閉
type RedisConfig struct {
	Addr      string        `yaml:"addr"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	KeyPrefix string        `yaml:"key_prefix"`
	TTL       time.Duration `yaml:"ttl"`
}

// ServerConfig HTTP 只讀接口
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// DefaultConfig 返回默認配置
func DefaultConfig() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			BaseURL:    "http://localhost:5500",
			Path:       "/globalrefresh",
			Subcluster: "secondary_subcluster_1",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		},
		Redis: RedisConfig{
			KeyPrefix: "pulse:snapshot:",
			TTL:       24 * time.Hour,
		},
		Server: ServerConfig{
			Listen: ":8080",
		},
	}
}

// URL 拼接完整的刷新地址
func (e EndpointConfig) URL() (string, error) {
	u, err := url.Parse(strings.TrimRight(e.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("解析 base_url 失敗: %w", err)
	}

	path := e.Path
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u.Path += path

	q := u.Query()
	q.Set("subcluster_name", e.Subcluster)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// MirrorEnabled 是否配置了 Redis 鏡像
func (c *Config) MirrorEnabled() bool {
	return c.Redis.Addr != ""
}

// Validate 驗證配置
func (c *Config) Validate() error {
	var problems []string

	u, err := url.Parse(c.Endpoint.BaseURL)
	switch {
	case err != nil:
		problems = append(problems, fmt.Sprintf("endpoint.base_url 無法解析: %v", err))
	case u.Scheme != "http" && u.Scheme != "https":
		problems = append(problems, "endpoint.base_url 必須是 http(s) 地址")
	case u.Host == "":
		problems = append(problems, "endpoint.base_url 缺少主機")
	}

	if err := validator.ValidateSubcluster(c.Endpoint.Subcluster); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Endpoint.Timeout < 0 {
		problems = append(problems, "endpoint.timeout 不能為負數")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level 無效: %q", c.Log.Level))
	}

	if c.Server.Listen != "" {
		if err := validator.ValidateHostPort(c.Server.Listen, "server.listen"); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if c.MirrorEnabled() {
		if err := validator.ValidateHostPort(c.Redis.Addr, "redis.addr"); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if err := validator.ValidateKeyPrefix(c.Redis.KeyPrefix); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Redis.TTL < 0 {
		problems = append(problems, "redis.ttl 不能為負數")
	}
	if c.Redis.DB < 0 {
		problems = append(problems, "redis.db 不能為負數")
	}

	if len(problems) > 0 {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, apperrors.CodeConfig, strings.Join(problems, "; "))
	}
	return nil
}

// DeepCopy 深拷貝配置
// 結構體只含值類型字段，直接複製即可
func (c *Config) DeepCopy() *Config {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
