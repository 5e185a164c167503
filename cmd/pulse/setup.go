package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Yat-Muk/pulse/internal/application"
	domainConfig "github.com/Yat-Muk/pulse/internal/domain/config"
	"github.com/Yat-Muk/pulse/internal/domain/health"
	infraConfig "github.com/Yat-Muk/pulse/internal/infra/config"
	"github.com/Yat-Muk/pulse/internal/infra/mirror"
	"github.com/Yat-Muk/pulse/internal/infra/monitor"
	"github.com/Yat-Muk/pulse/internal/pkg/appctx"
	"github.com/Yat-Muk/pulse/internal/pkg/logger"
	"github.com/Yat-Muk/pulse/internal/pkg/sanitizer"
	"github.com/Yat-Muk/pulse/internal/tui/handlers"
	"github.com/Yat-Muk/pulse/internal/tui/state"
	"go.uber.org/zap"
)

const mirrorPingTimeout = 2 * time.Second

// options 命令行覆蓋項，空值表示不覆蓋
type options struct {
	WorkDir    string
	ConfigPath string
	Endpoint   string
	Subcluster string
	Listen     string
	Debug      bool
	Console    bool
}

type AppDependencies struct {
	Log           *zap.Logger
	Paths         *appctx.Paths
	Config        *domainConfig.Config
	Store         *health.Store
	Service       *application.RefreshService
	Mirror        *mirror.RedisMirror
	HandlerConfig *handlers.Config
}

// Close 釋放外部連接並刷新日誌
func (d *AppDependencies) Close() {
	if d.Service != nil {
		d.Service.Close()
	}
	if d.Mirror != nil {
		if err := d.Mirror.Close(); err != nil {
			d.Log.Debug("關閉 Redis 連接失敗", zap.Error(err))
		}
		d.Mirror = nil
	}
	_ = d.Log.Sync()
}

// loadConfig 依次應用: 配置文件 -> .env -> PULSE_* 環境變量 -> 命令行
func loadConfig(ctx context.Context, opts options, paths *appctx.Paths, log *zap.Logger) (*domainConfig.Config, error) {
	configPath := paths.ConfigFile
	if opts.ConfigPath != "" {
		configPath = opts.ConfigPath
	}

	repo := infraConfig.NewFileRepository(configPath, log)
	configSvc := application.NewConfigService(repo, paths.EnvFile, log)

	if _, err := configSvc.SaveWithDefaults(ctx); err != nil {
		log.Warn("初始化保存配置失敗", zap.String("path", configPath), zap.Error(err))
	}

	return configSvc.Resolve(ctx, application.Overrides{
		Endpoint:   opts.Endpoint,
		Subcluster: opts.Subcluster,
		Listen:     opts.Listen,
		Debug:      opts.Debug,
	})
}

// newLogger 按配置創建日誌
func newLogger(cfg *domainConfig.Config, paths *appctx.Paths, console bool) (*zap.Logger, error) {
	logConfig := logger.DefaultConfig()
	logConfig.OutputPath = paths.LogFile
	logConfig.Level = cfg.Log.Level
	logConfig.MaxSize = cfg.Log.MaxSize
	logConfig.MaxBackups = cfg.Log.MaxBackups
	logConfig.MaxAge = cfg.Log.MaxAge
	logConfig.Compress = cfg.Log.Compress
	logConfig.Console = console
	logConfig.Fields = map[string]string{"subcluster": cfg.Endpoint.Subcluster}
	return logger.New(logConfig)
}

func initializeDependencies(opts options, paths *appctx.Paths) (*AppDependencies, error) {
	ctx := context.Background()

	// ==========================================
	// 1. 配置 (日誌級別來自配置，加載階段不記錄)
	// ==========================================
	cfg, err := loadConfig(ctx, opts, paths, zap.NewNop())
	if err != nil {
		return nil, fmt.Errorf("加載配置失敗: %w", err)
	}

	log, err := newLogger(cfg, paths, opts.Console)
	if err != nil {
		return nil, fmt.Errorf("日誌初始化失敗: %w", err)
	}

	endpointURL, err := cfg.Endpoint.URL()
	if err != nil {
		return nil, fmt.Errorf("構建刷新地址失敗: %w", err)
	}
	log.Info("配置已加載",
		logger.SafeURL("endpoint", endpointURL),
		zap.Duration("timeout", cfg.Endpoint.Timeout),
		zap.Bool("mirror", cfg.MirrorEnabled()),
	)

	// ==========================================
	// 2. 基礎設施層
	// ==========================================
	client := monitor.NewClient(endpointURL, log, monitor.WithTimeout(cfg.Endpoint.Timeout))
	store := health.NewStore()

	var refreshOpts []application.RefreshOption
	var redisMirror *mirror.RedisMirror
	if cfg.MirrorEnabled() {
		redisMirror = mirror.NewRedisMirror(cfg.Redis, log)
		log.Info("啟用 Redis 快照鏡像",
			zap.Stringer("mirror", redisMirror),
			zap.String("key", redisMirror.Key(cfg.Endpoint.Subcluster)),
			logger.SafePassword("password", cfg.Redis.Password),
			zap.Duration("ttl", cfg.Redis.TTL),
		)

		pingCtx, cancel := context.WithTimeout(ctx, mirrorPingTimeout)
		if err := redisMirror.Ping(pingCtx); err != nil {
			log.Warn("Redis 暫不可用，鏡像寫入失敗時僅記錄日誌", zap.Error(err))
		}
		cancel()

		refreshOpts = append(refreshOpts, application.WithMirror(redisMirror, cfg.Endpoint.Subcluster))
	}

	// ==========================================
	// 3. 應用服務層
	// ==========================================
	svc := application.NewRefreshService(store, client, log, refreshOpts...)

	// ==========================================
	// 4. 狀態管理與 TUI Handler 配置
	// ==========================================
	stateMgr := state.NewManager(&state.Config{
		Log:        log,
		Subcluster: cfg.Endpoint.Subcluster,
		Endpoint:   sanitizer.URL(client.URL()),
		Snapshot:   store.Current(),
		Version:    store.Version(),
	})

	handlerCfg := &handlers.Config{
		Log:            log,
		StateMgr:       stateMgr,
		Service:        svc,
		RefreshOnStart: cfg.Refresh.OnStart,
	}

	return &AppDependencies{
		Log:           log,
		Paths:         paths,
		Config:        cfg,
		Store:         store,
		Service:       svc,
		Mirror:        redisMirror,
		HandlerConfig: handlerCfg,
	}, nil
}
