package application

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Yat-Muk/pulse/internal/domain/config"
	infraConfig "github.com/Yat-Muk/pulse/internal/infra/config"
)

// Overrides 命令行覆蓋項，空值表示不覆蓋
type Overrides struct {
	Endpoint   string
	Subcluster string
	Listen     string
	Debug      bool
}

// existenceChecker 可判斷配置文件是否存在的倉庫
type existenceChecker interface {
	Exists() bool
}

// ConfigService 配置服務
type ConfigService struct {
	repo    config.Repository
	envFile string
	logger  *zap.Logger
	mu      sync.Mutex
}

// NewConfigService 創建配置服務，envFile 為空時不加載 .env
func NewConfigService(repo config.Repository, envFile string, logger *zap.Logger) *ConfigService {
	return &ConfigService{
		repo:    repo,
		envFile: envFile,
		logger:  logger,
	}
}

// GetConfig 獲取配置文件中的配置 (未應用覆蓋)
func (s *ConfigService) GetConfig(ctx context.Context) (*config.Config, error) {
	return s.repo.Load(ctx)
}

// Resolve 生成運行時配置
// 順序：配置文件 -> .env -> PULSE_* 環境變量 -> 命令行，最後統一驗證
func (s *ConfigService) Resolve(ctx context.Context, o Overrides) (*config.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 1. 配置文件
	cfg, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("加載配置失敗: %w", err)
	}

	// 2. 環境變量
	if err := infraConfig.LoadEnvFile(s.envFile, s.logger); err != nil {
		return nil, err
	}
	if err := infraConfig.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	// 3. 命令行
	if o.Endpoint != "" {
		cfg.Endpoint.BaseURL = o.Endpoint
	}
	if o.Subcluster != "" {
		cfg.Endpoint.Subcluster = o.Subcluster
	}
	if o.Listen != "" {
		cfg.Server.Listen = o.Listen
	}
	if o.Debug {
		cfg.Log.Level = "debug"
	}

	// 4. 驗證
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveWithDefaults 配置文件不存在時寫出默認配置，便於用戶編輯
// 返回是否寫入了文件
func (s *ConfigService) SaveWithDefaults(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ec, ok := s.repo.(existenceChecker); ok && ec.Exists() {
		return false, nil
	}

	cfg, err := s.repo.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("加載配置失敗: %w", err)
	}
	if err := s.repo.Save(ctx, cfg); err != nil {
		return false, fmt.Errorf("保存配置失敗: %w", err)
	}

	s.logger.Info("已寫出默認配置")
	return true, nil
}
