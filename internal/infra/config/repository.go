package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	domainConfig "github.com/Yat-Muk/pulse/internal/domain/config"
	apperrors "github.com/Yat-Muk/pulse/internal/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// FileRepository 基於 YAML 文件的配置倉庫
type FileRepository struct {
	filePath     string
	mu           sync.Mutex
	logger       *zap.Logger
	cachedConfig *domainConfig.Config
	lastModTime  time.Time
}

func NewFileRepository(path string, logger *zap.Logger) *FileRepository {
	return &FileRepository{
		filePath: path,
		logger:   logger,
	}
}

// Path 配置文件路徑
func (r *FileRepository) Path() string {
	return r.filePath
}

// Exists 配置文件是否已存在
func (r *FileRepository) Exists() bool {
	_, err := os.Stat(r.filePath)
	return err == nil
}

// Load 加載配置，文件中缺失的字段保留默認值
func (r *FileRepository) Load(ctx context.Context) (*domainConfig.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stat, err := os.Stat(r.filePath)

	// 文件不存在 -> 返回默認配置
	if os.IsNotExist(err) {
		r.logger.Info("配置文件不存在，使用默認配置", zap.String("path", r.filePath))
		return domainConfig.DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("檢查配置文件狀態失敗: %w", err)
	}

	// 文件未變更時直接返回緩存副本
	if r.cachedConfig != nil && !stat.ModTime().After(r.lastModTime) {
		return r.cachedConfig.DeepCopy(), nil
	}

	content, err := os.ReadFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("讀取配置文件失敗: %w", err)
	}

	cfg := domainConfig.DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.Wrap(fmt.Errorf("%w: %v", apperrors.ErrConfigParseFailed, err), apperrors.CodeConfig, r.filePath)
	}

	r.cachedConfig = cfg.DeepCopy()
	r.lastModTime = stat.ModTime()

	r.logger.Debug("配置文件已加載",
		zap.String("path", r.filePath),
		zap.Time("mod_time", r.lastModTime),
	)
	return cfg, nil
}

// Save 保存配置到文件（原子寫入）
func (r *FileRepository) Save(ctx context.Context, cfg *domainConfig.Config) error {
	if cfg == nil {
		return fmt.Errorf("配置對象為空")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("序列化配置失敗: %w", err)
	}

	// 創建臨時文件 -> 寫入 -> Sync -> 關閉 -> Rename
	dir := filepath.Dir(r.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("創建配置目錄失敗: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "config.*.yaml.tmp")
	if err != nil {
		return fmt.Errorf("創建臨時文件失敗: %w", err)
	}
	tmpName := tmpFile.Name()

	writeSuccess := false
	defer func() {
		if !writeSuccess {
			tmpFile.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("寫入數據失敗: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("同步磁盤失敗: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("關閉臨時文件失敗: %w", err)
	}
	if err := os.Rename(tmpName, r.filePath); err != nil {
		return fmt.Errorf("替換配置文件失敗: %w", err)
	}

	// 可能包含 Redis 密碼 (600 - 僅所有者可讀寫)
	if err := os.Chmod(r.filePath, 0600); err != nil {
		r.logger.Warn("設置文件權限失敗", zap.Error(err))
	}

	writeSuccess = true

	r.cachedConfig = cfg.DeepCopy()
	if stat, err := os.Stat(r.filePath); err == nil {
		r.lastModTime = stat.ModTime()
	}
	return nil
}
