package state

import (
	"github.com/Yat-Muk/pulse/internal/domain/health"
	"go.uber.org/zap"
)

// Config 初始化配置
type Config struct {
	Log        *zap.Logger
	Subcluster string
	Endpoint   string
	Snapshot   health.Snapshot // 啟動時存儲中的快照
	Version    uint64
}

// Manager 狀態管理器 (State Container)
type Manager struct {
	log *zap.Logger

	ui        *UIState
	dashboard *DashboardState

	subcluster string
	endpoint   string
}

// NewManager 創建狀態管理器
func NewManager(cfg *Config) *Manager {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	m := &Manager{
		log:        log,
		subcluster: cfg.Subcluster,
		endpoint:   cfg.Endpoint,
	}

	m.ui = NewUIState()
	m.dashboard = NewDashboardState()
	m.SyncSnapshot(cfg.Snapshot, cfg.Version)

	return m
}

// SyncSnapshot 安裝新快照到表格並按當前窗口重新佈局
func (m *Manager) SyncSnapshot(snap health.Snapshot, version uint64) {
	m.dashboard.Sync(snap, version)
	m.dashboard.Resize(m.ui.Width, m.ui.Height)
}

// Resize 窗口尺寸變化
func (m *Manager) Resize(width, height int) {
	m.ui.UpdateSize(width, height)
	m.dashboard.Resize(width, height)
}

// Getters 訪問器

func (m *Manager) UI() *UIState               { return m.ui }
func (m *Manager) Dashboard() *DashboardState { return m.dashboard }
func (m *Manager) Subcluster() string         { return m.subcluster }
func (m *Manager) Endpoint() string           { return m.endpoint }
func (m *Manager) Log() *zap.Logger           { return m.log }
