package model

import (
	"github.com/Yat-Muk/pulse/internal/application"
	"github.com/Yat-Muk/pulse/internal/domain/health"
	"github.com/Yat-Muk/pulse/internal/tui/handlers"
	"github.com/Yat-Muk/pulse/internal/tui/msg"
	"github.com/Yat-Muk/pulse/internal/tui/state"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Router 事件路由器
type Router struct {
	stateMgr       *state.Manager
	keyHandler     *handlers.KeyHandler
	cmdBuilder     *handlers.CommandBuilder
	svc            *application.RefreshService
	log            *zap.Logger
	refreshOnStart bool
}

// NewRouter 創建路由器
func NewRouter(cfg *handlers.Config) *Router {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	cmdBuilder := handlers.NewCommandBuilder(log, cfg.Service)
	keyHandler := handlers.NewKeyHandler(cfg.StateMgr, cmdBuilder)

	return &Router{
		stateMgr:       cfg.StateMgr,
		keyHandler:     keyHandler,
		cmdBuilder:     cmdBuilder,
		svc:            cfg.Service,
		log:            log,
		refreshOnStart: cfg.RefreshOnStart,
	}
}

// InitModel 用於 Model.Init 調用
func (r *Router) InitModel() tea.Cmd {
	if r.refreshOnStart {
		return r.keyHandler.StartRefresh(r.stateMgr)
	}
	return nil
}

// View 適配 bubbletea 的 View 簽名
func (r *Router) View() string {
	return r.stateMgr.Render()
}

// routeMessage 內部路由邏輯
func (r *Router) routeMessage(message tea.Msg) tea.Cmd {
	m := r.stateMgr

	switch msgType := message.(type) {

	case tea.WindowSizeMsg:
		m.Resize(msgType.Width, msgType.Height)
		return nil

	case tea.KeyMsg:
		_, cmd := r.keyHandler.Handle(msgType, m)
		return cmd

	case msg.RefreshDoneMsg:
		return r.handleRefreshDone(msgType.Result)

	case spinner.TickMsg:
		// 刷新結束後不再續期，動畫自然停止
		if !m.Dashboard().Refreshing {
			return nil
		}
		return m.UI().UpdateSpinner(message)
	}

	return nil
}

// handleRefreshDone 刷新完成：成功則從存儲重建表格，失敗保持原樣
func (r *Router) handleRefreshDone(res application.RefreshResult) tea.Cmd {
	m := r.stateMgr
	m.Dashboard().Refreshing = false
	m.Dashboard().LastRefreshAt = res.At
	m.Dashboard().LastDuration = res.Duration

	if !res.OK() {
		// 錯誤已由服務記錄，界面繼續顯示舊數據
		m.UI().SetStatus(state.StatusReady, "")
		return nil
	}

	// 以存儲為準，並發刷新時最後完成的一次生效
	if store := r.store(); store != nil {
		if v := store.Version(); v != m.Dashboard().Version {
			m.SyncSnapshot(store.Current(), v)
		}
	}
	m.UI().SetStatus(state.StatusSuccess, handlers.RefreshStatus(res))
	return nil
}

func (r *Router) store() *health.Store {
	if r.svc == nil {
		return nil
	}
	return r.svc.Store()
}
