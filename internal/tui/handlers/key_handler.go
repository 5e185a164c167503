package handlers

import (
	"github.com/Yat-Muk/pulse/internal/tui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyHandler 處理全局按鍵
type KeyHandler struct {
	stateMgr   *state.Manager
	cmdBuilder *CommandBuilder
}

func NewKeyHandler(stateMgr *state.Manager, cmdBuilder *CommandBuilder) *KeyHandler {
	return &KeyHandler{
		stateMgr:   stateMgr,
		cmdBuilder: cmdBuilder,
	}
}

// Handle 處理按鍵
func (h *KeyHandler) Handle(msg tea.KeyMsg, m *state.Manager) (*state.Manager, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "r", "R":
		return m, h.StartRefresh(m)

	default:
		// 其餘按鍵交給表格 (上下/翻頁)
		return m, m.Dashboard().UpdateTable(msg)
	}
}

// StartRefresh 發起一次刷新，已有刷新在進行時忽略
func (h *KeyHandler) StartRefresh(m *state.Manager) tea.Cmd {
	d := m.Dashboard()
	if d.Refreshing {
		m.Log().Debug("刷新進行中，忽略重複觸發")
		return nil
	}

	d.Refreshing = true
	m.UI().SetStatus(state.StatusBusy, "")

	return tea.Batch(
		m.UI().Spinner.Tick,
		h.cmdBuilder.RefreshCmd(),
	)
}
