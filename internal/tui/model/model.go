package model

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Model TUI 核心模型，邏輯全部委派給 Router
type Model struct {
	router *Router
}

// NewModel 創建新的 TUI Model
func NewModel(router *Router) *Model {
	return &Model{
		router: router,
	}
}

// Init 初始化
func (m *Model) Init() tea.Cmd {
	return m.router.InitModel()
}

// Update 更新循環
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, m.router.routeMessage(msg)
}

// View 渲染視圖
func (m *Model) View() string {
	return m.router.View()
}
