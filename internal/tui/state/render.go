package state

import (
	"github.com/Yat-Muk/pulse/internal/domain/health"
	"github.com/Yat-Muk/pulse/internal/tui/view"
)

// Render 渲染當前狀態
func (m *Manager) Render() string {
	width := m.ui.Width
	if width == 0 {
		width = 80
	}

	return view.RenderDashboard(view.DashboardData{
		Subcluster:  m.subcluster,
		Endpoint:    m.endpoint,
		LastUpdated: m.dashboard.LastUpdated,
		Summary:     m.dashboard.Summary,
		Overall:     health.Worst(m.dashboard.Rows),
		Table:       m.dashboard.Table,
		Refreshing:  m.dashboard.Refreshing,
		Spinner:     m.ui.Spinner,
		Status:      m.ui.Status.Message,
		Width:       width,
	})
}
