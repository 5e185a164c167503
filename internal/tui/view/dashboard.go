package view

import (
	"github.com/Yat-Muk/pulse/internal/domain/health"
	"github.com/Yat-Muk/pulse/internal/tui/style"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// DashboardData 渲染儀表盤所需的數據
type DashboardData struct {
	Subcluster  string
	Endpoint    string
	LastUpdated string
	Summary     []health.StatusCount
	Overall     health.Level
	Table       table.Model
	Refreshing  bool
	Spinner     spinner.Model
	Status      string
	Width       int
}

// RenderDashboard 渲染主界面
func RenderDashboard(d DashboardData) string {
	width := d.Width
	if width <= 0 {
		width = 80
	}

	header := renderHeader(d.Subcluster, d.Endpoint, d.Overall)

	lastUpdated := d.LastUpdated
	if lastUpdated == "" {
		lastUpdated = "-"
	}
	meta := " " + style.LabelStyle.Render("Last updated: ") +
		style.SubtitleStyle.Render(lastUpdated) +
		"    " + renderSummary(d.Summary)

	body := style.TableFrameStyle.Render(d.Table.View())

	var status string
	if d.Refreshing {
		status = " " + d.Spinner.View() + style.InfoText("Refreshing...")
	} else {
		status = style.StatusBarStyle.Render(d.Status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		meta,
		renderSeparator(width),
		body,
		status,
		renderKeyHints(DefaultKeyHints),
	)
}
