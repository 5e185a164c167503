package style

import (
	"github.com/Yat-Muk/pulse/internal/domain/health"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	// 標題樣式
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	// 副標題 (子集群/端點)
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	// 標籤
	LabelStyle = lipgloss.NewStyle().
			Foreground(Snow3)

	// 幫助樣式
	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	// 狀態欄樣式
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	// 表格外框
	TableFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Polar4)
)

// LevelColor 根據狀態級別返回顏色
func LevelColor(l health.Level) lipgloss.Color {
	switch l {
	case health.LevelOK:
		return Success
	case health.LevelWarn:
		return Warning
	case health.LevelFatal:
		return Error
	default:
		return StatusOrange
	}
}

// StatusStyle 狀態文字樣式
func StatusStyle(status string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(LevelColor(health.Severity(status))).
		Bold(true)
}

// StatusBadge 表格單元格內使用的純文本標記
// 表格按顯示寬度截斷，單元格內不能帶 ANSI 序列
func StatusBadge(status string) string {
	var mark string
	switch health.Severity(status) {
	case health.LevelOK:
		mark = "✓"
	case health.LevelWarn:
		mark = "!"
	case health.LevelFatal:
		mark = "✗"
	default:
		mark = "?"
	}
	if status == "" {
		return mark
	}
	return mark + " " + status
}

// TableStyles 儀表盤表格樣式
func TableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Polar4).
		BorderBottom(true).
		Foreground(Snow1).
		Bold(true)
	s.Cell = s.Cell.Foreground(Snow2)
	s.Selected = s.Selected.
		Foreground(Text).
		Background(Polar2).
		Bold(true)
	return s
}
