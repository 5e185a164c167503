package view

import (
	"fmt"
	"strings"

	"github.com/Yat-Muk/pulse/internal/domain/health"
	"github.com/Yat-Muk/pulse/internal/pkg/version"
	"github.com/Yat-Muk/pulse/internal/tui/style"
	"github.com/charmbracelet/lipgloss"
)

// KeyHint 底部按鍵提示
type KeyHint struct {
	Key  string
	Desc string
}

// DefaultKeyHints 儀表盤按鍵
var DefaultKeyHints = []KeyHint{
	{Key: "r", Desc: "refresh"},
	{Key: "↑/↓", Desc: "scroll"},
	{Key: "q", Desc: "quit"},
}

// renderHeader 渲染頁面頭部
func renderHeader(subcluster, endpoint string, overall health.Level) string {
	dot := lipgloss.NewStyle().Foreground(style.LevelColor(overall)).Render("●")
	title := dot + " " + style.TitleStyle.Render("PULSE") +
		style.MutedText("  health check dashboard · "+version.Short())

	target := style.LabelStyle.Render("Subcluster: ") +
		style.SubtitleStyle.Render(subcluster)
	if endpoint != "" {
		target += style.LabelStyle.Render("   Endpoint: ") +
			style.MutedText(endpoint)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		" "+title,
		" "+target,
	)
}

// renderSeparator 單線分隔
func renderSeparator(width int) string {
	return lipgloss.NewStyle().
		Foreground(style.Polar4).
		Render(strings.Repeat("─", max(width, 1)))
}

// renderSummary 各狀態計數，按首次出現順序
func renderSummary(summary []health.StatusCount) string {
	if len(summary) == 0 {
		return style.MutedText("no checks")
	}

	parts := make([]string, 0, len(summary))
	for _, c := range summary {
		parts = append(parts, style.StatusStyle(c.Status).
			Render(fmt.Sprintf("%s %d", style.StatusBadge(c.Status), c.Count)))
	}
	return strings.Join(parts, "  ")
}

// renderKeyHints 渲染按鍵提示
func renderKeyHints(hints []KeyHint) string {
	keyStyle := lipgloss.NewStyle().Foreground(style.Snow3)
	descStyle := lipgloss.NewStyle().Foreground(style.Polar4)

	parts := make([]string, 0, len(hints)*2)
	for i, h := range hints {
		if i > 0 {
			parts = append(parts, descStyle.Render(" • "))
		}
		parts = append(parts, keyStyle.Render(h.Key+" "), descStyle.Render(h.Desc))
	}
	return style.HelpStyle.Render(lipgloss.JoinHorizontal(lipgloss.Left, parts...))
}
