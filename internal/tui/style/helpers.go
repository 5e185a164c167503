package style

import "github.com/charmbracelet/lipgloss"

// TextColor 返回一個使用指定前景色的 Render 函數。
func TextColor(c lipgloss.Color) func(string) string {
	s := lipgloss.NewStyle().Foreground(c)
	return func(str string) string {
		return s.Render(str)
	}
}

// InfoText 信息藍
func InfoText(s string) string {
	return TextColor(Info)(s)
}

// MutedText 弱化灰
func MutedText(s string) string {
	return TextColor(Muted)(s)
}
