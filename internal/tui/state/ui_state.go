package state

import (
	"github.com/Yat-Muk/pulse/internal/tui/style"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusType 狀態類型
type StatusType int

const (
	StatusReady StatusType = iota
	StatusBusy
	StatusSuccess
)

// StatusMsg 狀態欄消息
type StatusMsg struct {
	Type    StatusType
	Message string
}

// UIState UI 核心狀態
type UIState struct {
	Spinner spinner.Model
	Width   int
	Height  int
	Status  StatusMsg
}

// NewUIState 創建 UI 狀態
func NewUIState() *UIState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(style.Secondary)

	return &UIState{
		Width:   80,
		Height:  24,
		Status:  StatusMsg{Type: StatusReady},
		Spinner: s,
	}
}

// SetStatus 設置狀態欄消息
func (s *UIState) SetStatus(t StatusType, msg string) {
	s.Status = StatusMsg{
		Type:    t,
		Message: msg,
	}
}

// UpdateSize 更新尺寸
func (s *UIState) UpdateSize(w, h int) {
	s.Width = w
	s.Height = h
}

// UpdateSpinner 推進 spinner 動畫
func (s *UIState) UpdateSpinner(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.Spinner, cmd = s.Spinner.Update(msg)
	return cmd
}
