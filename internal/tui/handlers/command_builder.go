package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/Yat-Muk/pulse/internal/application"
	apperrors "github.com/Yat-Muk/pulse/internal/pkg/errors"
	"github.com/Yat-Muk/pulse/internal/tui/msg"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type CommandBuilder struct {
	log *zap.Logger
	svc *application.RefreshService
}

// NewCommandBuilder 構造函數
func NewCommandBuilder(log *zap.Logger, svc *application.RefreshService) *CommandBuilder {
	if log == nil {
		log = zap.NewNop()
	}
	return &CommandBuilder{
		log: log,
		svc: svc,
	}
}

// RefreshCmd 在後台執行一次刷新
func (b *CommandBuilder) RefreshCmd() tea.Cmd {
	return func() tea.Msg {
		if b.svc == nil {
			return msg.RefreshDoneMsg{Result: application.RefreshResult{
				Err: apperrors.New(apperrors.CodeFetch, "刷新服務未初始化"),
				At:  time.Now(),
			}}
		}

		b.log.Debug("後台刷新開始")
		res := b.svc.Refresh(context.Background())
		return msg.RefreshDoneMsg{Result: res}
	}
}

// formatDuration 狀態欄中的耗時
func formatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "0ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Truncate(time.Second).String()
	}
}

// RefreshStatus 刷新完成後的狀態欄文字，失敗時為空
func RefreshStatus(res application.RefreshResult) string {
	if !res.OK() {
		return ""
	}
	return fmt.Sprintf("Updated %s · %d rows · %s",
		res.At.Format("15:04:05"), res.Rows, formatDuration(res.Duration))
}
