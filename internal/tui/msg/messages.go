package msg

import (
	"github.com/Yat-Muk/pulse/internal/application"
)

// RefreshDoneMsg 一次刷新完成 (無論成敗)
type RefreshDoneMsg struct {
	Result application.RefreshResult
}
