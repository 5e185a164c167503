package handlers

import (
	"github.com/Yat-Muk/pulse/internal/application"
	"github.com/Yat-Muk/pulse/internal/tui/state"
	"go.uber.org/zap"
)

// Config 用於初始化 Handlers 的配置結構體
type Config struct {
	Log            *zap.Logger
	StateMgr       *state.Manager
	Service        *application.RefreshService
	RefreshOnStart bool
}
