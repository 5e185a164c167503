package httpapi

import (
	"net/http"

	"github.com/Yat-Muk/pulse/internal/application"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Router 只讀 JSON 接口，外加一個觸發刷新的 POST
type Router struct {
	svc        *application.RefreshService
	subcluster string
	logger     *zap.Logger
}

func NewRouter(svc *application.RefreshService, subcluster string, logger *zap.Logger) *Router {
	return &Router{
		svc:        svc,
		subcluster: subcluster,
		logger:     logger,
	}
}

// SetupRoutes 構建 gin 引擎
func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(r.logger))
	router.Use(recovery(r.logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	api := router.Group("/api")
	{
		api.GET("/rows", r.rows)
		api.GET("/snapshot", r.snapshot)
		api.POST("/refresh", r.refresh)
	}

	return router
}
