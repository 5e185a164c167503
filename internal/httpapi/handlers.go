package httpapi

import (
	"net/http"
	"time"

	"github.com/Yat-Muk/pulse/internal/domain/health"
	"github.com/gin-gonic/gin"
)

type rowsResponse struct {
	Subcluster  string               `json:"subcluster"`
	Version     uint64               `json:"version"`
	Overall     string               `json:"overall"`
	LastUpdated string               `json:"last_updated,omitempty"`
	Refreshing  bool                 `json:"refreshing"`
	LastRefresh *lastRefresh         `json:"last_refresh,omitempty"`
	Rows        []health.DisplayRow  `json:"rows"`
	Summary     []health.StatusCount `json:"summary"`
}

// lastRefresh 最近一次刷新的概況，不含錯誤細節
type lastRefresh struct {
	At         time.Time `json:"at"`
	OK         bool      `json:"ok"`
	DurationMs int64     `json:"duration_ms"`
}

type refreshResponse struct {
	rowsResponse
	Refreshed bool      `json:"refreshed"`
	At        time.Time `json:"at"`
}

func (r *Router) buildRows() rowsResponse {
	store := r.svc.Store()
	// 版本號先於快照讀取，並發替換時最多偏舊一版
	version := store.Version()
	snap := store.Current()
	rows := health.Project(snap)

	summary := health.Summarize(rows)
	if summary == nil {
		summary = []health.StatusCount{}
	}

	var last *lastRefresh
	if res := r.svc.LastResult(); res != nil {
		last = &lastRefresh{
			At:         res.At,
			OK:         res.OK(),
			DurationMs: res.Duration.Milliseconds(),
		}
	}

	return rowsResponse{
		Subcluster:  r.subcluster,
		Version:     version,
		Overall:     health.Worst(rows).String(),
		LastUpdated: snap.LastUpdated,
		Refreshing:  r.svc.InFlight() > 0,
		LastRefresh: last,
		Rows:        rows,
		Summary:     summary,
	}
}

// GET /api/rows
func (r *Router) rows(c *gin.Context) {
	c.JSON(http.StatusOK, r.buildRows())
}

// GET /api/snapshot 與監控端點同結構
func (r *Router) snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, r.svc.Store().Current())
}

// POST /api/refresh 失敗時 refreshed=false，仍返回當前數據
func (r *Router) refresh(c *gin.Context) {
	res := r.svc.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, refreshResponse{
		rowsResponse: r.buildRows(),
		Refreshed:    res.OK(),
		At:           res.At,
	})
}
