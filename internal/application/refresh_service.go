package application

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Yat-Muk/pulse/internal/domain/health"
	apperrors "github.com/Yat-Muk/pulse/internal/pkg/errors"
	"go.uber.org/zap"
)

const mirrorTimeout = 5 * time.Second

// Fetcher 快照來源
type Fetcher interface {
	Fetch(ctx context.Context) (health.Snapshot, error)
}

// Mirror 成功刷新後的快照副本去向
type Mirror interface {
	Publish(ctx context.Context, subcluster string, snap health.Snapshot) error
}

// RefreshResult 一次刷新的結果
type RefreshResult struct {
	Version  uint64 // 成功時為新快照版本號
	Rows     int
	Err      error
	At       time.Time
	Duration time.Duration
}

// OK 是否成功替換了快照
func (r RefreshResult) OK() bool {
	return r.Err == nil
}

// RefreshService 拉取快照並整體替換存儲
type RefreshService struct {
	store      *health.Store
	fetcher    Fetcher
	mirror     Mirror
	subcluster string
	log        *zap.Logger
	now        func() time.Time

	inFlight atomic.Int32
	last     atomic.Pointer[RefreshResult]

	// 鏡像按版本號順序在後台寫入，只保留最新的待寫快照
	pubMu      sync.Mutex
	queued     uint64
	pending    *pendingPublish
	publishing bool
	pubWG      sync.WaitGroup
}

type pendingPublish struct {
	version uint64
	snap    health.Snapshot
}

// RefreshOption 服務選項
type RefreshOption func(*RefreshService)

// WithMirror 設置快照鏡像
func WithMirror(m Mirror, subcluster string) RefreshOption {
	return func(s *RefreshService) {
		s.mirror = m
		s.subcluster = subcluster
	}
}

// WithClock 替換時間源 (測試用)
func WithClock(now func() time.Time) RefreshOption {
	return func(s *RefreshService) {
		s.now = now
	}
}

// NewRefreshService 創建刷新服務
func NewRefreshService(store *health.Store, fetcher Fetcher, log *zap.Logger, opts ...RefreshOption) *RefreshService {
	s := &RefreshService{
		store:   store,
		fetcher: fetcher,
		log:     log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store 底層存儲
func (s *RefreshService) Store() *health.Store {
	return s.store
}

// Rows 當前快照展平後的行
func (s *RefreshService) Rows() []health.DisplayRow {
	return health.Project(s.store.Current())
}

// InFlight 正在進行的刷新數
func (s *RefreshService) InFlight() int {
	return int(s.inFlight.Load())
}

// LastResult 最近一次完成的刷新，尚未刷新過時為 nil
func (s *RefreshService) LastResult() *RefreshResult {
	return s.last.Load()
}

// Refresh 拉取一次快照
// 失敗時只記錄日誌，存儲保持不變；不重試
// 多個刷新並發時，最後完成的一次生效
func (s *RefreshService) Refresh(ctx context.Context) RefreshResult {
	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	start := s.now()
	snap, err := s.fetcher.Fetch(ctx)
	result := RefreshResult{At: s.now()}
	result.Duration = result.At.Sub(start)

	if err != nil {
		result.Err = err
		s.log.Warn("刷新失敗，保留當前快照",
			zap.String("code", apperrors.CodeOf(err)),
			zap.Error(err),
			zap.Duration("elapsed", result.Duration),
		)
		s.last.Store(&result)
		return result
	}

	result.Version = s.store.Replace(snap)
	result.Rows = snap.Len()
	s.last.Store(&result)

	s.log.Info("快照已更新",
		zap.Uint64("version", result.Version),
		zap.Int("groups", len(snap.Groups)),
		zap.Int("rows", result.Rows),
		zap.String("last_updated", snap.LastUpdated),
		zap.Duration("elapsed", result.Duration),
	)

	if s.mirror != nil {
		s.enqueuePublish(result.Version, snap)
	}

	return result
}

// Close 等待後台鏡像寫入完成
func (s *RefreshService) Close() {
	s.pubWG.Wait()
}

// enqueuePublish 登記待寫快照；舊版本直接丟棄
func (s *RefreshService) enqueuePublish(version uint64, snap health.Snapshot) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	if version <= s.queued {
		return
	}
	s.queued = version
	s.pending = &pendingPublish{version: version, snap: snap}

	if s.publishing {
		return
	}
	s.publishing = true
	s.pubWG.Add(1)
	go s.drainPublish()
}

// drainPublish 單個協程依次寫入，最後寫入的總是最高版本
func (s *RefreshService) drainPublish() {
	defer s.pubWG.Done()

	for {
		s.pubMu.Lock()
		p := s.pending
		s.pending = nil
		if p == nil {
			s.publishing = false
			s.pubMu.Unlock()
			return
		}
		s.pubMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		if err := s.mirror.Publish(ctx, s.subcluster, p.snap); err != nil {
			s.log.Warn("快照鏡像失敗", zap.Uint64("version", p.version), zap.Error(err))
		}
		cancel()
	}
}
