package monitor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Yat-Muk/pulse/internal/domain/health"
	apperrors "github.com/Yat-Muk/pulse/internal/pkg/errors"
	"github.com/Yat-Muk/pulse/internal/pkg/logger"
	"github.com/Yat-Muk/pulse/internal/pkg/version"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 響應體上限，防止異常端點撐爆內存
const maxBodyBytes = 8 << 20

// HeaderRequestID 請求關聯 ID
const HeaderRequestID = "X-Request-Id"

// Client 監控端點客戶端
type Client struct {
	url     string
	timeout time.Duration
	http    *http.Client
	log     *zap.Logger
}

// Option 客戶端選項
type Option func(*Client)

// WithHTTPClient 替換底層 http.Client (測試用)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout 單次請求超時，0 表示不設超時
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient url 為完整的刷新地址 (含 subcluster_name 參數)
func NewClient(url string, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		url:  url,
		http: &http.Client{},
		log:  log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL 刷新地址
func (c *Client) URL() string {
	return c.url
}

// Fetch 發起一次 GET 並解析快照
func (c *Client) Fetch(ctx context.Context) (health.Snapshot, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	requestID := uuid.NewString()
	log := c.log.With(zap.String("request_id", requestID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return health.Snapshot{}, apperrors.Wrapf(apperrors.ErrFetchFailed, apperrors.CodeFetch, err, "構建請求失敗")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set(HeaderRequestID, requestID)

	start := time.Now()
	log.Debug("請求監控端點", logger.SafeURL("url", c.url))

	resp, err := c.http.Do(req)
	if err != nil {
		return health.Snapshot{}, apperrors.Wrapf(apperrors.ErrFetchFailed, apperrors.CodeFetch, err, "請求監控端點失敗")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// 排空少量響應體以便連接復用
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return health.Snapshot{}, apperrors.Wrapf(apperrors.ErrUnexpectedStatus, apperrors.CodeStatus, nil,
			"監控端點返回 %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return health.Snapshot{}, apperrors.Wrapf(apperrors.ErrFetchFailed, apperrors.CodeFetch, err, "讀取響應體失敗")
	}
	if len(body) > maxBodyBytes {
		return health.Snapshot{}, apperrors.Wrapf(apperrors.ErrMalformedPayload, apperrors.CodePayload, nil,
			"響應體超過 %d 字節", maxBodyBytes)
	}

	snap, err := health.ParseSnapshot(body)
	if err != nil {
		return health.Snapshot{}, err
	}

	log.Debug("監控端點響應",
		zap.Int("status", resp.StatusCode),
		zap.Strings("groups", snap.Names()),
		zap.Int("results", snap.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return snap, nil
}

// String 用於日誌
func (c *Client) String() string {
	return fmt.Sprintf("monitor.Client(%s)", c.url)
}
