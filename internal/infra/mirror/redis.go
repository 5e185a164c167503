package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	domainConfig "github.com/Yat-Muk/pulse/internal/domain/config"
	"github.com/Yat-Muk/pulse/internal/domain/health"
	apperrors "github.com/Yat-Muk/pulse/internal/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultKeyPrefix = "pulse:snapshot:"

// RedisMirror 將最近一次成功刷新的快照寫入 Redis，供其他消費方讀取
// 寫入的值與監控端點的響應結構相同
type RedisMirror struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisMirror 創建鏡像，不會立即建立連接
func NewRedisMirror(cfg domainConfig.RedisConfig, log *zap.Logger) *RedisMirror {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	return &RedisMirror{
		client: redis.NewClient(&redis.Options{
			Addr:        cfg.Addr,
			Password:    cfg.Password,
			DB:          cfg.DB,
			DialTimeout: 3 * time.Second,
		}),
		prefix: prefix,
		ttl:    cfg.TTL,
		log:    log,
	}
}

// Key 子集群對應的鍵
func (m *RedisMirror) Key(subcluster string) string {
	return m.prefix + subcluster
}

// Publish 寫入快照，ttl 為 0 時不過期
func (m *RedisMirror) Publish(ctx context.Context, subcluster string, snap health.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrMirrorFailed, apperrors.CodeMirror, err, "序列化快照失敗")
	}

	key := m.Key(subcluster)
	if err := m.client.Set(ctx, key, data, m.ttl).Err(); err != nil {
		return apperrors.Wrapf(apperrors.ErrMirrorFailed, apperrors.CodeMirror, err, "寫入 %s 失敗", key)
	}

	m.log.Debug("快照已寫入 Redis", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// Ping 檢查連接
func (m *RedisMirror) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx).Err(); err != nil {
		return apperrors.Wrapf(apperrors.ErrMirrorFailed, apperrors.CodeMirror, err, "連接 Redis 失敗")
	}
	return nil
}

// Close 關閉連接池
func (m *RedisMirror) Close() error {
	return m.client.Close()
}

func (m *RedisMirror) String() string {
	return fmt.Sprintf("redis(%s)", m.client.Options().Addr)
}
