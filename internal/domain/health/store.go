package health

import (
	"sync"
	"sync/atomic"
)

// Store 持有當前快照
// 讀取無鎖；替換為整體替換，不做合併
type Store struct {
	value atomic.Value // 存儲 storeEntry
	mu    sync.Mutex   // 僅用於序列化 Replace
}

type storeEntry struct {
	snapshot Snapshot
	version  uint64
}

// NewStore 以默認快照初始化
func NewStore() *Store {
	s := &Store{}
	s.value.Store(storeEntry{snapshot: DefaultSnapshot()})
	return s
}

// Current 返回當前快照的副本，調用方可隨意修改
func (s *Store) Current() Snapshot {
	return s.load().snapshot.Clone()
}

// Version 每次 Replace 加一，初始為 0
func (s *Store) Version() uint64 {
	return s.load().version
}

// Replace 丟棄舊快照並安裝新快照，返回新版本號
func (s *Store) Replace(snap Snapshot) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.load().version + 1
	s.value.Store(storeEntry{snapshot: snap.Clone(), version: next})
	return next
}

func (s *Store) load() storeEntry {
	return s.value.Load().(storeEntry)
}
