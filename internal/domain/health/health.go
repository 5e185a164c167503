package health

import (
	"bytes"
	"encoding/json"
	"strings"
)

// 默認快照中的檢查組名稱 (與監控端點的鍵一致)
const (
	GroupDeleteVectors      = "delete_vectors"
	GroupErrorMessages      = "error_messages"
	GroupLongRunningQueries = "long_running_queries"
	GroupQueryCount         = "query_count"
	GroupResourceQueues     = "resource_queues"
	GroupSessions           = "sessions"

	// 非檢查組的時間戳字段
	lastUpdatedKey = "last_updated"
)

// StatusOK 健康狀態
const StatusOK = "OK"

// CheckResult 單個健康檢查結果
// Status 是開放集合，常見值 OK / WARN / FATAL
type CheckResult struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Group 一個檢查組及其有序結果
type Group struct {
	Name    string
	Results []CheckResult
}

// Snapshot 某一時刻全部檢查組的結果
// Groups 的順序即顯示順序
type Snapshot struct {
	Groups      []Group
	LastUpdated string
}

// DefaultSnapshot 啟動時的全綠快照
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Groups: []Group{
			{Name: GroupDeleteVectors, Results: []CheckResult{{Message: "No outliers in delete vector count", Status: StatusOK}}},
			{Name: GroupErrorMessages, Results: []CheckResult{{Message: "No Errors Found", Status: StatusOK}}},
			{Name: GroupLongRunningQueries, Results: []CheckResult{{Message: "No long running queries.", Status: StatusOK}}},
			{Name: GroupQueryCount, Results: []CheckResult{{Message: "total 4229 queries by 4 users in past 3.0 hours", Status: StatusOK}}},
			{Name: GroupResourceQueues, Results: []CheckResult{{Message: "No Queries in Queue", Status: StatusOK}}},
			{Name: GroupSessions, Results: []CheckResult{{Message: "No Active Queries", Status: StatusOK}}},
		},
	}
}

// Clone 深拷貝
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{LastUpdated: s.LastUpdated}
	if s.Groups == nil {
		return out
	}
	out.Groups = make([]Group, len(s.Groups))
	for i, g := range s.Groups {
		out.Groups[i] = Group{Name: g.Name}
		if g.Results != nil {
			out.Groups[i].Results = append(make([]CheckResult, 0, len(g.Results)), g.Results...)
		}
	}
	return out
}

// Group 按名稱查找檢查組
func (s Snapshot) Group(name string) ([]CheckResult, bool) {
	for _, g := range s.Groups {
		if g.Name == name {
			return g.Results, true
		}
	}
	return nil, false
}

// Names 檢查組名稱 (按順序)
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s.Groups))
	for _, g := range s.Groups {
		names = append(names, g.Name)
	}
	return names
}

// Len 全部結果條數
func (s Snapshot) Len() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Results)
	}
	return n
}

// MarshalJSON 輸出與監控端點相同的對象結構，保持組順序
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	writeKey := func(k string) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := json.Marshal(k)
		if err != nil {
			return err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		return nil
	}

	for _, g := range s.Groups {
		if err := writeKey(g.Name); err != nil {
			return nil, err
		}
		results := g.Results
		if results == nil {
			results = []CheckResult{}
		}
		vb, err := json.Marshal(results)
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}

	if s.LastUpdated != "" {
		if _, taken := s.Group(lastUpdatedKey); !taken {
			if err := writeKey(lastUpdatedKey); err != nil {
				return nil, err
			}
			vb, _ := json.Marshal(s.LastUpdated)
			buf.Write(vb)
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON 走與刷新相同的校驗邏輯
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	parsed, err := ParseSnapshot(data)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Level 狀態的嚴重程度，數值越大越嚴重
type Level int

const (
	LevelOK Level = iota
	LevelUnknown
	LevelWarn
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelOK:
		return "OK"
	case LevelWarn:
		return "WARN"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Severity 將開放的狀態字符串歸類
func Severity(status string) Level {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "OK", "PASS", "HEALTHY":
		return LevelOK
	case "WARN", "WARNING":
		return LevelWarn
	case "FATAL", "ERROR", "CRITICAL", "FAIL":
		return LevelFatal
	default:
		return LevelUnknown
	}
}
