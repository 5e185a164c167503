package health

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	apperrors "github.com/Yat-Muk/pulse/internal/pkg/errors"
)

// ParseSnapshot 解析並校驗監控端點返回的 JSON
//
// 頂層必須是對象，否則整體拒絕。對象內：
//   - 數組值成為檢查組，按文檔中的鍵順序排列
//   - last_updated 的標量值記入 LastUpdated
//   - 其他非數組值忽略
//   - 數組中不是對象、或 status/message 不是字符串的元素忽略
//   - 重複的鍵以後出現的為準，位置保持首次出現處
func ParseSnapshot(data []byte) (Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Snapshot{}, malformed(err, "讀取響應體失敗")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Snapshot{}, malformed(nil, "頂層必須是 JSON 對象")
	}

	snap := Snapshot{Groups: []Group{}}
	index := make(map[string]int)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Snapshot{}, malformed(err, "讀取鍵失敗")
		}
		key, ok := keyTok.(string)
		if !ok {
			return Snapshot{}, malformed(nil, "非法的鍵")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return Snapshot{}, malformed(err, "讀取 %q 的值失敗", key)
		}

		results, isArray := parseResults(raw)
		if !isArray {
			if key == lastUpdatedKey {
				snap.LastUpdated = scalarString(raw)
			}
			continue
		}

		if i, dup := index[key]; dup {
			snap.Groups[i].Results = results
			continue
		}
		index[key] = len(snap.Groups)
		snap.Groups = append(snap.Groups, Group{Name: key, Results: results})
	}

	// 結尾的 '}'
	if _, err := dec.Token(); err != nil {
		return Snapshot{}, malformed(err, "對象未閉合")
	}
	if _, err := dec.Token(); err != io.EOF {
		return Snapshot{}, malformed(nil, "對象之後存在多餘內容")
	}

	return snap, nil
}

// parseResults 第二個返回值表示 raw 是否為數組
func parseResults(raw json.RawMessage) ([]CheckResult, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, false
	}

	results := make([]CheckResult, 0, len(items))
	for _, item := range items {
		if r, ok := parseRecord(item); ok {
			results = append(results, r)
		}
	}
	return results, true
}

func parseRecord(item json.RawMessage) (CheckResult, bool) {
	trimmed := bytes.TrimSpace(item)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return CheckResult{}, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return CheckResult{}, false
	}

	var r CheckResult
	for name, dst := range map[string]*string{"status": &r.Status, "message": &r.Message} {
		v, present := fields[name]
		if !present || string(bytes.TrimSpace(v)) == "null" {
			continue
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return CheckResult{}, false
		}
	}
	return r, true
}

func scalarString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func malformed(cause error, format string, args ...interface{}) error {
	return apperrors.Wrapf(apperrors.ErrMalformedPayload, apperrors.CodePayload, cause, "%s", fmt.Sprintf(format, args...))
}
