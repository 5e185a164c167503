package health

// DisplayRow 表格中的一行
type DisplayRow struct {
	QueryName string `json:"query_name"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// Project 將快照展平為行：組按存儲順序，組內結果按原順序
func Project(s Snapshot) []DisplayRow {
	rows := make([]DisplayRow, 0, s.Len())
	for _, g := range s.Groups {
		for _, r := range g.Results {
			rows = append(rows, DisplayRow{
				QueryName: g.Name,
				Status:    r.Status,
				Message:   r.Message,
			})
		}
	}
	return rows
}

// StatusCount 某狀態出現的次數
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Summarize 按首次出現順序統計各狀態的行數
func Summarize(rows []DisplayRow) []StatusCount {
	var out []StatusCount
	index := make(map[string]int)
	for _, r := range rows {
		if i, ok := index[r.Status]; ok {
			out[i].Count++
			continue
		}
		index[r.Status] = len(out)
		out = append(out, StatusCount{Status: r.Status, Count: 1})
	}
	return out
}

// Worst 所有行中最嚴重的級別，空表為 LevelOK
func Worst(rows []DisplayRow) Level {
	worst := LevelOK
	for _, r := range rows {
		if lv := Severity(r.Status); lv > worst {
			worst = lv
		}
	}
	return worst
}
