package view

import (
	"fmt"
	"strings"

	"github.com/Yat-Muk/pulse/internal/domain/health"
	"github.com/mattn/go-runewidth"
)

var plainHeaders = [3]string{"QUERY NAME", "STATUS", "MESSAGE"}

// RenderPlainTable 不帶顏色的對齊表格，供非交互輸出使用
func RenderPlainTable(rows []health.DisplayRow) string {
	widths := [3]int{}
	for i, h := range plainHeaders {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		widths[0] = max(widths[0], runewidth.StringWidth(r.QueryName))
		widths[1] = max(widths[1], runewidth.StringWidth(r.Status))
	}

	var sb strings.Builder
	writeRow := func(name, status, message string) {
		line := runewidth.FillRight(name, widths[0]) + "  " +
			runewidth.FillRight(status, widths[1]) + "  " +
			message
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteByte('\n')
	}

	writeRow(plainHeaders[0], plainHeaders[1], plainHeaders[2])
	for _, r := range rows {
		writeRow(r.QueryName, r.Status, r.Message)
	}
	return sb.String()
}

// RenderPlainReport 表格前附帶子集群與更新時間
func RenderPlainReport(subcluster, lastUpdated string, rows []health.DisplayRow) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Subcluster: %s\n", subcluster)
	if lastUpdated != "" {
		fmt.Fprintf(&sb, "Last updated: %s\n", lastUpdated)
	}
	sb.WriteByte('\n')
	sb.WriteString(RenderPlainTable(rows))
	return sb.String()
}
