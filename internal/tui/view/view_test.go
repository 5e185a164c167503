package view

import (
	"strings"
	"testing"

	"github.com/Yat-Muk/pulse/internal/domain/health"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPlainTable(t *testing.T) {
	rows := []health.DisplayRow{
		{QueryName: "sessions", Status: "WARN", Message: "2 active"},
		{QueryName: "query_count", Status: "OK", Message: "total 4229 queries"},
	}

	out := RenderPlainTable(rows)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "QUERY NAME   STATUS  MESSAGE", lines[0])
	assert.Equal(t, "sessions     WARN    2 active", lines[1])
	assert.Equal(t, "query_count  OK      total 4229 queries", lines[2])
}

func TestRenderPlainTable_Empty(t *testing.T) {
	out := RenderPlainTable(nil)
	assert.Equal(t, "QUERY NAME  STATUS  MESSAGE\n", out)
}

func TestRenderPlainTable_WideRunes(t *testing.T) {
	rows := []health.DisplayRow{
		{QueryName: "會話", Status: "OK", Message: "無"},
		{QueryName: "ab", Status: "OK", Message: "x"},
	}
	lines := strings.Split(RenderPlainTable(rows), "\n")

	// 寬字符按兩格計算，消息列保持對齊
	assert.Equal(t, strings.Index(lines[0], "MESSAGE"), strings.Index(lines[2], "x"))
}

func TestRenderPlainReport(t *testing.T) {
	rows := health.Project(health.DefaultSnapshot())

	out := RenderPlainReport("secondary_subcluster_1", "", rows)
	assert.True(t, strings.HasPrefix(out, "Subcluster: secondary_subcluster_1\n\n"))
	assert.NotContains(t, out, "Last updated")
	assert.Contains(t, out, "No Active Queries")

	out = RenderPlainReport("s", "2024-05-01 10:00", rows)
	assert.Contains(t, out, "Last updated: 2024-05-01 10:00\n")
}

func TestRenderDashboard(t *testing.T) {
	tbl := table.New(
		table.WithColumns([]table.Column{{Title: "Query Name", Width: 20}, {Title: "Status", Width: 8}, {Title: "Message", Width: 30}}),
		table.WithRows([]table.Row{{"sessions", "✓ OK", "No Active Queries"}}),
		table.WithHeight(3),
		table.WithWidth(64),
	)

	data := DashboardData{
		Subcluster: "secondary_subcluster_1",
		Endpoint:   "http://localhost:5500/globalrefresh",
		Summary:    []health.StatusCount{{Status: "OK", Count: 1}},
		Table:      tbl,
		Spinner:    spinner.New(),
		Status:     "Ready",
		Width:      80,
	}

	out := RenderDashboard(data)
	assert.Contains(t, out, "secondary_subcluster_1")
	assert.Contains(t, out, "sessions")
	assert.Contains(t, out, "Last updated")
	assert.Contains(t, out, "Ready")
	assert.NotContains(t, out, "Refreshing")

	data.Refreshing = true
	out = RenderDashboard(data)
	assert.Contains(t, out, "Refreshing...")
}
