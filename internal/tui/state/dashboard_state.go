package state

import (
	"time"

	"github.com/Yat-Muk/pulse/internal/domain/health"
	"github.com/Yat-Muk/pulse/internal/tui/style"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	colQueryName = "Query Name"
	colStatus    = "Status"
	colMessage   = "Message"

	// 標題、概要、分隔線、外框、狀態欄與按鍵提示佔用的行數，不含表頭
	chromeHeight = 8
	// 每列左右各 1 格內邊距，外加表格邊框
	cellPadding = 2
	frameWidth  = 2

	minTableHeight  = 3
	minMessageWidth = 10
	maxNameWidth    = 32
)

// DashboardState 健康檢查表格狀態
type DashboardState struct {
	Table table.Model

	headerHeight int

	Rows        []health.DisplayRow
	Summary     []health.StatusCount
	Version     uint64 // 表格當前對應的存儲版本
	LastUpdated string

	Refreshing    bool
	LastRefreshAt time.Time
	LastDuration  time.Duration
}

// NewDashboardState 創建空表格
func NewDashboardState() *DashboardState {
	styles := style.TableStyles()
	// table.SetHeight 的參數包含表頭
	headerHeight := lipgloss.Height(styles.Header.Render(colQueryName))

	t := table.New(
		table.WithColumns(columns(len(colQueryName), len(colStatus), minMessageWidth)),
		table.WithFocused(true),
		table.WithHeight(minTableHeight+headerHeight),
		table.WithStyles(styles),
	)
	return &DashboardState{Table: t, headerHeight: headerHeight}
}

// Sync 用快照重建表格行
func (d *DashboardState) Sync(snap health.Snapshot, version uint64) {
	d.Rows = health.Project(snap)
	d.Summary = health.Summarize(d.Rows)
	d.Version = version
	d.LastUpdated = snap.LastUpdated

	rows := make([]table.Row, 0, len(d.Rows))
	for _, r := range d.Rows {
		rows = append(rows, table.Row{r.QueryName, style.StatusBadge(r.Status), r.Message})
	}
	d.Table.SetRows(rows)

	// 行數變少或空表上移動後光標可能越界
	if c := d.Table.Cursor(); c < 0 || c >= len(rows) {
		d.Table.SetCursor(max(min(c, len(rows)-1), 0))
	}
}

// Resize 按窗口尺寸重新分配列寬與表格高度
func (d *DashboardState) Resize(width, height int) {
	nameW := runewidth.StringWidth(colQueryName)
	statusW := runewidth.StringWidth(colStatus)
	for _, r := range d.Rows {
		nameW = max(nameW, runewidth.StringWidth(r.QueryName))
		statusW = max(statusW, runewidth.StringWidth(style.StatusBadge(r.Status)))
	}
	nameW = min(nameW, maxNameWidth)

	msgW := width - frameWidth - 3*cellPadding - nameW - statusW
	msgW = max(msgW, minMessageWidth)

	d.Table.SetColumns(columns(nameW, statusW, msgW))
	d.Table.SetWidth(nameW + statusW + msgW + 3*cellPadding)
	visible := max(height-chromeHeight-d.headerHeight, minTableHeight)
	d.Table.SetHeight(visible + d.headerHeight)
}

// UpdateTable 將按鍵交給表格 (上下滾動)
func (d *DashboardState) UpdateTable(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.Table, cmd = d.Table.Update(msg)
	return cmd
}

func columns(nameW, statusW, msgW int) []table.Column {
	return []table.Column{
		{Title: colQueryName, Width: nameW},
		{Title: colStatus, Width: statusW},
		{Title: colMessage, Width: msgW},
	}
}
