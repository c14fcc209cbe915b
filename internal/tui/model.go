// Package tui implements the interactive diskwatch-client view: a live
// table of the block-device inventory streamed from diskwatchd.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apiproto "github.com/hostwatch/diskwatch/api/proto"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160"))
)

// updateMsg carries one DiskListAndWatchResponse received from the stream.
type updateMsg struct {
	resp *apiproto.DiskListAndWatchResponse
}

// streamErrMsg carries a terminal error from the stream.
type streamErrMsg struct {
	err error
}

// Stream is anything that yields disk inventory updates and errors, so
// the model doesn't need to know about gRPC directly.
type Stream interface {
	Recv() (*apiproto.DiskListAndWatchResponse, error)
}

// Model is the bubbletea model for the disk inventory view.
type Model struct {
	addr   string
	stream Stream
	cancel context.CancelFunc

	table    table.Model
	lastErr  error
	received int
}

// New builds a Model that reads from stream, an already-opened
// DiskListAndWatch call, and reports connecting to addr for display.
func New(addr string, stream Stream, cancel context.CancelFunc) Model {
	columns := []table.Column{
		{Title: "Name", Width: 12},
		{Title: "Size", Width: 12},
		{Title: "UUID", Width: 36},
		{Title: "Mounted", Width: 8},
		{Title: "Mount Point", Width: 20},
		{Title: "Label", Width: 14},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	style := table.DefaultStyles()
	style.Header = style.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	style.Selected = style.Selected.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("205"))
	t.SetStyles(style)

	return Model{addr: addr, stream: stream, cancel: cancel, table: t}
}

func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.stream)
}

func waitForUpdate(stream Stream) tea.Cmd {
	return func() tea.Msg {
		resp, err := stream.Recv()
		if err != nil {
			return streamErrMsg{err: err}
		}
		return updateMsg{resp: resp}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)

	case updateMsg:
		m.received++
		m.lastErr = nil
		m.table.SetRows(rowsFor(msg.resp))
		return m, waitForUpdate(m.stream)

	case streamErrMsg:
		m.lastErr = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := headerStyle.Render(fmt.Sprintf("diskwatch-client — %s", m.addr))
	status := statusStyle.Render(fmt.Sprintf("updates received: %d  (q to quit)", m.received))
	if m.lastErr != nil {
		status = errorStyle.Render(fmt.Sprintf("stream ended: %v", m.lastErr))
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s\n", header, m.table.View(), status)
}

func rowsFor(resp *apiproto.DiskListAndWatchResponse) []table.Row {
	if resp == nil {
		return nil
	}
	rows := make([]table.Row, 0, len(resp.GetDisks()))
	for _, d := range resp.GetDisks() {
		rows = append(rows, table.Row{
			d.GetName(),
			formatBytes(d.GetSize()),
			d.GetUuid(),
			formatBool(d.GetMounted()),
			d.GetMountPoint(),
			d.GetLabel(),
		})
	}
	return rows
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for remainder := n / unit; remainder >= unit; remainder /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
