package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiproto "github.com/hostwatch/diskwatch/api/proto"
)

type fakeStream struct {
	responses []*apiproto.DiskListAndWatchResponse
	idx       int
	err       error
}

func (f *fakeStream) Recv() (*apiproto.DiskListAndWatchResponse, error) {
	if f.idx < len(f.responses) {
		r := f.responses[f.idx]
		f.idx++
		return r, nil
	}
	if f.err != nil {
		return nil, f.err
	}
	return nil, errors.New("no more responses")
}

func TestUpdateMsgPopulatesTableAndRearms(t *testing.T) {
	stream := &fakeStream{responses: []*apiproto.DiskListAndWatchResponse{
		{Disks: []*apiproto.Disk{{Name: "sda", Size: 2048, Mounted: true, MountPoint: "/"}}},
	}}
	m := New("127.0.0.1:50051", stream, nil)

	next, cmd := m.Update(updateMsg{resp: stream.responses[0]})
	nm := next.(Model)

	assert.Equal(t, 1, nm.received)
	require.NotNil(t, cmd)
	rows := nm.table.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "sda", rows[0][0])
	assert.Equal(t, "yes", rows[0][3])
}

func TestStreamErrMsgRecordsErrorWithoutRearming(t *testing.T) {
	m := New("127.0.0.1:50051", &fakeStream{}, nil)

	next, cmd := m.Update(streamErrMsg{err: errors.New("connection reset")})
	nm := next.(Model)

	assert.Error(t, nm.lastErr)
	assert.Nil(t, cmd)
}

func TestQuitKeyCancelsAndQuits(t *testing.T) {
	cancelled := false
	m := New("127.0.0.1:50051", &fakeStream{}, func() { cancelled = true })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	assert.True(t, cancelled)
	require.NotNil(t, cmd)
}

func TestRowsForEmptyResponseYieldsNoRows(t *testing.T) {
	assert.Empty(t, rowsFor(&apiproto.DiskListAndWatchResponse{}))
	assert.Nil(t, rowsFor(nil))
}

func TestFormatBytesScalesUnits(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.0 KiB", formatBytes(1024))
	assert.Equal(t, "2.0 MiB", formatBytes(2*1024*1024))
}
