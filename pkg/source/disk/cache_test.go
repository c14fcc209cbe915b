package disk

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostwatch/diskwatch/pkg/source"
)

func TestCacheStoreAndSnapshot(t *testing.T) {
	c := NewCache()

	assert.Empty(t, c.Snapshot().Disks)

	c.Store(Snapshot{Disks: []Disk{{Name: "sda", Size: 1024, UUID: uuid.New()}}})

	snap := c.Snapshot()
	require.Len(t, snap.Disks, 1)
	assert.Equal(t, "sda", snap.Disks[0].Name)
}

func TestCacheSnapshotIsClonedNotShared(t *testing.T) {
	c := NewCache()
	c.Store(Snapshot{Disks: []Disk{{Name: "sda"}}})

	snap := c.Snapshot()
	snap.Disks[0].Name = "mutated"

	assert.Equal(t, "sda", c.Snapshot().Disks[0].Name)
}

func TestHandleReportsDiskSourceID(t *testing.T) {
	h := NewHandle(NewCache())
	assert.Equal(t, source.Disk, h.ID())
}

func TestHandleSnapshotReflectsCache(t *testing.T) {
	cache := NewCache()
	h := NewHandle(cache)

	cache.Store(Snapshot{Disks: []Disk{{Name: "nvme0n1"}}})

	snap, ok := h.Snapshot().(Snapshot)
	require.True(t, ok)
	require.Len(t, snap.Disks, 1)
	assert.Equal(t, "nvme0n1", snap.Disks[0].Name)
}
