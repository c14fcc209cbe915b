package convert

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiproto "github.com/hostwatch/diskwatch/api/proto"
	"github.com/hostwatch/diskwatch/pkg/source"
	"github.com/hostwatch/diskwatch/pkg/source/disk"
)

func TestConvertDiskProducesActualInventory(t *testing.T) {
	id := uuid.New()
	snap := disk.Snapshot{
		Disks: []disk.Disk{
			{
				Name:       "sda",
				Size:       1024,
				UUID:       id,
				Mounted:    true,
				MountPoint: "/mnt",
				Label:      "L1",
			},
		},
	}

	payload, ok := Convert(source.Disk, snap)
	require.True(t, ok)

	resp, ok := payload.(*apiproto.DiskListAndWatchResponse)
	require.True(t, ok)
	require.Len(t, resp.Disks, 1)

	got := resp.Disks[0]
	assert.Equal(t, "sda", got.Name)
	assert.EqualValues(t, 1024, got.Size)
	assert.Equal(t, id.String(), got.Uuid)
	assert.True(t, got.Mounted)
	assert.Equal(t, "/mnt", got.MountPoint)
	assert.Equal(t, "L1", got.Label)

	// Two consecutive conversions with no intervening state change must
	// be equal — the converter is a deterministic pure function.
	payload2, ok2 := Convert(source.Disk, snap)
	require.True(t, ok2)
	assert.Equal(t, payload, payload2)
}

func TestConvertDiskIncludesPartitions(t *testing.T) {
	snap := disk.Snapshot{
		Disks: []disk.Disk{
			{
				Name: "sda",
				Partitions: []disk.Partition{
					{Name: "sda1", Size: 512, Label: "boot"},
				},
			},
		},
	}

	payload, ok := Convert(source.Disk, snap)
	require.True(t, ok)

	resp := payload.(*apiproto.DiskListAndWatchResponse)
	require.Len(t, resp.Disks[0].Partitions, 1)
	assert.Equal(t, "sda1", resp.Disks[0].Partitions[0].Name)
}

func TestConvertUnknownSourceIDYieldsNoPayload(t *testing.T) {
	_, ok := Convert(source.ID(99), disk.Snapshot{})
	assert.False(t, ok)
}

func TestConvertReservedZeroValueYieldsNoPayload(t *testing.T) {
	var zero source.ID
	_, ok := Convert(zero, disk.Snapshot{})
	assert.False(t, ok)
}

func TestConvertWrongSnapshotTypeYieldsNoPayload(t *testing.T) {
	_, ok := Convert(source.Disk, "not a disk snapshot")
	assert.False(t, ok)
}

func TestConvertEmptySnapshotYieldsEmptyDiskList(t *testing.T) {
	payload, ok := Convert(source.Disk, disk.Snapshot{})
	require.True(t, ok)
	resp := payload.(*apiproto.DiskListAndWatchResponse)
	assert.Empty(t, resp.Disks)
}
