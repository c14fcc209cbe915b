package disk

import "github.com/google/uuid"

// Partition is one partition of a block device.
type Partition struct {
	Name       string
	Size       uint64
	UUID       uuid.UUID
	Label      string
	Mounted    bool
	MountPoint string
}

// Disk is one block-storage device discovered under /sys/block.
type Disk struct {
	Name       string
	Size       uint64
	UUID       uuid.UUID
	Mounted    bool
	MountPoint string
	Label      string
	Partitions []Partition
}

// Snapshot is the immutable state published by the disk Source: the full
// inventory of discovered disks at the moment it was taken.
type Snapshot struct {
	Disks []Disk
}
