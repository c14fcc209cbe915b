// Package convert turns a Source's domain snapshot into the wire-format
// payload the dispatcher retains and broadcasts. It is a pure, total
// function per SourceId with no side effects and no dependency on the
// dispatcher or transport.
package convert

import (
	"github.com/google/uuid"

	apiproto "github.com/hostwatch/diskwatch/api/proto"
	"github.com/hostwatch/diskwatch/pkg/source"
	"github.com/hostwatch/diskwatch/pkg/source/disk"
)

// WirePayload is a per-source wire-format value ready for transmission.
type WirePayload interface{}

// Convert maps (SourceId, Snapshot) to a WirePayload. ok is false when the
// SourceId is unregistered or the snapshot has no wire representation; the
// caller must treat that as "skip this event", never as an error.
func Convert(id source.ID, snap source.Snapshot) (payload WirePayload, ok bool) {
	switch id {
	case source.Disk:
		return convertDisk(snap)
	default:
		return nil, false
	}
}

func convertDisk(snap source.Snapshot) (WirePayload, bool) {
	diskSnap, ok := snap.(disk.Snapshot)
	if !ok {
		return nil, false
	}

	resp := &apiproto.DiskListAndWatchResponse{
		Disks: make([]*apiproto.Disk, 0, len(diskSnap.Disks)),
	}
	for _, d := range diskSnap.Disks {
		resp.Disks = append(resp.Disks, toWireDisk(d))
	}
	return resp, true
}

func toWireDisk(d disk.Disk) *apiproto.Disk {
	wire := &apiproto.Disk{
		Name:       d.Name,
		Size:       d.Size,
		Uuid:       uuidString(d.UUID),
		Mounted:    d.Mounted,
		MountPoint: d.MountPoint,
		Label:      d.Label,
	}
	if len(d.Partitions) > 0 {
		wire.Partitions = make([]*apiproto.Partition, 0, len(d.Partitions))
		for _, p := range d.Partitions {
			wire.Partitions = append(wire.Partitions, &apiproto.Partition{
				Name:       p.Name,
				Size:       p.Size,
				Uuid:       uuidString(p.UUID),
				Mounted:    p.Mounted,
				MountPoint: p.MountPoint,
				Label:      p.Label,
			})
		}
	}
	return wire
}

func uuidString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
