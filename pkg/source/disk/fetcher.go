package disk

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	diskfs "github.com/diskfs/go-diskfs"
	"github.com/google/uuid"
	gopsdisk "github.com/shirou/gopsutil/v3/disk"
)

// Overridable as package vars (rather than consts) so tests can point them
// at a scratch directory instead of the real host pseudo-filesystem.
var (
	sysBlockDir = "/sys/block"
	devDir      = "/dev"
	byLabelDir  = "/dev/disk/by-label"
	byUUIDDir   = "/dev/disk/by-uuid"
)

// validSubsystems restricts discovery to devices attached via these buses,
// matching the host-discovery contract's subsystem filter.
var validSubsystems = []string{"pci", "usb"}

func isValidSubsystem(name string) bool {
	link, err := os.Readlink(filepath.Join(sysBlockDir, name))
	if err != nil {
		return false
	}
	for _, subsystem := range validSubsystems {
		if strings.Contains(link, subsystem) {
			return true
		}
	}
	return false
}

func scanBlockDevices() ([]string, error) {
	entries, err := os.ReadDir(sysBlockDir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", sysBlockDir, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "loop") {
			continue
		}
		if !isValidSubsystem(name) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func readDiskSize(name string) uint64 {
	raw, err := os.ReadFile(filepath.Join(sysBlockDir, name, "size"))
	if err != nil {
		return 0
	}
	sectors, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0
	}
	return sectors << 9 // sectors are always 512 bytes
}

func scanPartitionNames(diskName string) []string {
	var names []string
	for i := 1; i < 10; i++ {
		candidate := fmt.Sprintf("%s%d", diskName, i)
		if _, err := os.Stat(filepath.Join(devDir, candidate)); err == nil {
			names = append(names, candidate)
		}
	}
	return names
}

func resolveLabel(deviceName string) string {
	return resolveByLinkTarget(byLabelDir, deviceName)
}

func resolveUUID(deviceName string) uuid.UUID {
	raw := resolveByLinkTarget(byUUIDDir, deviceName)
	if raw == "" {
		return uuid.Nil
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}

// resolveByLinkTarget walks a /dev/disk/by-* directory of symlinks and
// returns the link name whose target mentions deviceName.
func resolveByLinkTarget(dir, deviceName string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		target, err := os.Readlink(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		if strings.Contains(target, deviceName) {
			return entry.Name()
		}
	}
	return ""
}

// partitionTableSizes reads the partition table on the whole-disk device
// to recover per-partition sizes, the closest idiomatic Go equivalent to
// the original's per-partition device-info capacity lookup.
func partitionTableSizes(diskName string) map[string]uint64 {
	sizes := make(map[string]uint64)

	dev, err := diskfs.Open(filepath.Join(devDir, diskName))
	if err != nil {
		return sizes
	}
	defer dev.File.Close()

	table, err := dev.GetPartitionTable()
	if err != nil {
		return sizes
	}
	for i, part := range table.GetPartitions() {
		sizes[fmt.Sprintf("%s%d", diskName, i+1)] = uint64(part.GetSize())
	}
	return sizes
}

// mountPoints maps a device's kernel name to the path it's mounted at, if
// any, using the host's mount table.
func mountPoints() map[string]string {
	mounts := make(map[string]string)

	partitions, err := gopsdisk.Partitions(true)
	if err != nil {
		return mounts
	}
	for _, p := range partitions {
		name := strings.TrimPrefix(p.Device, devDir+"/")
		mounts[name] = p.Mountpoint
	}
	return mounts
}

// scanDisks performs a full, synchronous rescan of the host's block
// storage: valid subsystems under /sys/block, partition enumeration,
// sizes, labels, UUIDs, and mount points.
func scanDisks() ([]Disk, error) {
	names, err := scanBlockDevices()
	if err != nil {
		return nil, err
	}

	mounts := mountPoints()

	disks := make([]Disk, 0, len(names))
	for _, name := range names {
		d := Disk{
			Name:       name,
			Size:       readDiskSize(name),
			Label:      resolveLabel(name),
			UUID:       resolveUUID(name),
			MountPoint: mounts[name],
		}
		d.Mounted = d.MountPoint != ""

		partitionSizes := partitionTableSizes(name)
		for _, partName := range scanPartitionNames(name) {
			part := Partition{
				Name:       partName,
				Size:       partitionSizes[partName],
				Label:      resolveLabel(partName),
				UUID:       resolveUUID(partName),
				MountPoint: mounts[partName],
			}
			part.Mounted = part.MountPoint != ""
			d.Partitions = append(d.Partitions, part)
		}

		disks = append(disks, d)
	}

	return disks, nil
}
