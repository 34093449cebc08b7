package fat

// Format lays down a fresh superblock, FAT, and empty root directory on
// a new disk image, the way a small mkfs utility would. It exists so
// that Mount has something to mount in tests and so the shell has a
// `format` command.
import (
	"github.com/PapiCZ/ecs150fs/disk"
)

// Format creates a disk image at path with exactly dataBlockCount data
// blocks (a count below 1 is treated as 1) and writes an empty, freshly
// formatted filesystem to it; it does not mount it. Data block 0 is
// always reserved and never allocated to a file, so only
// dataBlockCount-1 blocks are actually usable.
func Format(path string, dataBlockCount int) error {
	if dataBlockCount < 1 {
		dataBlockCount = 1
	}

	fatBlockCount := (dataBlockCount + FatEntriesPerBlock - 1) / FatEntriesPerBlock
	if fatBlockCount < 1 {
		fatBlockCount = 1
	}
	if fatBlockCount > 255 {
		return InvalidDiskError{Reason: "too many data blocks for an 8-bit FAT block count"}
	}

	totalBlocks := 1 + fatBlockCount + 1 + dataBlockCount
	if totalBlocks > 0xFFFF {
		return InvalidDiskError{Reason: "too many blocks for a 16-bit block count"}
	}

	if err := disk.Create(path, totalBlocks); err != nil {
		return err
	}

	dev, err := disk.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = dev.Close() }()

	var sb superblock
	copy(sb.Signature[:], Signature)
	sb.TotalBlockCount = uint16(totalBlocks)
	sb.RootDirBlockIdx = uint16(1 + fatBlockCount)
	sb.DataBlockStart = uint16(1 + fatBlockCount + 1)
	sb.DataBlockCount = uint16(dataBlockCount)
	sb.FatBlockCount = uint8(fatBlockCount)

	sbBlock, err := encodeStruct(&sb)
	if err != nil {
		return err
	}
	if err := dev.WriteBlock(0, sbBlock); err != nil {
		return err
	}

	fatEntries := make([]uint16, fatBlockCount*FatEntriesPerBlock)
	fatEntries[0] = FatEOC // block 0 is always reserved

	for i := 0; i < fatBlockCount; i++ {
		block, err := encodeStruct(fatEntries[i*FatEntriesPerBlock : (i+1)*FatEntriesPerBlock])
		if err != nil {
			return err
		}
		if err := dev.WriteBlock(1+i, block); err != nil {
			return err
		}
	}

	var root [FSFileMaxCount]dirEntry
	rootBlock, err := encodeStruct(&root)
	if err != nil {
		return err
	}
	return dev.WriteBlock(int(sb.RootDirBlockIdx), rootBlock)
}
