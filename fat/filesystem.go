// Package fat implements the core of a small flat filesystem layered
// over a fixed-size block device: the on-disk format, the FAT-chain
// allocator, the root directory, the file handle table, and the
// byte-granular I/O engine that composes them.
//
// A Filesystem is the single owning aggregate in place of
// process-wide globals: every operation is a method on *Filesystem,
// and there is no package-level mutable state. The type is not safe
// for concurrent use and is not reentrant.
package fat

import (
	"fmt"
	"io"

	"github.com/PapiCZ/ecs150fs/disk"
)

// handle is an in-memory open file handle: an owning directory index
// and a byte cursor.
type handle struct {
	inUse    bool
	dirIndex int
	offset   uint32
}

// Filesystem is the mount-owned aggregate holding the superblock, the
// in-memory FAT, the root directory, and the file handle table.
type Filesystem struct {
	dev *disk.Disk

	sb   superblock
	fat  []uint16 // flat, length == FatBlockCount * FatEntriesPerBlock
	root [FSFileMaxCount]dirEntry

	handles       [FSOpenMaxCount]handle
	openHandleCnt int

	mounted bool
}

// Mount opens diskname, validates and loads its superblock, FAT, and
// root directory, and returns a mounted Filesystem.
func Mount(diskname string) (*Filesystem, error) {
	dev, err := disk.Open(diskname)
	if err != nil {
		return nil, InvalidDiskError{Reason: err.Error()}
	}

	fs := &Filesystem{dev: dev}

	sbBlock := make([]byte, disk.BlockSize)
	if err := dev.ReadBlock(0, sbBlock); err != nil {
		_ = dev.Close()
		return nil, DiskError{Err: err}
	}
	if err := decodeStruct(sbBlock, &fs.sb); err != nil {
		_ = dev.Close()
		return nil, DiskError{Err: err}
	}

	if string(fs.sb.Signature[:]) != Signature {
		_ = dev.Close()
		return nil, InvalidDiskError{Reason: "signature mismatch"}
	}
	if int(fs.sb.TotalBlockCount) != dev.Count() {
		_ = dev.Close()
		return nil, InvalidDiskError{Reason: "block count mismatch"}
	}

	fs.fat = make([]uint16, int(fs.sb.FatBlockCount)*FatEntriesPerBlock)
	for i := 0; i < int(fs.sb.FatBlockCount); i++ {
		block := make([]byte, disk.BlockSize)
		if err := dev.ReadBlock(1+i, block); err != nil {
			_ = dev.Close()
			return nil, DiskError{Err: err}
		}
		if err := decodeStruct(block, fs.fat[i*FatEntriesPerBlock:(i+1)*FatEntriesPerBlock]); err != nil {
			_ = dev.Close()
			return nil, DiskError{Err: err}
		}
	}

	rootBlock := make([]byte, disk.BlockSize)
	if err := dev.ReadBlock(int(fs.sb.RootDirBlockIdx), rootBlock); err != nil {
		_ = dev.Close()
		return nil, DiskError{Err: err}
	}
	if err := decodeStruct(rootBlock, &fs.root); err != nil {
		_ = dev.Close()
		return nil, DiskError{Err: err}
	}

	fs.mounted = true
	return fs, nil
}

// Unmount flushes any pending metadata, closes the underlying disk,
// and clears in-memory state. It fails if any file handle is still
// open.
func (fs *Filesystem) Unmount() error {
	if !fs.mounted {
		return NotMountedError{}
	}
	if fs.openHandleCnt > 0 {
		return HandlesOpenError{Count: fs.openHandleCnt}
	}

	if err := fs.flushFAT(); err != nil {
		return err
	}
	if err := fs.flushRootDir(); err != nil {
		return err
	}

	if err := fs.dev.Close(); err != nil {
		return DiskError{Err: err}
	}

	fs.sb = superblock{}
	fs.fat = nil
	fs.root = [FSFileMaxCount]dirEntry{}
	fs.handles = [FSOpenMaxCount]handle{}
	fs.openHandleCnt = 0
	fs.mounted = false
	fs.dev = nil

	return nil
}

func (fs *Filesystem) requireMounted() error {
	if !fs.mounted {
		return NotMountedError{}
	}
	return nil
}

func (fs *Filesystem) flushFAT() error {
	for i := 0; i < int(fs.sb.FatBlockCount); i++ {
		block, err := encodeStruct(fs.fat[i*FatEntriesPerBlock : (i+1)*FatEntriesPerBlock])
		if err != nil {
			return err
		}
		if err := fs.dev.WriteBlock(1+i, block); err != nil {
			return DiskError{Err: err}
		}
	}
	return nil
}

func (fs *Filesystem) flushRootDir() error {
	block, err := encodeStruct(&fs.root)
	if err != nil {
		return err
	}
	if err := fs.dev.WriteBlock(int(fs.sb.RootDirBlockIdx), block); err != nil {
		return DiskError{Err: err}
	}
	return nil
}

// Info writes a summary of the mounted filesystem's layout and free
// space to w.
func (fs *Filesystem) Info(w io.Writer) error {
	if err := fs.requireMounted(); err != nil {
		return err
	}

	free := fs.freeCount()
	freeDirSlots := 0
	for _, e := range fs.root {
		if e.Filename[0] == 0 {
			freeDirSlots++
		}
	}

	fmt.Fprintln(w, "FS Info:")
	fmt.Fprintf(w, "total_blk_count=%d\n", fs.sb.TotalBlockCount)
	fmt.Fprintf(w, "fat_blk_count=%d\n", fs.sb.FatBlockCount)
	fmt.Fprintf(w, "rdir_blk=%d\n", fs.sb.RootDirBlockIdx)
	fmt.Fprintf(w, "data_blk=%d\n", fs.sb.DataBlockStart)
	fmt.Fprintf(w, "data_blk_count=%d\n", fs.sb.DataBlockCount)
	fmt.Fprintf(w, "fat_free_ratio=%d/%d\n", free, fs.sb.DataBlockCount)
	fmt.Fprintf(w, "rdir_free_ratio=%d/%d\n", freeDirSlots, FSFileMaxCount)

	return nil
}
