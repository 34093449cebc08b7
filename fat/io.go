package fat

// This file holds the I/O engine: byte-granular read and write built
// on top of the FAT allocator's chain operations and block-level I/O
// against the underlying disk.

import (
	"github.com/PapiCZ/ecs150fs/disk"
)

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// Read copies up to len(buf) bytes from fd's current offset into buf
// and advances the offset by the number of bytes actually copied. It
// returns 0, nil at end of file.
func (fs *Filesystem) Read(fd int, buf []byte) (int, error) {
	if err := fs.requireMounted(); err != nil {
		return -1, err
	}

	slot, err := fs.resolveFd(fd)
	if err != nil {
		return -1, err
	}

	dirIdx := fs.handles[slot].dirIndex
	entry := fs.root[dirIdx]

	if entry.FirstDataBlk == FatEOC {
		return 0, nil
	}

	chain, err := fs.chainList(entry.FirstDataBlk)
	if err != nil {
		return -1, err
	}

	off := fs.handles[slot].offset
	if off >= entry.FileSize {
		return 0, nil
	}

	remaining := int(entry.FileSize - off)
	eff := min(len(buf), remaining)
	if eff <= 0 {
		return 0, nil
	}

	block := make([]byte, disk.BlockSize)
	written := 0
	cursor := off
	for written < eff {
		blockIdx := int(cursor) / disk.BlockSize
		blockOff := int(cursor) % disk.BlockSize

		abs := int(fs.sb.DataBlockStart) + int(chain[blockIdx])
		if err := fs.dev.ReadBlock(abs, block); err != nil {
			return written, DiskError{Err: err}
		}

		n := min(eff-written, disk.BlockSize-blockOff)
		copy(buf[written:written+n], block[blockOff:blockOff+n])

		written += n
		cursor += uint32(n)
	}

	fs.handles[slot].offset += uint32(written)
	return written, nil
}

// Write writes up to len(data) bytes at fd's current offset, extending
// the file with newly allocated blocks as needed, and returns the
// number of bytes actually written. Writing stops short only when the
// data region is exhausted.
//
// Deviation from POSIX: fd's offset is NOT advanced by a successful
// write.
func (fs *Filesystem) Write(fd int, data []byte) (int, error) {
	if err := fs.requireMounted(); err != nil {
		return -1, err
	}
	if len(data) == 0 {
		return 0, nil
	}

	slot, err := fs.resolveFd(fd)
	if err != nil {
		return -1, err
	}

	dirIdx := fs.handles[slot].dirIndex
	off := fs.handles[slot].offset

	chain, err := fs.chainList(fs.root[dirIdx].FirstDataBlk)
	if err != nil {
		return -1, err
	}
	origLen := len(chain)

	newEnd := int(off) + len(data)
	need := (newEnd + disk.BlockSize - 1) / disk.BlockSize

	for len(chain) < need {
		tail := FatEOC
		if len(chain) > 0 {
			tail = chain[len(chain)-1]
		}

		next, err := fs.chainExtend(tail)
		if err != nil {
			break // OutOfSpaceError: truncate the effective write below.
		}

		if len(chain) == 0 {
			fs.root[dirIdx].FirstDataBlk = next
		}
		chain = append(chain, next)
	}

	capacity := len(chain) * disk.BlockSize
	written := capacity - int(off)
	if written < 0 {
		written = 0
	}
	written = min(written, len(data))

	block := make([]byte, disk.BlockSize)
	cursor := off
	done := 0
	for done < written {
		blockIdx := int(cursor) / disk.BlockSize
		blockOff := int(cursor) % disk.BlockSize
		n := min(written-done, disk.BlockSize-blockOff)

		abs := int(fs.sb.DataBlockStart) + int(chain[blockIdx])

		if n == disk.BlockSize {
			copy(block, data[done:done+n])
		} else {
			if blockIdx < origLen {
				if err := fs.dev.ReadBlock(abs, block); err != nil {
					return done, DiskError{Err: err}
				}
			} else {
				for i := range block {
					block[i] = 0
				}
			}
			copy(block[blockOff:blockOff+n], data[done:done+n])
		}

		if err := fs.dev.WriteBlock(abs, block); err != nil {
			return done, DiskError{Err: err}
		}

		done += n
		cursor += uint32(n)
	}

	fs.root[dirIdx].FileSize = max(fs.root[dirIdx].FileSize, off+uint32(written))

	if err := fs.flushRootDir(); err != nil {
		return written, err
	}
	if err := fs.flushFAT(); err != nil {
		return written, err
	}

	return written, nil
}
