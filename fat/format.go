package fat

import (
	"bytes"
	"encoding/binary"

	"github.com/PapiCZ/ecs150fs/disk"
)

// Signature identifies a disk image formatted by this filesystem.
const Signature = "ECS150FS"

// FatEOC is the sentinel FAT entry value marking the end of a chain
// and, at data block 0, marking that block permanently reserved.
const FatEOC uint16 = 0xFFFF

// FatEntriesPerBlock is the number of uint16 FAT entries packed into
// one disk.BlockSize block.
const FatEntriesPerBlock = disk.BlockSize / 2

// FSFilenameLen is the fixed width, including the terminating NUL, of
// a root directory entry's filename field.
const FSFilenameLen = 16

// FSFileMaxCount is the number of fixed root directory slots.
const FSFileMaxCount = 128

// FSOpenMaxCount is the number of fixed file handle table slots.
const FSOpenMaxCount = 32

// superblockPaddingLen makes the on-disk superblock exactly one block.
const superblockPaddingLen = disk.BlockSize - 8 - 2 - 2 - 2 - 2 - 1

// superblock is the packed, on-disk layout of block 0. Field order and
// widths are load-bearing: they are written and read with
// encoding/binary in this exact order, with no implicit padding, so
// that the layout round-trips byte-for-byte with any other tool that
// speaks this format.
type superblock struct {
	Signature        [8]byte
	TotalBlockCount  uint16
	RootDirBlockIdx  uint16
	DataBlockStart   uint16
	DataBlockCount   uint16
	FatBlockCount    uint8
	Padding          [superblockPaddingLen]byte
}

// dirEntryPaddingLen makes the on-disk directory entry exactly 32 bytes.
const dirEntryPaddingLen = 32 - FSFilenameLen - 4 - 2

// dirEntry is the packed, on-disk layout of one root directory slot.
// A zero first filename byte marks a free slot.
type dirEntry struct {
	Filename      [FSFilenameLen]byte
	FileSize      uint32
	FirstDataBlk  uint16
	Padding       [dirEntryPaddingLen]byte
}

func encodeStruct(v interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeStruct(data []byte, v interface{}) error {
	return binary.Read(bytes.NewReader(data), binary.LittleEndian, v)
}

func nameToBytes(name string) ([FSFilenameLen]byte, error) {
	var out [FSFilenameLen]byte
	if !isValidName(name) {
		return out, InvalidNameError{Name: name}
	}
	copy(out[:], name)
	return out, nil
}

// isValidName reports whether name is non-empty, contains no NUL byte,
// and fits, NUL-terminated, within FSFilenameLen bytes.
func isValidName(name string) bool {
	if len(name) == 0 || len(name) >= FSFilenameLen {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] == 0 {
			return false
		}
	}
	return true
}

func bytesToName(b [FSFilenameLen]byte) string {
	n := bytes.IndexByte(b[:], 0)
	if n < 0 {
		n = len(b)
	}
	return string(b[:n])
}
