package fat

// This file holds the directory manager: a linear scan over the 128
// fixed root directory slots.

// findEntry returns the directory index of the occupied slot named
// name, or -1 if no such slot is occupied.
func (fs *Filesystem) findEntry(name string) int {
	for i, e := range fs.root {
		if e.Filename[0] == 0 {
			continue
		}
		if bytesToName(e.Filename) == name {
			return i
		}
	}
	return -1
}

// Create adds a new, empty file named name to the root directory.
func (fs *Filesystem) Create(name string) error {
	if err := fs.requireMounted(); err != nil {
		return err
	}

	nameBytes, err := nameToBytes(name)
	if err != nil {
		return err
	}

	if fs.findEntry(name) >= 0 {
		return ExistsError{Name: name}
	}

	slot := -1
	for i, e := range fs.root {
		if e.Filename[0] == 0 {
			slot = i
			break
		}
	}
	if slot < 0 {
		return DirFullError{}
	}

	fs.root[slot] = dirEntry{
		Filename:     nameBytes,
		FileSize:     0,
		FirstDataBlk: FatEOC,
	}

	return fs.flushRootDir()
}

// Delete removes the file named name, freeing its FAT chain, provided
// no handle currently has it open.
func (fs *Filesystem) Delete(name string) error {
	if err := fs.requireMounted(); err != nil {
		return err
	}
	if !isValidName(name) {
		return InvalidNameError{Name: name}
	}

	idx := fs.findEntry(name)
	if idx < 0 {
		return NotFoundError{Name: name}
	}

	for _, h := range fs.handles {
		if h.inUse && h.dirIndex == idx {
			return FileBusyError{Name: name}
		}
	}

	if fs.root[idx].FirstDataBlk != FatEOC {
		if err := fs.chainFree(fs.root[idx].FirstDataBlk); err != nil {
			return err
		}
	}

	fs.root[idx] = dirEntry{}

	if err := fs.flushFAT(); err != nil {
		return err
	}
	return fs.flushRootDir()
}

// DirEntryInfo is the read-only view of an occupied root directory
// slot returned by List, used by callers like the shell's ls command.
type DirEntryInfo struct {
	Name         string
	Size         uint32
	FirstDataBlk uint16
}

// List returns every occupied root directory entry, in slot order.
func (fs *Filesystem) List() ([]DirEntryInfo, error) {
	if err := fs.requireMounted(); err != nil {
		return nil, err
	}

	infos := make([]DirEntryInfo, 0)
	for _, e := range fs.root {
		if e.Filename[0] == 0 {
			continue
		}
		infos = append(infos, DirEntryInfo{
			Name:         bytesToName(e.Filename),
			Size:         e.FileSize,
			FirstDataBlk: e.FirstDataBlk,
		})
	}

	return infos, nil
}
