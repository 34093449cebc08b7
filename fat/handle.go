package fat

// This file holds the file handle table: a fixed array of 32 slots,
// each a (directory-index, byte-offset) pair, scanned linearly like
// the root directory.

// Open opens the file named name and returns a descriptor in [1, 32].
func (fs *Filesystem) Open(name string) (int, error) {
	if err := fs.requireMounted(); err != nil {
		return -1, err
	}
	if !isValidName(name) {
		return -1, InvalidNameError{Name: name}
	}

	idx := fs.findEntry(name)
	if idx < 0 {
		return -1, NotFoundError{Name: name}
	}

	slot := -1
	for i, h := range fs.handles {
		if !h.inUse {
			slot = i
			break
		}
	}
	if slot < 0 {
		return -1, TooManyOpenError{}
	}

	fs.handles[slot] = handle{inUse: true, dirIndex: idx, offset: 0}
	fs.openHandleCnt++

	return slot + 1, nil
}

// resolveFd validates fd and returns its slot index, or an error.
func (fs *Filesystem) resolveFd(fd int) (int, error) {
	if fd < 1 || fd > FSOpenMaxCount || !fs.handles[fd-1].inUse {
		return -1, BadFdError{Fd: fd}
	}
	return fd - 1, nil
}

// Close closes the open descriptor fd.
func (fs *Filesystem) Close(fd int) error {
	if err := fs.requireMounted(); err != nil {
		return err
	}

	slot, err := fs.resolveFd(fd)
	if err != nil {
		return err
	}

	fs.handles[slot] = handle{}
	fs.openHandleCnt--

	return nil
}

// Stat returns the size of the file underlying fd.
func (fs *Filesystem) Stat(fd int) (uint32, error) {
	if err := fs.requireMounted(); err != nil {
		return 0, err
	}

	slot, err := fs.resolveFd(fd)
	if err != nil {
		return 0, err
	}

	return fs.root[fs.handles[slot].dirIndex].FileSize, nil
}

// Lseek repositions fd's byte cursor. offset == size is legal and
// positions the cursor at EOF.
func (fs *Filesystem) Lseek(fd int, offset uint32) error {
	if err := fs.requireMounted(); err != nil {
		return err
	}

	slot, err := fs.resolveFd(fd)
	if err != nil {
		return err
	}

	size := fs.root[fs.handles[slot].dirIndex].FileSize
	if offset > size {
		return OffsetOutOfRangeError{Offset: offset, Size: size}
	}

	fs.handles[slot].offset = offset
	return nil
}
