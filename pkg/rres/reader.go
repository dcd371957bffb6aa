package rres

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// openContainer opens path and validates the file header. On success the
// returned handle is positioned at the first directory entry; the caller owns
// the handle and must close it on every exit path.
func openContainer(path string) (*os.File, FileHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, FileHeader{}, fmt.Errorf("opening container: %w", err)
	}

	var hdr FileHeader
	if err := binary.Read(f, binary.LittleEndian, &hdr); err != nil {
		f.Close()
		return nil, FileHeader{}, fmt.Errorf("reading container header: %w", err)
	}

	if hdr.Signature != Signature {
		f.Close()
		return nil, FileHeader{}, fmt.Errorf("%s has signature %q: %w", path, hdr.Signature[:], ErrBadSignature)
	}

	return f, hdr, nil
}

// readEntryHeader reads one fixed-size directory record at the current
// position.
func readEntryHeader(f *os.File) (EntryHeader, error) {
	var entry EntryHeader
	if err := binary.Read(f, binary.LittleEndian, &entry); err != nil {
		return EntryHeader{}, fmt.Errorf("reading entry header: %w", err)
	}
	return entry, nil
}

// findFirst positions the handle at the payload of the entry at directory
// index 0. An empty container yields ErrNotFound without touching the
// directory.
func findFirst(f *os.File, count uint16) (EntryHeader, error) {
	if count == 0 {
		return EntryHeader{}, fmt.Errorf("container is empty: %w", ErrNotFound)
	}
	return readEntryHeader(f)
}

// findByID scans directory entries in file order until one matches id,
// leaving the handle at that entry's payload. Payloads of non-matching
// entries are skipped with a relative seek, never read. The first match wins;
// duplicate ids beyond the first are unreachable by design.
func findByID(f *os.File, count uint16, id uint16) (EntryHeader, error) {
	for i := 0; i < int(count); i++ {
		entry, err := readEntryHeader(f)
		if err != nil {
			return EntryHeader{}, err
		}

		if entry.ID == id {
			return entry, nil
		}

		if _, err := f.Seek(int64(entry.StoredSize), io.SeekCurrent); err != nil {
			return EntryHeader{}, fmt.Errorf("skipping payload of resource %d: %w", entry.ID, err)
		}
	}

	return EntryHeader{}, fmt.Errorf("resource %d: %w", id, ErrNotFound)
}

// Walk opens the container at path and calls fn for every directory entry in
// file order, skipping payload bytes. It never materializes payloads, so it
// is cheap even for large containers. Walking stops at the first error
// returned by fn.
func Walk(path string, fn func(EntryHeader) error) (*FileHeader, error) {
	f, hdr, err := openContainer(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for i := 0; i < int(hdr.Count); i++ {
		entry, err := readEntryHeader(f)
		if err != nil {
			return nil, err
		}

		if err := fn(entry); err != nil {
			return nil, err
		}

		if _, err := f.Seek(int64(entry.StoredSize), io.SeekCurrent); err != nil {
			return nil, fmt.Errorf("skipping payload of resource %d: %w", entry.ID, err)
		}
	}

	return &hdr, nil
}
