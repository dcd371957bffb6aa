package rres

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Resource is a materialized container entry. Data is exclusively owned by
// the caller after return; the package keeps no reference to it.
type Resource struct {
	ID       uint16
	DataType DataType
	Params   [4]uint32 // verbatim from the entry; see typed views below
	Data     []byte
}

// ImageInfo interprets a resource's params as image metadata.
type ImageInfo struct {
	Width   uint32
	Height  uint32
	Format  uint32
	Mipmaps uint32
}

// WaveInfo interprets a resource's params as audio metadata.
type WaveInfo struct {
	SampleCount uint32
	SampleRate  uint32
	SampleSize  uint32
	Channels    uint32
}

// VertexInfo interprets a resource's params as mesh metadata. The fourth
// param is reserved by the format.
type VertexInfo struct {
	VertexCount uint32
	TypeMask    uint32
	FormatMask  uint32
}

// TextInfo interprets a resource's params as text metadata.
type TextInfo struct {
	CharCount uint32
	Format    uint32
	Language  uint32
	Charset   uint32
}

// Image returns the typed parameter view for image resources.
func (r *Resource) Image() (ImageInfo, bool) {
	if r.DataType != TypeImage {
		return ImageInfo{}, false
	}
	return ImageInfo{r.Params[0], r.Params[1], r.Params[2], r.Params[3]}, true
}

// Wave returns the typed parameter view for audio resources.
func (r *Resource) Wave() (WaveInfo, bool) {
	if r.DataType != TypeWave {
		return WaveInfo{}, false
	}
	return WaveInfo{r.Params[0], r.Params[1], r.Params[2], r.Params[3]}, true
}

// Vertex returns the typed parameter view for mesh resources.
func (r *Resource) Vertex() (VertexInfo, bool) {
	if r.DataType != TypeVertex {
		return VertexInfo{}, false
	}
	return VertexInfo{r.Params[0], r.Params[1], r.Params[2]}, true
}

// Text returns the typed parameter view for text resources.
func (r *Resource) Text() (TextInfo, bool) {
	if r.DataType != TypeText {
		return TextInfo{}, false
	}
	return TextInfo{r.Params[0], r.Params[1], r.Params[2], r.Params[3]}, true
}

// LoadFirst materializes the resource at directory index 0.
//
// A non-nil Resource together with an error only happens for ErrSizeMismatch:
// the payload decompressed cleanly but its length disagrees with the entry's
// declared uncompressed size. Every other error returns a nil Resource.
func LoadFirst(path string) (*Resource, error) {
	f, hdr, err := openContainer(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entry, err := findFirst(f, hdr.Count)
	if err != nil {
		return nil, err
	}

	return materialize(f, entry)
}

// LoadByID scans the container at path for the entry with the given id and
// materializes it. Absence of the id yields ErrNotFound. The size-mismatch
// contract matches LoadFirst.
func LoadByID(path string, id uint16) (*Resource, error) {
	f, hdr, err := openContainer(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entry, err := findByID(f, hdr.Count, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			slog.Debug("Resource not present in container", "path", path, "id", id)
		}
		return nil, err
	}

	return materialize(f, entry)
}

// materialize reads the payload at the current position and resolves it to
// its final bytes according to the entry's compression tag.
func materialize(f *os.File, entry EntryHeader) (*Resource, error) {
	raw := make([]byte, entry.StoredSize)
	if _, err := io.ReadFull(f, raw); err != nil {
		return nil, fmt.Errorf("resource %d declares %d payload bytes (%v): %w",
			entry.ID, entry.StoredSize, err, ErrTruncated)
	}

	var data []byte
	sizeMismatch := false

	switch entry.Compression {
	case CompNone:
		data = raw
	default:
		codec, ok := codecs[entry.Compression]
		if !ok {
			return nil, fmt.Errorf("resource %d declares %s: %w",
				entry.ID, entry.Compression, ErrUnsupportedCompression)
		}

		out, err := codec.Decompress(raw, int(entry.UncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("resource %d: %v: %w", entry.ID, err, ErrCorruptPayload)
		}

		data = out
		sizeMismatch = len(out) != int(entry.UncompressedSize)
	}

	res := &Resource{
		ID:       entry.ID,
		DataType: entry.DataType,
		Params:   [4]uint32{entry.Param1, entry.Param2, entry.Param3, entry.Param4},
		Data:     data,
	}

	if sizeMismatch {
		slog.Warn("Decompressed size disagrees with entry metadata",
			"id", entry.ID, "declared", entry.UncompressedSize, "actual", len(data))
		return res, fmt.Errorf("resource %d declared %d bytes, decompressed to %d: %w",
			entry.ID, entry.UncompressedSize, len(data), ErrSizeMismatch)
	}

	slog.Debug("Resource materialized",
		"id", entry.ID, "type", entry.DataType, "compression", entry.Compression, "size", len(data))

	return res, nil
}
