// Package rres reads rRES resource containers: single binary files holding a
// directory of independently typed resources (raw bytes, images, audio, vertex
// data, text), each optionally DEFLATE-compressed.
//
// Every load call opens its own handle, scans the directory linearly and
// closes the handle before returning. Nothing is cached between calls.
package rres

import (
	"errors"
	"fmt"
)

// Signature is the 4-byte tag at the start of every container.
var Signature = [4]byte{'r', 'R', 'E', 'S'}

// FileHeader is the fixed 8-byte container preamble.
type FileHeader struct {
	Signature [4]byte
	Version   uint16 // format + subformat, informational
	Count     uint16 // directory entries that follow
}

// EntryHeader is the fixed 28-byte metadata record preceding each payload.
// StoredSize is always the number of payload bytes on disk, compressed or
// not; UncompressedSize is meaningful only when Compression != CompNone.
type EntryHeader struct {
	ID               uint16
	DataType         DataType
	Compression      CompressionKind
	StoredSize       uint32
	UncompressedSize uint32
	Param1           uint32
	Param2           uint32
	Param3           uint32
	Param4           uint32
}

// DataType tags the kind of payload an entry carries.
type DataType uint8

const (
	TypeRaw DataType = iota
	TypeImage
	TypeWave
	TypeVertex
	TypeText
)

func (t DataType) String() string {
	switch t {
	case TypeRaw:
		return "raw"
	case TypeImage:
		return "image"
	case TypeWave:
		return "wave"
	case TypeVertex:
		return "vertex"
	case TypeText:
		return "text"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// CompressionKind tags how an entry's payload is stored. LZ4 and LZMA are
// reserved by the format but not implemented here; entries declaring them
// fail with ErrUnsupportedCompression rather than passing bytes through.
type CompressionKind uint8

const (
	CompNone CompressionKind = iota
	CompDeflate
	CompLZ4
	CompLZMA
)

func (c CompressionKind) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompDeflate:
		return "deflate"
	case CompLZ4:
		return "lz4"
	case CompLZMA:
		return "lzma"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

var (
	// ErrBadSignature: the file is not an rRES container. The directory is
	// never consulted after a signature mismatch.
	ErrBadSignature = errors.New("not an rRES container")

	// ErrNotFound: well-formed container, requested resource absent. This is
	// an expected outcome, not corruption.
	ErrNotFound = errors.New("resource not found")

	// ErrTruncated: an entry declared more payload bytes than the file holds.
	ErrTruncated = errors.New("container truncated")

	// ErrCorruptPayload: the codec rejected a compressed stream.
	ErrCorruptPayload = errors.New("corrupt compressed payload")

	// ErrUnsupportedCompression: the entry declares a recognized but
	// unimplemented compression tag, or an unknown one.
	ErrUnsupportedCompression = errors.New("unsupported compression")

	// ErrSizeMismatch: decompression succeeded but produced a length that
	// disagrees with the entry's declared uncompressed size. The only
	// warning-class outcome: the load functions return the payload alongside
	// this error.
	ErrSizeMismatch = errors.New("uncompressed size mismatch")
)
