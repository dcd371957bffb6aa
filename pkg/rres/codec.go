package rres

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// Codec decompresses a payload. expectedSize is the entry's declared
// uncompressed size, usable as an allocation hint; implementations must not
// fail when the stream produces a different length (the caller surfaces that
// as a size mismatch).
type Codec interface {
	Decompress(src []byte, expectedSize int) ([]byte, error)
}

// codecs maps each implemented compression tag to its codec. CompNone is
// handled inline by the materializer; tags absent from this table fail with
// ErrUnsupportedCompression.
var codecs = map[CompressionKind]Codec{
	CompDeflate: deflateCodec{},
}

// deflateCodec inflates a raw DEFLATE stream.
type deflateCodec struct{}

func (deflateCodec) Decompress(src []byte, expectedSize int) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(src))
	defer fr.Close()

	var buf bytes.Buffer
	if expectedSize > 0 {
		buf.Grow(expectedSize)
	}

	if _, err := io.Copy(&buf, fr); err != nil {
		return nil, fmt.Errorf("inflating %d bytes: %w", len(src), err)
	}

	return buf.Bytes(), nil
}
