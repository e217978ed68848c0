package statedb

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4"
)

// Compressor compresses stored values.
type Compressor interface {
	Name() string
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// NewCompressor returns the compressor registered under name.
func NewCompressor(name string) (Compressor, error) {
	switch name {
	case "", "none":
		return NoCompressor{}, nil
	case "lz4":
		return LZ4Compressor{}, nil
	default:
		return nil, fmt.Errorf("unknown compression %q", name)
	}
}

// NoCompressor stores values unchanged.
type NoCompressor struct{}

func (NoCompressor) Name() string { return "none" }

func (NoCompressor) Compress(data []byte) ([]byte, error) {
	return copyBytes(data), nil
}

func (NoCompressor) Decompress(data []byte) ([]byte, error) {
	return copyBytes(data), nil
}

// LZ4Compressor stores values as an uvarint length prefix followed by an LZ4
// block. Incompressible values are stored raw behind a zero-length marker.
type LZ4Compressor struct{}

func (LZ4Compressor) Name() string { return "lz4" }

func (LZ4Compressor) Compress(data []byte) ([]byte, error) {
	header := make([]byte, binary.MaxVarintLen64)
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if n == 0 || n >= len(data) {
		hn := binary.PutUvarint(header, 0)
		return append(header[:hn], data...), nil
	}
	hn := binary.PutUvarint(header, uint64(len(data)))
	return append(header[:hn], compressed[:n]...), nil
}

func (LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	size, hn := binary.Uvarint(data)
	if hn <= 0 {
		return nil, fmt.Errorf("lz4 value has a corrupt length header")
	}
	if size == 0 {
		return copyBytes(data[hn:]), nil
	}
	out := make([]byte, size)
	n, err := lz4.UncompressBlock(data[hn:], out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if uint64(n) != size {
		return nil, fmt.Errorf("lz4 decompressed %d bytes, expected %d", n, size)
	}
	return out, nil
}
