package util

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

type CompressionKind string

const (
	CompressionNone CompressionKind = ""
	CompressionGzip CompressionKind = "gzip"
	CompressionZstd CompressionKind = "zstd"
)

func ParseCompressionKind(s string) (CompressionKind, error) {
	switch kind := CompressionKind(strings.ToLower(strings.TrimSpace(s))); kind {
	case CompressionNone, CompressionGzip, CompressionZstd:
		return kind, nil
	case "none":
		return CompressionNone, nil
	default:
		return CompressionNone, fmt.Errorf("unknown compression %q", s)
	}
}

var gzipReaderPool = sync.Pool{
	New: func() interface{} {
		return new(gzip.Reader)
	},
}

// NewDecompressingReader returns a reader of the decompressed content of r.
// Closing it releases the decoder but does not close r.
func NewDecompressingReader(r io.Reader, kind CompressionKind) (io.ReadCloser, error) {
	switch kind {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionGzip:
		gr, ok := gzipReaderPool.Get().(*gzip.Reader)
		if !ok {
			return nil, fmt.Errorf("gzip: new reader error")
		}
		if err := gr.Reset(r); err != nil {
			gzipReaderPool.Put(gr)
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return &pooledGzipReader{Reader: gr}, nil
	case CompressionZstd:
		decoder, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return decoder.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("unknown compression %q", kind)
	}
}

type pooledGzipReader struct {
	*gzip.Reader
	once sync.Once
}

func (p *pooledGzipReader) Close() (err error) {
	p.once.Do(func() {
		err = p.Reader.Close()
		gzipReaderPool.Put(p.Reader)
	})
	return
}
