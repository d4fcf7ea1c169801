package digest

import (
	"fmt"
	"runtime"

	"github.com/dustin/go-humanize"

	"github.com/seaweedfs/md5stream/weed/util"
)

const (
	DefaultBufferSize = 64 * humanize.KiByte
	MaxBufferSize     = 64 * humanize.MiByte
)

// ReaderOptions controls how sources are pulled into a hasher.
type ReaderOptions struct {
	// BufferSize is the size of each Read issued against a source.
	BufferSize int
	// Concurrency bounds how many sources SumAll hashes at once.
	Concurrency int
	// Decompress, when set, hashes the decompressed content of each source.
	Decompress util.CompressionKind
}

func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		BufferSize:  DefaultBufferSize,
		Concurrency: runtime.NumCPU(),
	}
}

func (o ReaderOptions) Validate() error {
	if o.BufferSize < 1 || o.BufferSize > MaxBufferSize {
		return fmt.Errorf("reader.buffer_size %s out of range [1 B, %s]",
			humanize.IBytes(uint64(max(o.BufferSize, 0))), humanize.IBytes(MaxBufferSize))
	}
	if o.Concurrency < 1 {
		return fmt.Errorf("reader.concurrency %d must be at least 1", o.Concurrency)
	}
	if _, err := util.ParseCompressionKind(string(o.Decompress)); err != nil {
		return fmt.Errorf("reader.decompress: %w", err)
	}
	return nil
}

// LoadReaderOptions reads the [reader] section:
//
//	[reader]
//	buffer_size = "64KiB"
//	concurrency = 4
//	decompress = "zstd"
//
// Unset keys keep their defaults.
func LoadReaderOptions(config util.Configuration) (ReaderOptions, error) {
	opts := DefaultReaderOptions()

	if s := config.GetString("reader.buffer_size"); s != "" {
		size, err := humanize.ParseBytes(s)
		if err != nil {
			return opts, fmt.Errorf("reader.buffer_size %q: %w", s, err)
		}
		if size > MaxBufferSize {
			return opts, fmt.Errorf("reader.buffer_size %s exceeds %s", s, humanize.IBytes(MaxBufferSize))
		}
		opts.BufferSize = int(size)
	}
	if config.IsSet("reader.concurrency") {
		opts.Concurrency = config.GetInt("reader.concurrency")
	}
	kind, err := util.ParseCompressionKind(config.GetString("reader.decompress"))
	if err != nil {
		return opts, fmt.Errorf("reader.decompress: %w", err)
	}
	opts.Decompress = kind

	return opts, opts.Validate()
}
