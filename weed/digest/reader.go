// Package digest drives md5.Hasher from byte sources: readers, files,
// compressed streams, and batches of independent sources.
package digest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/valyala/bytebufferpool"

	"github.com/seaweedfs/md5stream/weed/glog"
	"github.com/seaweedfs/md5stream/weed/md5"
	"github.com/seaweedfs/md5stream/weed/stats"
)

// maxConsecutiveEmptyReads bounds how many (0, nil) reads SumReader tolerates
// before giving up with io.ErrNoProgress, as bufio does.
const maxConsecutiveEmptyReads = 100

// SumReader reads r to EOF, feeding every chunk to a fresh hasher, and returns
// the digest together with the number of bytes hashed.
//
// On a read error or context cancellation no digest is produced; the partial
// hash is discarded.
func SumReader(ctx context.Context, r io.Reader, opts ReaderOptions) (md5.Digest, int64, error) {
	start := time.Now()
	bufferSize := opts.BufferSize
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)
	if cap(bb.B) < bufferSize {
		bb.B = make([]byte, bufferSize)
	}
	buf := bb.B[:bufferSize]

	h := md5.New()
	var total int64
	emptyReads := 0
	for {
		if err := ctx.Err(); err != nil {
			stats.DigestCounter.WithLabelValues(stats.DigestCanceled).Inc()
			return md5.Digest{}, total, err
		}
		n, err := r.Read(buf)
		if n == 0 && err == nil {
			emptyReads++
			if emptyReads < maxConsecutiveEmptyReads {
				continue
			}
			err = io.ErrNoProgress
		} else {
			emptyReads = 0
		}
		if n > 0 {
			if updateErr := h.Update(buf[:n]); updateErr != nil {
				return md5.Digest{}, total, updateErr
			}
			total += int64(n)
			stats.DigestBytesCounter.Add(float64(n))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			stats.DigestCounter.WithLabelValues(stats.DigestReadError).Inc()
			glog.WarningfCtx(ctx, "read failed after %s: %v", humanize.IBytes(uint64(total)), err)
			return md5.Digest{}, total, fmt.Errorf("read after %d bytes: %w", total, err)
		}
	}

	d, err := h.Finalize()
	if err != nil {
		return md5.Digest{}, total, err
	}
	elapsed := time.Since(start)
	stats.DigestCounter.WithLabelValues(stats.DigestSuccess).Inc()
	stats.DigestReadHistogram.Observe(elapsed.Seconds())
	glog.V(2).InfofCtx(ctx, "hashed %s in %v: %s", humanize.IBytes(uint64(total)), elapsed, d)

	return d, total, nil
}
