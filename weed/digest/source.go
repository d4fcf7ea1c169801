package digest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/seaweedfs/md5stream/weed/glog"
	"github.com/seaweedfs/md5stream/weed/md5"
	"github.com/seaweedfs/md5stream/weed/stats"
	"github.com/seaweedfs/md5stream/weed/util"
)

// ErrDigestMismatch is wrapped by Verify when content does not hash to the expected value.
var ErrDigestMismatch = errors.New("md5 digest mismatch")

// Source is a named, re-openable byte stream.
type Source struct {
	Name string
	Open func() (io.ReadCloser, error)
}

type Result struct {
	Name   string
	Digest md5.Digest
	// Size counts the bytes hashed, after decompression.
	Size int64
}

func FileSource(path string) Source {
	return Source{
		Name: path,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

func BytesSource(name string, data []byte) Source {
	return Source{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// SumSource opens src, optionally decompresses it, and hashes its content.
func SumSource(ctx context.Context, src Source, opts ReaderOptions) (Result, error) {
	rc, err := src.Open()
	if err != nil {
		stats.DigestCounter.WithLabelValues(stats.DigestOpenError).Inc()
		return Result{}, fmt.Errorf("open %s: %w", src.Name, err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if opts.Decompress != util.CompressionNone {
		dr, err := util.NewDecompressingReader(rc, opts.Decompress)
		if err != nil {
			stats.DigestCounter.WithLabelValues(stats.DigestOpenError).Inc()
			return Result{}, fmt.Errorf("open %s: %w", src.Name, err)
		}
		defer dr.Close()
		r = dr
	}

	d, n, err := SumReader(ctx, r, opts)
	if err != nil {
		return Result{}, fmt.Errorf("hash %s: %w", src.Name, err)
	}
	glog.V(1).InfofCtx(ctx, "%s %s", d, src.Name)
	return Result{Name: src.Name, Digest: d, Size: n}, nil
}

// ParseExpected accepts either the 32-character hex form or the base64
// Content-MD5 form of a digest.
func ParseExpected(s string) (md5.Digest, error) {
	if len(s) == 2*md5.Size {
		return md5.ParseDigest(s)
	}
	var d md5.Digest
	raw := util.Base64Md5ToBytes(s)
	if raw == nil {
		return d, fmt.Errorf("%q is neither a hex nor a base64 md5 digest", s)
	}
	copy(d[:], raw)
	return d, nil
}

// Verify hashes src and checks it against expected.
func Verify(ctx context.Context, src Source, expected md5.Digest, opts ReaderOptions) (Result, error) {
	res, err := SumSource(ctx, src, opts)
	if err != nil {
		return res, err
	}
	if !res.Digest.Equal(expected) {
		glog.WarningfCtx(ctx, "%s: md5 %s, expected %s", src.Name, res.Digest, expected)
		return res, fmt.Errorf("%s: %w: got %s, want %s", src.Name, ErrDigestMismatch, res.Digest, expected)
	}
	return res, nil
}
