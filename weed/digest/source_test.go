package digest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seaweedfs/md5stream/weed/md5"
	"github.com/seaweedfs/md5stream/weed/util"
)

func TestSumSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foo.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	res, err := SumSource(context.Background(), FileSource(path), DefaultReaderOptions())
	require.NoError(t, err)
	assert.Equal(t, path, res.Name)
	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3", res.Digest.String())
	assert.Equal(t, int64(11), res.Size)
}

func TestSumSource_MissingFile(t *testing.T) {
	_, err := SumSource(context.Background(), FileSource(filepath.Join(t.TempDir(), "nope")), DefaultReaderOptions())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSumSource_Decompress(t *testing.T) {
	plain := patternBytes(70000)

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err := gw.Write(plain)
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	zs := enc.EncodeAll(plain, nil)
	require.NoError(t, enc.Close())

	for kind, data := range map[util.CompressionKind][]byte{util.CompressionGzip: gz.Bytes(), util.CompressionZstd: zs} {
		t.Run(string(kind), func(t *testing.T) {
			opts := DefaultReaderOptions()
			opts.Decompress = kind
			res, err := SumSource(context.Background(), BytesSource("blob", data), opts)
			require.NoError(t, err)
			assert.Equal(t, md5.Sum(plain), res.Digest)
			assert.Equal(t, int64(len(plain)), res.Size)
		})
	}
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestSumSource_ClosesSource(t *testing.T) {
	tracker := &closeTracker{Reader: bytes.NewReader([]byte("abc"))}
	src := Source{Name: "tracked", Open: func() (io.ReadCloser, error) { return tracker, nil }}
	_, err := SumSource(context.Background(), src, DefaultReaderOptions())
	require.NoError(t, err)
	assert.True(t, tracker.closed)
}

func TestParseExpected(t *testing.T) {
	want := md5.SumString("abc")

	got, err := ParseExpected("900150983cd24fb0d6963f7d28e17f72")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ParseExpected("kAFQmDzST7DWlj99KOF/cg==")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ParseExpected("abc")
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	src := BytesSource("abc", []byte("abc"))

	res, err := Verify(context.Background(), src, md5.SumString("abc"), DefaultReaderOptions())
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Size)

	_, err = Verify(context.Background(), src, md5.SumString("abd"), DefaultReaderOptions())
	assert.True(t, errors.Is(err, ErrDigestMismatch))
}
