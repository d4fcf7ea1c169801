package digest

import (
	"io"

	"github.com/seaweedfs/md5stream/weed/md5"
)

// HashingReader hashes everything read through it.
type HashingReader struct {
	r    io.Reader
	h    *md5.Hasher
	n    int64
	done bool
}

func NewHashingReader(r io.Reader) *HashingReader {
	return &HashingReader{r: r, h: md5.New()}
}

func (hr *HashingReader) Read(p []byte) (int, error) {
	if hr.done {
		return 0, md5.ErrFinalized
	}
	n, err := hr.r.Read(p)
	if n > 0 {
		if hashErr := hr.h.Update(p[:n]); hashErr != nil {
			return n, hashErr
		}
		hr.n += int64(n)
	}
	return n, err
}

func (hr *HashingReader) BytesRead() int64 {
	return hr.n
}

// Finalize returns the digest of everything read so far. Further reads fail.
func (hr *HashingReader) Finalize() (md5.Digest, error) {
	hr.done = true
	return hr.h.Finalize()
}

// HashingWriter hashes whatever is successfully written to the underlying writer.
type HashingWriter struct {
	w    io.Writer
	h    *md5.Hasher
	n    int64
	done bool
}

func NewHashingWriter(w io.Writer) *HashingWriter {
	return &HashingWriter{w: w, h: md5.New()}
}

func (hw *HashingWriter) Write(p []byte) (int, error) {
	if hw.done {
		return 0, md5.ErrFinalized
	}
	n, err := hw.w.Write(p)
	if n > 0 {
		if hashErr := hw.h.Update(p[:n]); hashErr != nil {
			return n, hashErr
		}
		hw.n += int64(n)
	}
	return n, err
}

func (hw *HashingWriter) BytesWritten() int64 {
	return hw.n
}

// Finalize returns the digest of everything written so far. Further writes
// fail without reaching the underlying writer.
func (hw *HashingWriter) Finalize() (md5.Digest, error) {
	hw.done = true
	return hw.h.Finalize()
}
